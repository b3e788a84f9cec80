// Package document holds the authoritative in-memory text of every open
// editor buffer for one connection. The protocol runs in full-sync mode, so
// a change replaces the whole buffer; there is no ranged-edit application.
package document

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/microsoft/botframework-composer-lsp/lsp"
)

// Document is an immutable snapshot of an open buffer. The store replaces
// the whole value on every accepted change, so holders of a *Document never
// observe a mutation.
type Document struct {
	URI        lsp.DocumentURI
	LanguageID lsp.LanguageKind
	Version    int32
	Text       string
}

// Lines splits the document text into lines, normalizing CRLF endings.
func (d *Document) Lines() []string {
	return strings.Split(strings.ReplaceAll(d.Text, "\r\n", "\n"), "\n")
}

// Store maps open document URIs to their current contents. It is owned by a
// single server instance; the lock exists because the client logger and
// tests may read concurrently with the handler goroutine.
type Store struct {
	logger *slog.Logger
	mu     sync.RWMutex
	docs   map[lsp.DocumentURI]*Document
}

func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger: logger,
		docs:   make(map[lsp.DocumentURI]*Document),
	}
}

// Open registers a document. Reopening a known URI overwrites the previous
// contents and logs a warning; it is not an error.
func (s *Store) Open(uri lsp.DocumentURI, languageID lsp.LanguageKind, version int32, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[uri]; ok {
		s.logger.Warn("reopening already-open document", "uri", string(uri))
	}
	s.docs[uri] = &Document{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Text:       text,
	}
}

// ApplyChange replaces the document text wholesale. A change for an unknown
// URI is a no-op, as is a change whose version is not strictly newer than
// the current one; both are logged and otherwise ignored so that a stale or
// reordered notification can never fail the connection.
func (s *Store) ApplyChange(uri lsp.DocumentURI, version int32, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.docs[uri]
	if !ok {
		s.logger.Warn("change for unknown document", "uri", string(uri))
		return false
	}
	if version <= current.Version {
		s.logger.Warn("rejecting stale document change",
			"uri", string(uri),
			"version", version,
			"current", current.Version,
		)
		return false
	}
	s.docs[uri] = &Document{
		URI:        uri,
		LanguageID: current.LanguageID,
		Version:    version,
		Text:       text,
	}
	return true
}

// Get returns the current snapshot of uri, or false if it is not open.
func (s *Store) Get(uri lsp.DocumentURI) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// Close forgets uri. Closing an unknown or already-closed document is a
// no-op.
func (s *Store) Close(uri lsp.DocumentURI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Len reports the number of open documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
