// Package server implements the protocol side of the LU / intellisense
// completion service. One server instance is constructed per connection and
// owns that connection's document store and session state; nothing here is
// shared across connections.
package server

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/microsoft/botframework-composer-lsp/completion"
	"github.com/microsoft/botframework-composer-lsp/document"
	"github.com/microsoft/botframework-composer-lsp/fuzzy"
	"github.com/microsoft/botframework-composer-lsp/lsp"
)

// MemoryResolver supplies the variable names currently known for a bot
// project. It is injected at construction time; the server never discovers
// variables on its own.
type MemoryResolver func(projectID string) []string

// New creates a server bound to one client connection.
func New(logger *slog.Logger, client lsp.Client, memory MemoryResolver) lsp.Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &server{
		logger:  logger,
		client:  client,
		memory:  memory,
		matcher: fuzzy.New(fuzzy.DefaultOptions()),
		store:   document.NewStore(logger),
	}
}

type serverState int

const (
	serverCreated      = serverState(iota)
	serverInitializing // set once the server has received "initialize" request
	serverInitialized  // set once the server has received "initialized" request
	serverShutDown
)

func (s serverState) String() string {
	switch s {
	case serverCreated:
		return "created"
	case serverInitializing:
		return "initializing"
	case serverInitialized:
		return "initialized"
	case serverShutDown:
		return "shutDown"
	}
	return fmt.Sprintf("(unknown state: %d)", int(s))
}

// session is the per-connection configuration state. Scopes are replaced
// wholesale on every configuration change; there is no partial merge.
type session struct {
	scopes    []completion.Scope
	projectID string
}

type server struct {
	logger  *slog.Logger
	client  lsp.Client
	memory  MemoryResolver
	matcher *fuzzy.Matcher

	stateMu sync.Mutex
	state   serverState

	sessionMu sync.Mutex
	session   session

	// store holds the in-memory text of every open document on this
	// connection.
	store *document.Store
}

func (s *server) Logger() *slog.Logger {
	return s.logger
}

func (s *server) setScopes(scopes []completion.Scope) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	s.session.scopes = scopes
}

func (s *server) snapshotSession() session {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	return session{
		scopes:    append([]completion.Scope(nil), s.session.scopes...),
		projectID: s.session.projectID,
	}
}
