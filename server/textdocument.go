package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/microsoft/botframework-composer-lsp/logger"
	"github.com/microsoft/botframework-composer-lsp/lsp"
	"github.com/microsoft/botframework-composer-lsp/rpc"
)

func (s *server) DidOpen(ctx context.Context, params *lsp.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	s.store.Open(doc.URI, doc.LanguageID, doc.Version, doc.Text)
	s.logger.Debug("document opened",
		"uri", string(doc.URI),
		"languageId", string(doc.LanguageID),
		"version", doc.Version,
	)
	return nil
}

func (s *server) DidChange(ctx context.Context, params *lsp.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return fmt.Errorf("%w: didChange carried no content changes", rpc.ErrInvalidParams)
	}
	// full-sync mode: the first change event is the complete new text
	text := params.ContentChanges[0].Text
	uri := params.TextDocument.URI
	if !s.store.ApplyChange(uri, params.TextDocument.Version, text) {
		// stale or unknown; surface it in the editor's output channel but
		// never fail the connection over it
		logger.Log(ctx, fmt.Sprintf("ignored stale change for %s (version %d)", uri, params.TextDocument.Version), logger.FromLevel(slog.LevelWarn))
	}
	return nil
}

func (s *server) DidClose(ctx context.Context, params *lsp.DidCloseTextDocumentParams) error {
	s.store.Close(params.TextDocument.URI)
	s.logger.Debug("document closed", "uri", string(params.TextDocument.URI))
	return nil
}
