package server

import (
	"context"

	"github.com/microsoft/botframework-composer-lsp/completion"
	"github.com/microsoft/botframework-composer-lsp/lsp"
)

// DidChangeConfiguration replaces the active scopes wholesale; the previous
// set does not bleed into the new one.
func (s *server) DidChangeConfiguration(ctx context.Context, params *lsp.DidChangeConfigurationParams) error {
	scopes := completion.ParseScopes(params.Settings.Scopes)
	s.setScopes(scopes)
	s.logger.Debug("scopes replaced", "scopes", params.Settings.Scopes)
	return nil
}
