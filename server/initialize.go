package server

import (
	"context"
	"fmt"

	"github.com/microsoft/botframework-composer-lsp/completion"
	"github.com/microsoft/botframework-composer-lsp/lsp"
	"github.com/microsoft/botframework-composer-lsp/rpc"
)

const serverVersion = "0.1.0"

func (s *server) Initialize(ctx context.Context, params *lsp.InitializeParams) (*lsp.InitializeResult, error) {
	s.stateMu.Lock()
	if s.state >= serverInitializing {
		defer s.stateMu.Unlock()
		return nil, fmt.Errorf("%w: initialize called while server in %v state", rpc.ErrInvalidRequest, s.state)
	}
	s.state = serverInitializing
	s.stateMu.Unlock()

	s.sessionMu.Lock()
	s.session = session{
		scopes:    completion.ParseScopes(params.InitializationOptions.Scopes),
		projectID: params.InitializationOptions.ProjectID,
	}
	s.sessionMu.Unlock()

	s.logger.Info("session initialized",
		"scopes", params.InitializationOptions.Scopes,
		"projectId", params.InitializationOptions.ProjectID,
		"catalog", completion.CatalogVersion(),
	)

	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: 1, // full sync: every change carries the whole document
			CompletionProvider: &lsp.CompletionOptions{
				ResolveProvider:   true,
				TriggerCharacters: []string{".", "="},
			},
		},
		ServerInfo: lsp.ServerInfo{
			Name:    "composer-language-server",
			Version: serverVersion,
		},
	}, nil
}

func (s *server) Initialized(ctx context.Context, params *lsp.InitializedParams) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.state >= serverInitialized {
		return fmt.Errorf("%w: initialized called while server in %v state", rpc.ErrInvalidRequest, s.state)
	}
	s.state = serverInitialized
	return nil
}

// Shutdown releases the connection's documents. The connection itself is
// torn down by exit or by the transport closing.
func (s *server) Shutdown(ctx context.Context) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.state != serverShutDown {
		s.state = serverShutDown
	}
	return nil
}

// Exit ends the session. Unlike a stdio-hosted language server the process
// serves many connections, so exiting a session must not kill the process;
// the transport close that follows tears the connection down.
func (s *server) Exit(ctx context.Context) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.state != serverShutDown {
		s.logger.Warn("exit received before shutdown", "state", s.state.String())
	}
	return nil
}
