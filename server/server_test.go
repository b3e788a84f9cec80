package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/botframework-composer-lsp/lsp"
)

type fakeClient struct{}

func (fakeClient) LogMessage(context.Context, *lsp.LogMessageParams) error   { return nil }
func (fakeClient) ShowMessage(context.Context, *lsp.ShowMessageParams) error { return nil }

func newTestServer(memory MemoryResolver) lsp.Server {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), fakeClient{}, memory)
}

func initialize(t *testing.T, srv lsp.Server, scopes []string, projectID string) {
	t.Helper()
	_, err := srv.Initialize(context.Background(), &lsp.InitializeParams{
		InitializationOptions: lsp.InitializationOptions{
			Scopes:    scopes,
			ProjectID: projectID,
		},
	})
	require.NoError(t, err)
	require.NoError(t, srv.Initialized(context.Background(), &lsp.InitializedParams{}))
}

func openDoc(t *testing.T, srv lsp.Server, uri lsp.DocumentURI, text string) {
	t.Helper()
	require.NoError(t, srv.DidOpen(context.Background(), &lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: uri, LanguageID: "lu", Version: 1, Text: text},
	}))
}

func TestInitializeCapabilities(t *testing.T) {
	srv := newTestServer(nil)
	result, err := srv.Initialize(context.Background(), &lsp.InitializeParams{
		InitializationOptions: lsp.InitializationOptions{Scopes: []string{"expressions"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Capabilities.TextDocumentSync)
	require.NotNil(t, result.Capabilities.CompletionProvider)
	assert.True(t, result.Capabilities.CompletionProvider.ResolveProvider)
	assert.Equal(t, "composer-language-server", result.ServerInfo.Name)
}

func TestInitializeTwiceFails(t *testing.T) {
	srv := newTestServer(nil)
	_, err := srv.Initialize(context.Background(), &lsp.InitializeParams{})
	require.NoError(t, err)

	_, err = srv.Initialize(context.Background(), &lsp.InitializeParams{})
	assert.Error(t, err)
}

func TestInitializedTwiceFails(t *testing.T) {
	srv := newTestServer(nil)
	_, err := srv.Initialize(context.Background(), &lsp.InitializeParams{})
	require.NoError(t, err)

	require.NoError(t, srv.Initialized(context.Background(), &lsp.InitializedParams{}))
	assert.Error(t, srv.Initialized(context.Background(), &lsp.InitializedParams{}))
}

func TestShutdownThenExit(t *testing.T) {
	srv := newTestServer(nil)
	initialize(t, srv, nil, "")

	require.NoError(t, srv.Shutdown(context.Background()))
	// shutdown is idempotent and exit after shutdown is clean
	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Exit(context.Background()))
}

func TestDidChangeRequiresContentChanges(t *testing.T) {
	srv := newTestServer(nil)
	initialize(t, srv, nil, "")
	openDoc(t, srv, "inmemory://doc/1", "text")

	err := srv.DidChange(context.Background(), &lsp.DidChangeTextDocumentParams{
		TextDocument: lsp.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: "inmemory://doc/1"},
			Version:                2,
		},
	})
	assert.Error(t, err)
}

func TestResolveCompletionItemPassthrough(t *testing.T) {
	srv := newTestServer(nil)
	item := &lsp.CompletionItem{Label: "user.name", InsertText: "name"}

	got, err := srv.ResolveCompletionItem(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, item, got)
}
