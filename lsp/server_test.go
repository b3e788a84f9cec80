package lsp

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/botframework-composer-lsp/rpc"
)

// recordedReply captures what a handler sent back through its Replier.
type recordedReply struct {
	result any
	err    error
}

func recordingReplier(got *[]recordedReply) rpc.Replier {
	return func(ctx context.Context, result any, err error) error {
		*got = append(*got, recordedReply{result: result, err: err})
		return nil
	}
}

// stubServer answers every method with zero values; tests override the
// fields they care about.
type stubServer struct {
	list        *CompletionList
	initialized bool
}

func (s *stubServer) Initialize(context.Context, *InitializeParams) (*InitializeResult, error) {
	return &InitializeResult{}, nil
}

func (s *stubServer) Initialized(context.Context, *InitializedParams) error {
	s.initialized = true
	return nil
}

func (s *stubServer) Shutdown(context.Context) error { return nil }
func (s *stubServer) Exit(context.Context) error     { return nil }

func (s *stubServer) DidOpen(context.Context, *DidOpenTextDocumentParams) error { return nil }

func (s *stubServer) DidChange(context.Context, *DidChangeTextDocumentParams) error { return nil }

func (s *stubServer) DidClose(context.Context, *DidCloseTextDocumentParams) error { return nil }

func (s *stubServer) DidChangeConfiguration(context.Context, *DidChangeConfigurationParams) error {
	return nil
}

func (s *stubServer) Completion(context.Context, *CompletionParams) (*CompletionList, error) {
	return s.list, nil
}

func (s *stubServer) ResolveCompletionItem(ctx context.Context, item *CompletionItem) (*CompletionItem, error) {
	return item, nil
}

func (s *stubServer) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dispatch(t *testing.T, srv Server, method string, params any) []recordedReply {
	t.Helper()
	req, err := rpc.NewCall(rpc.ID{}, method, params)
	require.NoError(t, err)

	var got []recordedReply
	handler := ServerHandler(srv, rpc.MethodNotFound)
	require.NoError(t, handler(context.Background(), recordingReplier(&got), req))
	require.Len(t, got, 1)
	return got
}

func TestServerHandlerCompletionList(t *testing.T) {
	srv := &stubServer{list: &CompletionList{Items: []CompletionItem{{Label: "user.name"}}}}

	got := dispatch(t, srv, "textDocument/completion", CompletionParams{})
	require.NoError(t, got[0].err)
	assert.Same(t, srv.list, got[0].result)
}

func TestServerHandlerCompletionNullResult(t *testing.T) {
	// a nil list replies with a null result, not a typed nil pointer that
	// would marshal as an object
	got := dispatch(t, &stubServer{}, "textDocument/completion", CompletionParams{})
	require.NoError(t, got[0].err)
	assert.Nil(t, got[0].result)
}

func TestServerHandlerResolve(t *testing.T) {
	got := dispatch(t, &stubServer{}, "completionItem/resolve", CompletionItem{Label: "turn."})
	require.NoError(t, got[0].err)

	item, ok := got[0].result.(*CompletionItem)
	require.True(t, ok)
	assert.Equal(t, "turn.", item.Label)
}

func TestServerHandlerNullParams(t *testing.T) {
	// notifications may carry "null" params; dispatch must not treat that
	// as a parse error
	srv := &stubServer{}
	got := dispatch(t, srv, "initialized", nil)
	require.NoError(t, got[0].err)
	assert.True(t, srv.initialized)
}

func TestServerHandlerParseError(t *testing.T) {
	req, err := rpc.NewCall(rpc.ID{}, "textDocument/didOpen", []int{1, 2})
	require.NoError(t, err)

	var got []recordedReply
	handler := ServerHandler(&stubServer{}, rpc.MethodNotFound)
	require.NoError(t, handler(context.Background(), recordingReplier(&got), req))
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0].err, rpc.ErrParse)
}

func TestServerHandlerUnknownMethodFallsThrough(t *testing.T) {
	got := dispatch(t, &stubServer{}, "textDocument/hover", nil)
	assert.ErrorIs(t, got[0].err, rpc.ErrMethodNotFound)
}
