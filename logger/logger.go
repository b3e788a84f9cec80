// Package logger forwards server-side diagnostics to the editor's output
// channel via window/logMessage without ever blocking a handler on the
// transport.
package logger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/microsoft/botframework-composer-lsp/lsp"
	"github.com/microsoft/botframework-composer-lsp/xcontext"
)

var (
	startLogSenderOnce sync.Once
	logQueue           = make(chan func(), 100) // big enough for a large transient burst
)

// Log queues a message for the client on ctx's connection. It is a no-op
// when ctx carries no client, so handlers can call it unconditionally.
func Log(ctx context.Context, msg string, mt lsp.MessageType) {
	client := lsp.GetClient(ctx)
	if client == nil {
		return
	}
	logMsg := &lsp.LogMessageParams{
		Message:     msg,
		MessageType: mt,
	}

	startLogSenderOnce.Do(func() {
		go func() {
			for fn := range logQueue {
				fn()
			}
		}()
	})

	ctx2 := xcontext.Detach(ctx)
	logQueue <- func() { _ = client.LogMessage(ctx2, logMsg) }
}

// FromLevel maps slog levels onto the protocol's message types.
func FromLevel(level slog.Level) lsp.MessageType {
	switch {
	case level <= slog.LevelDebug:
		return lsp.MessageTypeDebug
	case level <= slog.LevelInfo:
		return lsp.MessageTypeInfo
	case level <= slog.LevelWarn:
		return lsp.MessageTypeWarning
	default:
		return lsp.MessageTypeError
	}
}
