package rpc

import (
	"context"
	"errors"
	"fmt"
)

// Error values matching the JSON-RPC 2.0 reserved codes. Handlers wrap these
// with %w so responses carry the right numeric code on the wire.
var (
	// ErrParse is used when invalid JSON was received by the server.
	ErrParse = errors.New("JSON RPC parse error")
	// ErrInvalidRequest is used when the JSON sent is not a valid Request object.
	ErrInvalidRequest = errors.New("JSON RPC invalid request")
	// ErrMethodNotFound should be returned by the handler when the method does
	// not exist / is not available.
	ErrMethodNotFound = errors.New("JSON RPC method not found")
	// ErrInvalidParams should be returned by the handler when method
	// parameter(s) were invalid.
	ErrInvalidParams = errors.New("JSON RPC invalid params")
	// ErrInternal indicates a failure inside a handler.
	ErrInternal = errors.New("JSON RPC internal error")
	// ErrServerNotInitialized is returned for requests received before the
	// initialize handshake completed.
	ErrServerNotInitialized = errors.New("JSON RPC server not initialized")
)

func errorCode(err error) int64 {
	switch {
	case errors.Is(err, ErrParse):
		return -32700
	case errors.Is(err, ErrInvalidRequest):
		return -32600
	case errors.Is(err, ErrMethodNotFound):
		return -32601
	case errors.Is(err, ErrInvalidParams):
		return -32602
	case errors.Is(err, ErrInternal):
		return -32603
	case errors.Is(err, ErrServerNotInitialized):
		return -32002
	default:
		return -32001 // unknown error code
	}
}

func toWireError(err error) *WireError {
	if err == nil {
		return nil
	}
	var wire *WireError
	if errors.As(err, &wire) {
		return wire
	}
	return &WireError{Code: errorCode(err), Message: err.Error()}
}

// Handler is invoked to handle incoming requests.
// The Replier sends a reply to the request and must be called exactly once.
type Handler func(ctx context.Context, reply Replier, req Request) error

// Replier is passed to handlers to allow them to reply to the request.
// If err is set then result will be ignored.
type Replier func(ctx context.Context, result any, err error) error

// MethodNotFound is a Handler that replies to all call requests with the
// standard method not found response.
// This should normally be the final handler in a chain.
func MethodNotFound(ctx context.Context, reply Replier, req Request) error {
	return reply(ctx, nil, fmt.Errorf("%w: %q", ErrMethodNotFound, req.Method()))
}
