package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gorilla/websocket"
)

// NewWebSocketStream returns a Stream carried over a WebSocket connection.
// Each protocol message occupies exactly one text frame, so no
// Content-Length framing is needed; the frame boundary is the message
// boundary. This is the transport used by the editor's webview clients.
func NewWebSocketStream(conn *websocket.Conn) Stream {
	return &webSocketStream{conn: conn}
}

type webSocketStream struct {
	conn *websocket.Conn
}

func (s *webSocketStream) Read(ctx context.Context) (Message, int64, error) {
	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	default:
	}
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
			return nil, 0, io.EOF
		}
		return nil, 0, fmt.Errorf("reading websocket frame: %w", err)
	}
	msg, err := DecodeMessage(data)
	return msg, int64(len(data)), err
}

func (s *webSocketStream) Write(ctx context.Context, msg Message) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("marshaling message: %v", err)
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return 0, fmt.Errorf("writing websocket frame: %w", err)
	}
	return int64(len(data)), nil
}
