package rpc

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	s := NewHeaderStream(&buf, &buf)

	call, err := NewCall(ID{number: 7}, "textDocument/completion", map[string]int{"line": 0})
	require.NoError(t, err)

	written, err := s.Write(context.Background(), call)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Content-Length: ")

	msg, read, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, written, read)

	got, ok := msg.(*Call)
	require.True(t, ok)
	assert.Equal(t, "textDocument/completion", got.Method())
	assert.Equal(t, ID{number: 7}, got.ID())
	assert.JSONEq(t, `{"line":0}`, string(got.Params()))
}

func TestHeaderStreamNotificationRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	s := NewHeaderStream(&buf, &buf)

	notify, err := NewNotification("initialized", nil)
	require.NoError(t, err)

	_, err = s.Write(context.Background(), notify)
	require.NoError(t, err)

	msg, _, err := s.Read(context.Background())
	require.NoError(t, err)
	got, ok := msg.(*Notification)
	require.True(t, ok)
	assert.Equal(t, "initialized", got.Method())
}

func TestHeaderStreamMissingContentLength(t *testing.T) {
	s := NewHeaderStream(strings.NewReader("Content-Type: application/json\r\n\r\n"), nil)
	_, _, err := s.Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Content-Length")
}

func TestHeaderStreamInvalidHeaderLine(t *testing.T) {
	s := NewHeaderStream(strings.NewReader("garbage\r\n\r\n"), nil)
	_, _, err := s.Read(context.Background())
	assert.Error(t, err)
}
