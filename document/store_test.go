package document

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestOpenAndGet(t *testing.T) {
	s := newTestStore()
	s.Open("inmemory://doc/1", "lu", 1, "# Greeting\n- hi")

	doc, ok := s.Get("inmemory://doc/1")
	require.True(t, ok)
	assert.Equal(t, int32(1), doc.Version)
	assert.Equal(t, "# Greeting\n- hi", doc.Text)
	assert.Equal(t, []string{"# Greeting", "- hi"}, doc.Lines())
}

func TestGetUnknown(t *testing.T) {
	s := newTestStore()
	_, ok := s.Get("inmemory://doc/none")
	assert.False(t, ok)
}

func TestApplyChangeReplacesText(t *testing.T) {
	s := newTestStore()
	s.Open("inmemory://doc/1", "lu", 1, "old")

	require.True(t, s.ApplyChange("inmemory://doc/1", 2, "new"))
	doc, _ := s.Get("inmemory://doc/1")
	assert.Equal(t, "new", doc.Text)
	assert.Equal(t, int32(2), doc.Version)
}

func TestApplyChangeRejectsStaleVersion(t *testing.T) {
	s := newTestStore()
	s.Open("inmemory://doc/1", "lu", 1, "v1")

	require.True(t, s.ApplyChange("inmemory://doc/1", 3, "v3"))

	// same version and older version must both be ignored
	assert.False(t, s.ApplyChange("inmemory://doc/1", 3, "dup"))
	assert.False(t, s.ApplyChange("inmemory://doc/1", 2, "stale"))

	doc, _ := s.Get("inmemory://doc/1")
	assert.Equal(t, "v3", doc.Text)
	assert.Equal(t, int32(3), doc.Version)
}

func TestApplyChangeUnknownURI(t *testing.T) {
	s := newTestStore()
	assert.False(t, s.ApplyChange("inmemory://doc/none", 1, "text"))
	assert.Equal(t, 0, s.Len())
}

func TestReopenOverwrites(t *testing.T) {
	s := newTestStore()
	s.Open("inmemory://doc/1", "lu", 5, "first")
	s.Open("inmemory://doc/1", "lu", 1, "second")

	doc, ok := s.Get("inmemory://doc/1")
	require.True(t, ok)
	assert.Equal(t, "second", doc.Text)
	assert.Equal(t, int32(1), doc.Version)
	assert.Equal(t, 1, s.Len())
}

func TestCloseIdempotent(t *testing.T) {
	s := newTestStore()
	s.Open("inmemory://doc/1", "lu", 1, "text")

	s.Close("inmemory://doc/1")
	assert.Equal(t, 0, s.Len())

	// closing again, or closing something never opened, must not panic or
	// change the store
	s.Close("inmemory://doc/1")
	s.Close("inmemory://doc/other")
	assert.Equal(t, 0, s.Len())
}

func TestSnapshotsAreStable(t *testing.T) {
	s := newTestStore()
	s.Open("inmemory://doc/1", "lu", 1, "before")
	before, _ := s.Get("inmemory://doc/1")

	s.ApplyChange("inmemory://doc/1", 2, "after")

	// the snapshot taken before the change must not have been mutated
	assert.Equal(t, "before", before.Text)
	assert.Equal(t, int32(1), before.Version)
}

func TestLinesNormalizesCRLF(t *testing.T) {
	s := newTestStore()
	s.Open("inmemory://doc/1", "lu", 1, "a\r\nb\nc")
	doc, _ := s.Get("inmemory://doc/1")
	assert.Equal(t, []string{"a", "b", "c"}, doc.Lines())
}
