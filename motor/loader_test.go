package motor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSources(t *testing.T) {
	ctx := context.Background()

	text, err := TextSource("abc").Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), text)
	assert.Equal(t, "pasted text", TextSource("").Describe())

	reader := ReaderSource{Reader: strings.NewReader("xyz")}
	text, err = reader.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("xyz"), text)
	assert.Equal(t, "stdin", reader.Describe())

	dir := t.TempDir()
	path := filepath.Join(dir, "capture.har")
	require.NoError(t, os.WriteFile(path, []byte(minimalHAR), 0o644))

	file := FileSource{Path: path}
	text, err = file.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, minimalHAR, string(text))
	assert.Equal(t, path, file.Describe())

	_, err = FileSource{Path: dir}.Text(ctx)
	assert.ErrorContains(t, err, "directory")

	_, err = FileSource{Path: filepath.Join(dir, "missing.har")}.Text(ctx)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FileSource{Path: "whatever"}.Text(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_Tickets(t *testing.T) {
	l := NewLoader(nil, nil)

	first := l.Begin()
	assert.True(t, l.IsCurrent(first))

	second := l.Begin()
	assert.False(t, l.IsCurrent(first))
	assert.True(t, l.IsCurrent(second))
	assert.Greater(t, uint64(second), uint64(first))
}

func TestLoader_Load(t *testing.T) {
	cache, err := NewDocumentCache(4)
	require.NoError(t, err)
	l := NewLoader(cache, nil)

	res := l.LoadNow(context.Background(), TextSource(minimalHAR))
	require.NoError(t, res.Err)
	require.NotNil(t, res.Document)
	assert.False(t, res.Cached)
	assert.Equal(t, "pasted text", res.Source)
	assert.Len(t, res.Document.Entries, 3)
	assert.Equal(t, 1, cache.Size())

	again := l.LoadNow(context.Background(), TextSource(minimalHAR))
	require.NoError(t, again.Err)
	assert.True(t, again.Cached)
	assert.Same(t, res.Document, again.Document)
	assert.Greater(t, uint64(again.Ticket), uint64(res.Ticket))
}

func TestLoader_ParseFailure(t *testing.T) {
	l := NewLoader(nil, nil)
	res := l.LoadNow(context.Background(), TextSource("{not json"))
	assert.Nil(t, res.Document)
	assert.True(t, IsParseError(res.Err))
}

func TestLoader_SourceFailure(t *testing.T) {
	l := NewLoader(nil, nil)
	boom := errors.New("boom")
	res := l.LoadNow(context.Background(), ReaderSource{Reader: failingReader{err: boom}, Name: "pipe"})
	assert.Nil(t, res.Document)
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, "pipe", res.Source)
}

func TestLoader_StaleResult(t *testing.T) {
	l := NewLoader(nil, nil)
	stale := l.Begin()
	current := l.Begin()

	res := l.Load(context.Background(), stale, TextSource(minimalHAR))
	require.NoError(t, res.Err)
	assert.False(t, l.IsCurrent(res.Ticket))
	assert.True(t, l.IsCurrent(current))
}

type failingReader struct {
	err error
}

func (r failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
