package motor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// MaxDocumentSize is the largest document a source will read. It protects
// against accidentally pointing the tool at something that is not a capture.
const MaxDocumentSize = 512 * 1024 * 1024 // 512MB

// FileSource reads a document from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Text(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("provided path is a directory, not a file: %s", s.Path)
	}
	if info.Size() > MaxDocumentSize {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed size %d", info.Size(), MaxDocumentSize)
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s FileSource) Describe() string {
	return s.Path
}

// TextSource is document text that is already in memory, such as a paste.
type TextSource string

func (s TextSource) Text(ctx context.Context) ([]byte, error) {
	return []byte(s), nil
}

func (s TextSource) Describe() string {
	return "pasted text"
}

// ReaderSource reads a document from a stream, typically stdin.
type ReaderSource struct {
	Reader io.Reader
	Name   string
}

func (s ReaderSource) Text(ctx context.Context) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(s.Reader, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Describe(), err)
	}
	if int64(len(data)) > MaxDocumentSize {
		return nil, fmt.Errorf("%s exceeds maximum allowed size %d", s.Describe(), MaxDocumentSize)
	}
	return data, nil
}

func (s ReaderSource) Describe() string {
	if s.Name == "" {
		return "stdin"
	}
	return s.Name
}

// Ticket identifies one load attempt. Only the most recently issued ticket
// is current; results carrying an older ticket are stale.
type Ticket uint64

// LoadResult is the outcome of one load attempt.
type LoadResult struct {
	Ticket   Ticket
	Source   string
	Document *Document
	Cached   bool
	Err      error
}

// Loader reads and parses documents. A new Begin supersedes every earlier
// ticket, so a slow parse finishing after a newer request can be recognised
// and dropped.
type Loader struct {
	current atomic.Uint64
	cache   Cache
	logger  *slog.Logger
}

// NewLoader creates a loader. A nil cache disables caching; a nil logger
// uses slog.Default().
func NewLoader(cache Cache, logger *slog.Logger) *Loader {
	if cache == nil {
		cache = NewNoOpCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{cache: cache, logger: logger}
}

// Begin issues a new ticket, making every earlier ticket stale.
func (l *Loader) Begin() Ticket {
	return Ticket(l.current.Add(1))
}

// IsCurrent reports whether t is the most recently issued ticket.
func (l *Loader) IsCurrent(t Ticket) bool {
	return uint64(t) == l.current.Load()
}

// Load reads src and parses it under ticket t. It never returns a partially
// loaded document: on failure Document is nil.
func (l *Loader) Load(ctx context.Context, t Ticket, src Source) LoadResult {
	result := LoadResult{Ticket: t, Source: src.Describe()}

	data, err := src.Text(ctx)
	if err != nil {
		result.Err = err
		return result
	}

	hash := Fingerprint(data)
	if doc, ok := l.cache.Get(hash); ok {
		l.logger.Debug("document served from cache", "source", result.Source, "hash", hash)
		result.Document = doc
		result.Cached = true
		return result
	}

	select {
	case <-ctx.Done():
		result.Err = ctx.Err()
		return result
	default:
	}

	doc, err := ParseDocument(data)
	if err != nil {
		l.logger.Debug("document parse failed", "source", result.Source, "error", err)
		result.Err = err
		return result
	}

	l.cache.Put(doc)
	l.logger.Info("HAR document loaded",
		"source", result.Source,
		"entries", len(doc.Entries),
		"size_kb", doc.Size/1024,
		"parse_time", doc.ParseTime)

	if !l.IsCurrent(t) {
		l.logger.Debug("load superseded by newer request", "ticket", uint64(t))
	}

	result.Document = doc
	return result
}

// LoadNow issues a ticket and loads src synchronously.
func (l *Loader) LoadNow(ctx context.Context, src Source) LoadResult {
	return l.Load(ctx, l.Begin(), src)
}
