package motor

import (
	"context"
	"encoding/json"
)

// Source produces the full text of a HAR document, either immediately (a
// pasted string) or eventually (a file, stdin).
type Source interface {
	// Text returns the complete document text
	Text(ctx context.Context) ([]byte, error)

	// Describe names the source for logs and status lines
	Describe() string
}

// TokenDecoder is the part of encoding/json.Decoder the document parser
// walks entries with.
type TokenDecoder interface {
	Token() (json.Token, error)
	Decode(v any) error
	More() bool
}

// Cache provides optional caching of parsed documents keyed by fingerprint.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a document from cache
	Get(hash string) (*Document, bool)

	// Put stores a document in cache
	Put(doc *Document)

	// Clear removes all documents from cache
	Clear()

	// Size returns the current number of cached documents
	Size() int
}
