// Package hargen produces synthetic HAR documents with a controllable mix of
// response status codes, for demos and tests.
package hargen

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pb33f/harhar"
)

// DefaultStatusPool covers every status class plus the "no response" sentinel.
var DefaultStatusPool = []int{200, 200, 200, 201, 204, 301, 302, 304, 400, 401, 403, 404, 409, 422, 500, 502, 503, 0}

// GenerateOptions configures document generation.
type GenerateOptions struct {
	EntryCount     int      // number of entries
	StatusPool     []int    // statuses drawn uniformly; 0 means no response
	Statuses       []int    // explicit per-entry statuses, overrides EntryCount and StatusPool
	DictionaryPath string   // word list for paths and payloads (empty: built-in words)
	Seed           int64    // random seed for reproducibility (0 = use time)
	BodyRate       float64  // probability that an entry carries payload text
	Domains        []string // hosts to draw request urls from
}

// DefaultGenerateOptions provides sensible defaults.
var DefaultGenerateOptions = GenerateOptions{
	EntryCount: 25,
	StatusPool: DefaultStatusPool,
	BodyRate:   0.6,
	Domains:    []string{"api.example.com", "shop.example.com", "auth.example.com"},
}

func (o GenerateOptions) withDefaults() GenerateOptions {
	if len(o.StatusPool) == 0 {
		o.StatusPool = DefaultGenerateOptions.StatusPool
	}
	if len(o.Domains) == 0 {
		o.Domains = DefaultGenerateOptions.Domains
	}
	if o.BodyRate < 0 {
		o.BodyRate = 0
	}
	if len(o.Statuses) > 0 {
		o.EntryCount = len(o.Statuses)
	}
	return o
}

// Generate builds a HAR document in memory.
func Generate(opts GenerateOptions) (*harhar.HAR, error) {
	opts = opts.withDefaults()
	if opts.EntryCount < 0 {
		return nil, fmt.Errorf("entry count must not be negative, got %d", opts.EntryCount)
	}

	// local rng, never the global source
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	dict, err := LoadDictionary(opts.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	gen := NewEntryGenerator(dict, rng, opts)
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	entries := make([]harhar.Entry, 0, opts.EntryCount)
	for i := 0; i < opts.EntryCount; i++ {
		status := opts.StatusPool[rng.Intn(len(opts.StatusPool))]
		if len(opts.Statuses) > 0 {
			status = opts.Statuses[i]
		}
		entries = append(entries, gen.GenerateEntry(base.Add(time.Duration(i)*1500*time.Millisecond), status))
	}

	return &harhar.HAR{
		Log: harhar.Log{
			Version: "1.2",
			Creator: harhar.Creator{
				Name:    "hargen",
				Version: "1.0.0",
			},
			Entries: entries,
		},
	}, nil
}

// Write encodes har as indented JSON.
func Write(w io.Writer, har *harhar.HAR) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(har); err != nil {
		return fmt.Errorf("failed to write har: %w", err)
	}
	return nil
}

// Marshal generates a document and returns its JSON text.
func Marshal(opts GenerateOptions) ([]byte, error) {
	har, err := Generate(opts)
	if err != nil {
		return nil, err
	}
	return json.Marshal(har)
}

// GenerateToFile generates a document and writes it to path, creating parent
// directories as needed. It returns the number of entries written.
func GenerateToFile(path string, opts GenerateOptions) (int, error) {
	har, err := Generate(opts)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := Write(file, har); err != nil {
		return 0, err
	}
	return len(har.Log.Entries), nil
}
