package hargen

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// builtinWords is used when no system dictionary is available (windows,
// containers) or when no path is given.
var builtinWords = []string{
	"account", "api", "auth", "basket", "billing", "cart", "catalog",
	"checkout", "config", "customer", "dashboard", "device", "email",
	"event", "export", "feed", "gateway", "health", "image", "inventory",
	"invoice", "login", "logout", "media", "message", "metrics", "notify",
	"order", "payment", "preview", "product", "profile", "refund", "report",
	"search", "session", "settings", "shipping", "status", "stream",
	"subscription", "team", "token", "upload", "user", "webhook",
}

// Dictionary holds the words used for paths, names and payload values.
type Dictionary struct {
	words []string
}

// NewDictionary wraps a word list; an empty list falls back to the built-in
// words.
func NewDictionary(words []string) *Dictionary {
	if len(words) == 0 {
		words = builtinWords
	}
	return &Dictionary{words: words}
}

// LoadDictionary reads one word per line from path, keeping lowercase
// alphabetic words of 3 to 15 characters. An empty path or a missing file
// yields the built-in words.
func LoadDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return NewDictionary(nil), nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDictionary(nil), nil
		}
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if len(word) >= 3 && len(word) <= 15 && isAlpha(word) {
			words = append(words, strings.ToLower(word))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no usable words found in dictionary %s", path)
	}

	return &Dictionary{words: words}, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// Word returns a random word.
func (d *Dictionary) Word(rng *rand.Rand) string {
	return d.words[rng.Intn(len(d.words))]
}

// Words returns n random words.
func (d *Dictionary) Words(n int, rng *rand.Rand) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = d.Word(rng)
	}
	return out
}

// Size returns the number of words.
func (d *Dictionary) Size() int {
	return len(d.words)
}
