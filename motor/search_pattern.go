package motor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sahilm/fuzzy"
)

// SearchMode defines the type of URL search to perform
type SearchMode int

const (
	PlainText SearchMode = iota
	Regex
	Fuzzy
)

func (m SearchMode) String() string {
	switch m {
	case Regex:
		return "regex"
	case Fuzzy:
		return "fuzzy"
	default:
		return "text"
	}
}

// Next cycles text -> regex -> fuzzy -> text.
func (m SearchMode) Next() SearchMode {
	return (m + 1) % 3
}

// compiledPattern holds a compiled search pattern
type compiledPattern struct {
	mode      SearchMode
	plainText string
	regex     *regexp.Regexp
}

// compilePattern compiles a search pattern based on search mode
func compilePattern(pattern string, mode SearchMode) (compiledPattern, error) {
	cp := compiledPattern{
		mode: mode,
	}

	if mode == Regex {
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return cp, fmt.Errorf("invalid regex pattern: %w", err)
		}
		cp.regex = regex
	} else {
		cp.plainText = pattern
	}

	return cp, nil
}

// matches checks if haystack matches the compiled pattern
func matches(haystack string, pattern compiledPattern) bool {
	switch pattern.mode {
	case Regex:
		return pattern.regex.MatchString(haystack)
	case Fuzzy:
		// characters of the pattern must appear in order, not adjacently
		return len(fuzzy.Find(pattern.plainText, []string{haystack})) > 0
	}

	// plain text: strings.Contains is faster than regex
	return strings.Contains(haystack, pattern.plainText)
}

// URLFilter keeps entries whose request URL matches a query. An empty query
// is inactive and lets everything through.
type URLFilter struct {
	query   string
	pattern compiledPattern
}

// NewURLFilter compiles query in the given mode.
func NewURLFilter(query string, mode SearchMode) (*URLFilter, error) {
	pattern, err := compilePattern(query, mode)
	if err != nil {
		return nil, err
	}
	return &URLFilter{query: query, pattern: pattern}, nil
}

// ShouldShow returns true if the request URL matches.
func (f *URLFilter) ShouldShow(entry *Entry) bool {
	return matches(entry.Request.URL, f.pattern)
}

// IsActive returns true when a non-empty query is set.
func (f *URLFilter) IsActive() bool {
	return f != nil && f.query != ""
}

// Query returns the raw query string.
func (f *URLFilter) Query() string {
	return f.query
}
