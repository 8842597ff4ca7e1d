package motor

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is an insertion-ordered mapping of field names to values. Setting an
// existing key replaces its value but keeps its original position.
type Record struct {
	fields *orderedmap.OrderedMap[string, string]
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.New[string, string]()}
}

// RecordOf builds a record from alternating key/value arguments. A trailing
// key without a value is ignored.
func RecordOf(kv ...string) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

// Set stores value under key.
func (r *Record) Set(key, value string) {
	r.fields.Set(key, value)
}

// Get returns the value under key.
func (r *Record) Get(key string) (string, bool) {
	return r.fields.Get(key)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return r.fields.Len()
}

// Keys returns the field names in iteration order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every field in iteration order.
func (r *Record) Each(fn func(key, value string)) {
	if r == nil {
		return
	}
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Assemble merges sources left to right into a new record. On key collision
// the later source wins; the key stays where it was first inserted. Nil
// sources are skipped. The inputs are not modified.
func Assemble(defaults *Record, sources ...*Record) *Record {
	out := NewRecord()
	defaults.Each(out.Set)
	for _, src := range sources {
		src.Each(out.Set)
	}
	return out
}

// MarkdownSeparator terminates every rendered line: a Markdown hard break
// followed by a newline.
const MarkdownSeparator = "  \n"

// Render formats the record as Markdown, one "*key*: `value`" line per field.
// An empty record renders to the empty string. Output depends only on the
// record contents and order.
func Render(r *Record) string {
	if r.Len() == 0 {
		return ""
	}

	var b strings.Builder
	r.Each(func(key, value string) {
		b.WriteString("*")
		b.WriteString(key)
		b.WriteString("*: ")
		b.WriteString(codeSpan(value))
		b.WriteString(MarkdownSeparator)
	})
	return b.String()
}

// codeSpan wraps value in a backtick run longer than any run inside it, so
// values containing backticks cannot terminate the span early.
func codeSpan(value string) string {
	longest, run := 0, 0
	for i := 0; i < len(value); i++ {
		if value[i] == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest == 0 {
		return "`" + value + "`"
	}

	fence := strings.Repeat("`", longest+1)
	return fence + " " + value + " " + fence
}
