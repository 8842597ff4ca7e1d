package motor

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pb33f/harhar"
	"github.com/pb33f/hareport/hargen"
	"github.com/stretchr/testify/require"
)

func newTestEntry(id int, method, url string, status int) *Entry {
	return &Entry{
		ID: id,
		Entry: &harhar.Entry{
			Start: "2024-03-01T12:00:00Z",
			Request: harhar.Request{
				Method: method,
				URL:    url,
			},
			Response: harhar.Response{
				StatusCode: status,
			},
		},
	}
}

func entriesWithStatuses(statuses ...int) []*Entry {
	entries := make([]*Entry, len(statuses))
	for i, s := range statuses {
		entries[i] = newTestEntry(i, "GET", "https://api.example.com/item", s)
	}
	return entries
}

func documentOf(entries ...*Entry) *Document {
	return &Document{Version: "1.2", Entries: entries, Hash: "test"}
}

// generatedHAR returns the JSON text of a synthetic document whose entries
// carry exactly the given statuses.
func generatedHAR(t *testing.T, statuses ...int) []byte {
	t.Helper()
	har, err := hargen.Generate(hargen.GenerateOptions{Statuses: statuses, Seed: 1, BodyRate: 0.5})
	require.NoError(t, err)
	data, err := json.Marshal(har)
	require.NoError(t, err)
	return data
}

func ids(entries []*Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
