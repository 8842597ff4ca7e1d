package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureHAR = `{
  "log": {
    "version": "1.2",
    "creator": {"name": "fixture", "version": "1.0"},
    "entries": [
      {"time": 12, "startedDateTime": "2024-03-01T12:00:00Z",
       "request": {"method": "GET", "url": "https://api.example.com/users", "headers": [], "cookies": []},
       "response": {"status": 200, "headers": [], "cookies": [], "content": {"size": 0, "mimeType": ""}}},
      {"time": 250, "startedDateTime": "2024-03-01T12:00:01Z",
       "request": {"method": "POST", "url": "https://api.example.com/orders",
                   "headers": [{"name": "Accept", "value": "application/json"}, {"name": "X-Request-Id", "value": "req-1"}],
                   "cookies": [{"name": "session", "value": "abc"}],
                   "postData": {"mimeType": "application/json", "text": "{\"sku\":\"a-1\"}"}},
       "response": {"status": 404, "headers": [{"name": "X-Trace", "value": "t-1"}], "cookies": [{"name": "flash", "value": "gone"}],
                    "content": {"size": 2, "mimeType": "application/json", "text": "{}"}}},
      {"time": 900, "startedDateTime": "2024-03-01T12:00:02Z",
       "request": {"method": "GET", "url": "https://api.example.com/health", "headers": [{"name": "x-request-id", "value": "req-2"}], "cookies": []},
       "response": {"status": 503, "headers": [], "cookies": [], "content": {"size": 0, "mimeType": ""}}},
      {"time": 3, "startedDateTime": "2024-03-01T12:00:03Z",
       "request": {"method": "GET", "url": "https://cdn.example.com/app.js", "headers": [], "cookies": []},
       "response": {"status": 0, "headers": [], "cookies": [], "content": {"size": 0, "mimeType": ""}}},
      {"time": 40, "startedDateTime": "2024-03-01T12:00:04Z",
       "request": {"method": "GET", "url": "https://api.example.com/old", "headers": [], "cookies": []},
       "response": {"status": 302, "redirectURL": "https://api.example.com/new", "headers": [], "cookies": [], "content": {"size": 0, "mimeType": ""}}}
    ]
  }
}`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.har")
	require.NoError(t, os.WriteFile(path, []byte(fixtureHAR), 0o644))
	return path
}

// execute runs cmd with args and stdin, returning stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestReport_DefaultClasses(t *testing.T) {
	out, _, err := execute(t, newReportCmd(), "", writeFixture(t))
	require.NoError(t, err)

	assert.Contains(t, out, "## Entry 1\n\n*method*: `POST`  \n*url*: `https://api.example.com/orders`  \n*status*: `404`  \n")
	assert.Contains(t, out, "## Entry 2\n")
	assert.NotContains(t, out, "## Entry 0")
	assert.NotContains(t, out, "## Entry 3")
	assert.NotContains(t, out, "## Entry 4")
}

func TestReport_Pins(t *testing.T) {
	out, _, err := execute(t, newReportCmd(), "", writeFixture(t),
		"--pin-request-header", "X-Request-Id",
		"--pin-request-cookie", "session",
		"--pin-response-header", "x-trace",
		"--pin-response-cookie", "Flash")
	require.NoError(t, err)

	assert.Contains(t, out,
		"*reqPayload*: `{\"sku\":\"a-1\"}`  \n*resPayload*: `{}`  \n*X-Request-Id*: `req-1`  \n*session*: `abc`  \n*X-Trace*: `t-1`  \n")
	assert.Contains(t, out, "*x-request-id*: `req-2`  \n", "header names match case-insensitively")
	assert.NotContains(t, out, "*flash*", "cookie names match exactly")
}

func TestReport_ExpensiveClassPrompt(t *testing.T) {
	out, errOut, err := execute(t, newReportCmd(), "y\n", writeFixture(t), "--codes", "3xx")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Continue? [y/N]")
	assert.Contains(t, out, "## Entry 4")

	out, errOut, err = execute(t, newReportCmd(), "n\n", writeFixture(t), "--codes", "3xx,5xx")
	require.NoError(t, err)
	assert.Contains(t, errOut, "skipping 3xx")
	assert.NotContains(t, out, "## Entry 4")
	assert.Contains(t, out, "## Entry 2")
}

func TestReport_YesSkipsPrompt(t *testing.T) {
	out, errOut, err := execute(t, newReportCmd(), "", writeFixture(t), "--codes", "2xx", "--yes")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "Continue?")
	assert.Contains(t, out, "## Entry 0")
}

func TestReport_Stdin(t *testing.T) {
	out, _, err := execute(t, newReportCmd(), fixtureHAR, "-", "--codes", "5xx")
	require.NoError(t, err)
	assert.Contains(t, out, "## Entry 2")
	assert.NotContains(t, out, "## Entry 1")
}

func TestReport_Search(t *testing.T) {
	out, _, err := execute(t, newReportCmd(), "", writeFixture(t), "--search", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "## Entry 2")
	assert.NotContains(t, out, "## Entry 1")

	out, _, err = execute(t, newReportCmd(), "", writeFixture(t), "--search", "ord.rs$", "--regex")
	require.NoError(t, err)
	assert.Contains(t, out, "## Entry 1")
	assert.NotContains(t, out, "## Entry 2")

	_, _, err = execute(t, newReportCmd(), "", writeFixture(t), "--search", "(", "--regex")
	assert.ErrorContains(t, err, "invalid --search")

	_, _, err = execute(t, newReportCmd(), "", writeFixture(t), "--search", "x", "--regex", "--fuzzy")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestReport_EmptyResult(t *testing.T) {
	out, errOut, err := execute(t, newReportCmd(), "", writeFixture(t), "--codes", "1xx")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "no entries matching 1xx")
}

func TestReport_Page(t *testing.T) {
	out, errOut, err := execute(t, newReportCmd(), "", writeFixture(t), "--page", "2", "--page-size", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "## Entry 2")
	assert.NotContains(t, out, "## Entry 1")
	assert.Contains(t, errOut, "page 2/2")
}

func TestReport_Copy(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { copyToClipboard = orig })

	out, errOut, err := execute(t, newReportCmd(), "", writeFixture(t), "--copy")
	require.NoError(t, err)
	assert.Equal(t, out, copied)
	assert.Contains(t, errOut, "copied 2 summaries")
}

func TestReport_BadInput(t *testing.T) {
	_, _, err := execute(t, newReportCmd(), "", filepath.Join(t.TempDir(), "missing.har"))
	assert.ErrorContains(t, err, "does not exist")

	_, _, err = execute(t, newReportCmd(), "{\"log\": {}}", "-")
	assert.ErrorContains(t, err, "failed to load stdin")

	_, _, err = execute(t, newReportCmd(), "", writeFixture(t), "--codes", "6xx")
	assert.ErrorContains(t, err, "invalid --codes")
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		c := newPromptConfirmer(strings.NewReader(tt.input), &out)
		assert.Equal(t, tt.want, c.Confirm("big"), "input %q", tt.input)
		assert.Contains(t, out.String(), "big. Continue? [y/N]")
	}
}
