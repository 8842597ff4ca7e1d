package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/pb33f/harhar"
	"github.com/pb33f/hareport/motor"
	"github.com/tidwall/pretty"
)

var (
	detailKeyStyle = lipgloss.NewStyle().
			Foreground(RGBGrey).
			Align(lipgloss.Right)

	detailPinnedKeyStyle = detailKeyStyle.
				Foreground(RGBPink).
				Bold(true)

	detailSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(RGBPink)

	emptyValueText = lipgloss.NewStyle().Faint(true).Render("(empty)")
)

// key column bounds in the entry detail panel
const (
	minDetailKeyWidth = 15
	maxDetailKeyWidth = 25
)

// KeyValuePair is one row of the entry detail panel.
type KeyValuePair struct {
	Key    string
	Value  string
	Pinned bool
}

// Section is a titled group of rows.
type Section struct {
	Title string
	Pairs []KeyValuePair
}

// RenderOptions configures key-value rendering
type RenderOptions struct {
	Width    int
	Truncate bool
	KeyWidth int // 0 picks a share of Width
}

func (o RenderOptions) keyWidth() int {
	if o.KeyWidth > 0 {
		return o.KeyWidth
	}
	return min(max(o.Width*3/10, minDetailKeyWidth), maxDetailKeyWidth)
}

// renderSections lays the sections out as a right-aligned key column next to
// the values, with a blank line between sections.
func renderSections(sections []Section, opts RenderOptions) string {
	keyWidth := opts.keyWidth()
	valueWidth := opts.Width - keyWidth - 3

	blocks := make([]string, 0, len(sections))
	for _, section := range sections {
		var b strings.Builder
		if section.Title != "" {
			b.WriteString(renderSectionHeader(section.Title, opts.Width))
			b.WriteByte('\n')
		}
		for _, pair := range section.Pairs {
			b.WriteString(renderKeyValueRow(pair, keyWidth, valueWidth, opts.Truncate))
			b.WriteByte('\n')
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n")
}

func renderSectionHeader(title string, width int) string {
	return detailSectionStyle.Width(width).Render(title)
}

func renderKeyValueRow(pair KeyValuePair, keyWidth, valueWidth int, truncate bool) string {
	style := detailKeyStyle
	if pair.Pinned {
		style = detailPinnedKeyStyle
	}

	value := pair.Value
	switch {
	case value == "":
		value = emptyValueText
	case truncate && valueWidth > 3 && len(value) > valueWidth:
		value = truncateString(value, valueWidth)
	}

	// continuation lines of bodies stay under the value column
	value = strings.ReplaceAll(value, "\n", "\n"+strings.Repeat(" ", keyWidth+2))

	return style.Width(keyWidth).Render(pair.Key) + "  " + value
}

// buildRequestSections lists a request, marking the headers and cookies
// pinned on the entry.
func buildRequestSections(req *harhar.Request, pinned pinMarks) []Section {
	sections := []Section{{
		Title: "Request",
		Pairs: []KeyValuePair{
			{Key: "Method", Value: req.Method},
			{Key: "URL", Value: req.URL},
			{Key: "HTTP Version", Value: req.HTTPVersion},
		},
	}}

	sections = appendSection(sections, "Headers", nameValuePairsToPairs(req.Headers, pinned.requestHeaders))
	sections = appendSection(sections, "Query Parameters", nameValuePairsToPairs(req.QueryParams, nil))
	sections = appendSection(sections, "Cookies", cookiesToPairs(req.Cookies, pinned.requestCookies))
	if req.Body.Content != "" {
		sections = append(sections, bodySection(req.Body.MIMEType, req.BodySize, req.Body.Content))
	}
	return sections
}

// buildResponseSections lists a response and its timings. Aborted requests
// get a single placeholder section.
func buildResponseSections(resp *harhar.Response, timings *harhar.Timings, pinned pinMarks) []Section {
	if resp.StatusCode == motor.NoResponseStatus {
		return []Section{{
			Title: "Response",
			Pairs: []KeyValuePair{{Key: "Status", Value: "no response received"}},
		}}
	}

	overview := []KeyValuePair{
		{Key: "Status", Value: fmt.Sprintf("%d %s", resp.StatusCode, resp.StatusText)},
		{Key: "HTTP Version", Value: resp.HTTPVersion},
	}
	if resp.RedirectURL != "" {
		overview = append(overview, KeyValuePair{Key: "Redirect", Value: resp.RedirectURL})
	}

	sections := []Section{{Title: "Response", Pairs: overview}}
	sections = appendSection(sections, "Headers", nameValuePairsToPairs(resp.Headers, pinned.responseHeaders))
	sections = appendSection(sections, "Cookies", cookiesToPairs(resp.Cookies, pinned.responseCookies))
	if resp.Body.Content != "" {
		sections = append(sections, bodySection(resp.Body.MIMEType, resp.Body.Size, resp.Body.Content))
	}
	if timings != nil {
		sections = appendSection(sections, "Timings", timingPairs(timings))
	}
	return sections
}

// appendSection skips sections without rows
func appendSection(sections []Section, title string, pairs []KeyValuePair) []Section {
	if len(pairs) == 0 {
		return sections
	}
	return append(sections, Section{Title: title, Pairs: pairs})
}

func bodySection(mimeType string, size int, content string) Section {
	return Section{
		Title: "Body",
		Pairs: []KeyValuePair{
			{Key: "Content-Type", Value: mimeType},
			{Key: "Size", Value: humanizeBytes(size)},
			{Key: "Content", Value: formatBody(content, mimeType)},
		},
	}
}

// timingPairs keeps the phases the HAR writer measured; -1 marks a phase
// that did not apply.
func timingPairs(t *harhar.Timings) []KeyValuePair {
	phases := []struct {
		name string
		ms   float64
	}{
		{"DNS", t.DNS},
		{"Connect", t.Connect},
		{"SSL", t.SSL},
		{"Send", t.Send},
		{"Wait", t.Wait},
		{"Receive", t.Receive},
	}

	var pairs []KeyValuePair
	for _, phase := range phases {
		if phase.ms >= 0 {
			pairs = append(pairs, KeyValuePair{Key: phase.name, Value: fmt.Sprintf("%.2fms", phase.ms)})
		}
	}
	return pairs
}

// pinMarks holds the pin lists of an entry, for marking rows
type pinMarks struct {
	requestHeaders  *motor.HeaderSelection
	requestCookies  *motor.HeaderSelection
	responseHeaders *motor.HeaderSelection
	responseCookies *motor.HeaderSelection
}

func pinMarksOf(pins *motor.EntryPins) pinMarks {
	if pins == nil {
		return pinMarks{}
	}
	return pinMarks{
		requestHeaders:  pins.List(motor.RequestHeaders),
		requestCookies:  pins.List(motor.RequestCookies),
		responseHeaders: pins.List(motor.ResponseHeaders),
		responseCookies: pins.List(motor.ResponseCookies),
	}
}

func pinnedPair(name, value string, pinned *motor.HeaderSelection) KeyValuePair {
	return KeyValuePair{
		Key:    name,
		Value:  value,
		Pinned: pinned != nil && pinned.IsPinned(motor.Pin{Name: name, Value: value}),
	}
}

func nameValuePairsToPairs(nvps []harhar.NameValuePair, pinned *motor.HeaderSelection) []KeyValuePair {
	pairs := make([]KeyValuePair, 0, len(nvps))
	for _, nvp := range nvps {
		pairs = append(pairs, pinnedPair(nvp.Name, nvp.Value, pinned))
	}
	return pairs
}

func cookiesToPairs(cookies []harhar.Cookie, pinned *motor.HeaderSelection) []KeyValuePair {
	pairs := make([]KeyValuePair, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, pinnedPair(c.Name, c.Value, pinned))
	}
	return pairs
}

// formatBody pretty prints and highlights JSON payloads and highlights YAML
// keys. Bodies past maxBodyDisplayLen are cut and shown raw.
func formatBody(content, mimeType string) string {
	if len(content) > maxBodyDisplayLen {
		return content[:maxBodyDisplayLen] + "\n...[truncated]"
	}

	switch detectContentType(mimeType, content) {
	case "json":
		formatted := strings.TrimRight(string(pretty.Pretty([]byte(content))), "\n")
		return highlightLines(formatted, false)
	case "yaml":
		return highlightLines(content, true)
	default:
		return content
	}
}

// detectContentType sniffs JSON from the content itself, since HAR writers
// often record text/plain for JSON APIs. YAML is only taken from the mime
// type.
func detectContentType(mimeType, content string) string {
	if json.Valid([]byte(content)) {
		return "json"
	}
	lower := strings.ToLower(mimeType)
	if !strings.Contains(lower, "json") && (strings.Contains(lower, "yaml") || strings.Contains(lower, "yml")) {
		return "yaml"
	}
	return "plain"
}

func highlightLines(content string, isYAML bool) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = ApplySyntaxHighlightingToLine(line, isYAML)
	}
	return strings.Join(lines, "\n")
}

func humanizeBytes(n int) string {
	if n < 0 {
		return "unknown"
	}
	return humanize.Bytes(uint64(n))
}
