package tui

import (
	"strings"
)

// splitPadding separates leading and trailing whitespace from the content of
// a line so only the content is styled
func splitPadding(line string) (lead, content, trail string) {
	trimmed := strings.TrimRight(line, " \t\r\n")
	trail = line[len(trimmed):]
	content = strings.TrimLeft(trimmed, " \t")
	lead = trimmed[:len(trimmed)-len(content)]
	return lead, content, trail
}

// HighlightYAMLKeyValue colours the key of a "key: value" line, colon
// included. It reports false when the line has no colon.
func HighlightYAMLKeyValue(line string) (string, bool) {
	if !strings.Contains(line, ":") {
		return "", false
	}

	lead, content, trail := splitPadding(line)
	idx := strings.Index(content, ":")
	if idx == -1 {
		return lead + SyntaxKeyStyle.Render(content) + trail, true
	}
	return lead + SyntaxKeyStyle.Render(content[:idx+1]) + content[idx+1:] + trail, true
}

// HighlightJSONLine colours a "key": prefix blue and braces/brackets around
// it. Values stay unstyled.
func HighlightJSONLine(line string) string {
	lead, content, trail := splitPadding(line)

	if idx := strings.Index(content, "\":"); idx > 0 {
		if keyStart := strings.LastIndex(content[:idx], "\""); keyStart >= 0 {
			return lead +
				styleBrackets(content[:keyStart]) +
				SyntaxKeyStyle.Render(content[keyStart:idx+2]) +
				styleBrackets(content[idx+2:]) +
				trail
		}
	}
	return lead + styleBrackets(content) + trail
}

// styleBrackets styles { } pink and [ ] yellow, leaving everything else unstyled
func styleBrackets(text string) string {
	if !strings.ContainsAny(text, "{}[]") {
		return text
	}

	var result strings.Builder
	for _, r := range text {
		switch r {
		case '{', '}':
			result.WriteString(SyntaxBraceStyle.Render(string(r)))
		case '[', ']':
			result.WriteString(SyntaxBracketStyle.Render(string(r)))
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ApplySyntaxHighlightingToLine applies syntax highlighting to a single line
func ApplySyntaxHighlightingToLine(line string, isYAML bool) string {
	if line == "" {
		return line
	}

	if isYAML {
		if result, handled := HighlightYAMLKeyValue(line); handled {
			return result
		}
		return line
	}
	return HighlightJSONLine(line)
}

// HighlightSummaryLine colours one line of an entry summary: the emphasised
// key blue and the code span green. Lines in any other shape pass through.
func HighlightSummaryLine(line string) string {
	if !strings.HasPrefix(line, "*") {
		return line
	}
	keyEnd := strings.Index(line, "*: ")
	if keyEnd <= 0 {
		return line
	}

	keyPart := line[:keyEnd+2]
	valuePart := strings.TrimRight(line[keyEnd+3:], " ")
	trailing := line[keyEnd+3+len(valuePart):]

	return SyntaxKeyStyle.Render(keyPart) + " " + SyntaxCodeStyle.Render(valuePart) + trailing
}
