package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/pb33f/hareport/motor"
)

// pre-rendered method strings to avoid repeated style.Render() calls in hot path
var renderedMethods = map[string]string{}

var methodOrder = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "QUERY"}

func init() {
	renderedMethods["GET"] = StyleMethodGreen.Render("GET")
	renderedMethods["QUERY"] = StyleMethodGreen.Render("QUERY")
	renderedMethods["PATCH"] = StyleMethodYellow.Render("PATCH")
	renderedMethods["PUT"] = StyleMethodBlue.Render("PUT")
	renderedMethods["POST"] = StyleMethodBlue.Render("POST")
	renderedMethods["DELETE"] = StyleMethodRed.Render("DELETE")
}

// selected row background, matches the table Selected style
const selectedLineMarker = "\x1b[1;38;5;201;48;2;42;26;42m"

// ColorizeTable post-processes rendered table output, colouring methods,
// status codes and durations. The header and the selected row are left alone
// so the selection background survives.
func ColorizeTable(tableView string, cursor int, rows []table.Row) string {
	lines := strings.Split(tableView, "\n")

	// the id column makes every row unique, so the selected row identifier
	// cannot collide with a duplicate request elsewhere in the page
	var selectedIdentifier string
	if cursor >= 0 && cursor < len(rows) {
		selectedIdentifier = strings.Join(rows[cursor], "")
	}

	var result strings.Builder
	result.Grow(len(tableView) + len(lines)*40)

	for i, line := range lines {
		isSelectedLine := strings.Contains(line, selectedLineMarker) ||
			(selectedIdentifier != "" && strings.Contains(stripSpaces(line), selectedIdentifier))

		if i >= 1 && !isSelectedLine {
			line = colorizeHTTPMethods(line)
			line = colorizeStatusCodes(line)
			line = colorizeDurations(line)
		}

		result.WriteString(line)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func colorizeHTTPMethods(line string) string {
	for _, method := range methodOrder {
		needle := " " + method + " "
		if strings.Contains(line, needle) {
			return strings.Replace(line, needle, " "+renderedMethods[method]+" ", 1)
		}
	}
	return line
}

// colorizeStatusCodes colours the first " NNN " run after the id column by
// its status class
func colorizeStatusCodes(line string) string {
	for i := afterFirstField(line); i < len(line)-4; i++ {
		if line[i] == ' ' &&
			isDigit(line[i+1]) && isDigit(line[i+2]) && isDigit(line[i+3]) &&
			line[i+4] == ' ' {

			code := int(line[i+1]-'0')*100 + int(line[i+2]-'0')*10 + int(line[i+3]-'0')
			class := motor.Classify(code)
			if !class.Valid() {
				return line
			}
			colored := " " + ClassStyle(class).Render(line[i+1:i+4]) + " "
			return line[:i] + colored + line[i+5:]
		}
	}
	return line
}

// afterFirstField returns the offset just past the first run of non-space
// characters, so the id column never looks like a status code
func afterFirstField(line string) int {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	for i < len(line) && line[i] != ' ' {
		i++
	}
	return i
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// colorizeDurations fades the duration in the last column
func colorizeDurations(line string) string {
	trimmed := strings.TrimRight(line, " ")
	lastSpaceIdx := strings.LastIndexByte(trimmed, ' ')
	if lastSpaceIdx == -1 {
		return line
	}

	durationPart := trimmed[lastSpaceIdx+1:]
	if isDuration(durationPart) {
		return trimmed[:lastSpaceIdx+1] + StyleDurationFaint.Render(durationPart) + line[len(trimmed):]
	}
	return line
}

// isDuration accepts "150ms", "2.5s", "3m" and "1h"; paths and random
// identifiers are rejected by requiring a digit-only numeric portion
func isDuration(s string) bool {
	if s == "" || !isDigit(s[0]) {
		return false
	}

	var valueStr string
	switch {
	case strings.HasSuffix(s, "μs"):
		valueStr = strings.TrimSuffix(s, "μs")
	case strings.HasSuffix(s, "ms"):
		valueStr = strings.TrimSuffix(s, "ms")
	case strings.HasSuffix(s, "s"):
		valueStr = strings.TrimSuffix(s, "s")
	case strings.HasSuffix(s, "m"):
		valueStr = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "h"):
		valueStr = strings.TrimSuffix(s, "h")
	default:
		return false
	}

	if valueStr == "" {
		return false
	}

	dotCount := 0
	for _, c := range valueStr {
		if c == '.' {
			dotCount++
			if dotCount > 1 {
				return false
			}
		} else if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
