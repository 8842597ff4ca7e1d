package motor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StatusClass is one of the five ordinal groupings of HTTP status codes.
// The value of each class equals the leading digit it matches.
type StatusClass uint8

const (
	// StatusUnclassified marks a status that belongs to no class, most notably
	// the HAR sentinel 0 (no response received).
	StatusUnclassified StatusClass = iota
	StatusInformational
	StatusSuccess
	StatusRedirect
	StatusClientError
	StatusServerError
)

// AllClasses lists every status class in canonical order.
var AllClasses = []StatusClass{
	StatusInformational,
	StatusSuccess,
	StatusRedirect,
	StatusClientError,
	StatusServerError,
}

// NoResponseStatus is the status HAR writers record when a request never
// received a response (network failure, CORS block, aborted request).
const NoResponseStatus = 0

// leading-digit patterns applied to the decimal string form of a status
var classPatterns = map[StatusClass]*regexp.Regexp{
	StatusInformational: regexp.MustCompile(`^1\d*$`),
	StatusSuccess:       regexp.MustCompile(`^2\d*$`),
	StatusRedirect:      regexp.MustCompile(`^3\d*$`),
	StatusClientError:   regexp.MustCompile(`^4\d*$`),
	StatusServerError:   regexp.MustCompile(`^5\d*$`),
}

var classNames = map[StatusClass]string{
	StatusUnclassified:  "unclassified",
	StatusInformational: "informational",
	StatusSuccess:       "success",
	StatusRedirect:      "redirect",
	StatusClientError:   "client error",
	StatusServerError:   "server error",
}

// Classify returns the class of a status code. Classification is purely
// syntactic on the string form: 4000 is a client error, 0 and negative values
// are unclassified.
func Classify(status int) StatusClass {
	if status == NoResponseStatus {
		return StatusUnclassified
	}
	s := strconv.Itoa(status)
	for _, class := range AllClasses {
		if classPatterns[class].MatchString(s) {
			return class
		}
	}
	return StatusUnclassified
}

// Pattern returns the leading-digit pattern of the class, nil for
// StatusUnclassified.
func (c StatusClass) Pattern() *regexp.Regexp {
	return classPatterns[c]
}

// Matches reports whether status belongs to this class.
func (c StatusClass) Matches(status int) bool {
	return c.Valid() && Classify(status) == c
}

// Valid reports whether c is one of the five real classes.
func (c StatusClass) Valid() bool {
	return c >= StatusInformational && c <= StatusServerError
}

// Expensive reports whether adding the class is expected to produce a
// disproportionately large result set and therefore needs confirmation.
func (c StatusClass) Expensive() bool {
	return c == StatusSuccess || c == StatusRedirect
}

// Label returns the short form, e.g. "4xx".
func (c StatusClass) Label() string {
	if !c.Valid() {
		return "---"
	}
	return fmt.Sprintf("%dxx", uint8(c))
}

// Name returns the human readable name, e.g. "client error".
func (c StatusClass) Name() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return classNames[StatusUnclassified]
}

func (c StatusClass) String() string {
	return c.Label()
}

// ParseStatusClass accepts "4xx", "4", "client", "client-error",
// "clienterror" and the equivalent spellings for the other classes.
func ParseStatusClass(s string) (StatusClass, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)

	switch key {
	case "1xx", "1", "informational", "info", "information":
		return StatusInformational, nil
	case "2xx", "2", "success", "ok":
		return StatusSuccess, nil
	case "3xx", "3", "redirect", "redirection":
		return StatusRedirect, nil
	case "4xx", "4", "client", "clienterror", "user":
		return StatusClientError, nil
	case "5xx", "5", "server", "servererror":
		return StatusServerError, nil
	}
	return StatusUnclassified, fmt.Errorf("unknown status class %q", s)
}
