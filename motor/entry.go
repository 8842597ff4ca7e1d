package motor

import (
	"time"

	"github.com/pb33f/harhar"
)

// Entry is one captured exchange of a loaded document. ID is the ordinal
// position of the entry inside its document and is stable for the lifetime of
// the document. Entries are never mutated after parsing.
type Entry struct {
	ID int
	*harhar.Entry
}

// Status returns the response status code.
func (e *Entry) Status() int {
	return e.Response.StatusCode
}

// Class returns the status class of the response.
func (e *Entry) Class() StatusClass {
	return Classify(e.Response.StatusCode)
}

// Aborted reports whether the request never received a response.
func (e *Entry) Aborted() bool {
	return e.Response.StatusCode == NoResponseStatus
}

// StartedAt parses startedDateTime, returning the zero time when absent or
// malformed.
func (e *Entry) StartedAt() time.Time {
	if e.Start == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, e.Start)
	if err != nil {
		return time.Time{}
	}
	return t
}

// HasRequestBody reports whether the request carries post data text.
func (e *Entry) HasRequestBody() bool {
	return e.Request.Body.Content != ""
}

// HasResponseBody reports whether the response carries content text.
func (e *Entry) HasResponseBody() bool {
	return e.Response.Body.Content != ""
}
