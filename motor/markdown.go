package motor

import "strconv"

// default summary field names
const (
	FieldMethod     = "method"
	FieldURL        = "url"
	FieldStatus     = "status"
	FieldReqPayload = "reqPayload"
	FieldResPayload = "resPayload"
)

// DefaultRecord seeds the summary of an entry with method, url and status,
// plus the request and response payloads when they carry text.
func DefaultRecord(entry *Entry) *Record {
	r := NewRecord()
	r.Set(FieldMethod, entry.Request.Method)
	r.Set(FieldURL, entry.Request.URL)
	r.Set(FieldStatus, strconv.Itoa(entry.Response.StatusCode))

	if entry.HasRequestBody() {
		r.Set(FieldReqPayload, entry.Request.Body.Content)
	}
	if entry.HasResponseBody() {
		r.Set(FieldResPayload, entry.Response.Body.Content)
	}
	return r
}
