package motor

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is the cause of a DocumentParseError for blank input.
var ErrEmptyDocument = errors.New("document is empty")

// ErrMissingLog is the cause of a DocumentParseError when the document has
// no top-level "log" object.
var ErrMissingLog = errors.New(`missing "log" object`)

// ErrMissingEntries is the cause of a DocumentParseError when "log" has no
// "entries" array.
var ErrMissingEntries = errors.New(`missing "log.entries" array`)

// DocumentParseError reports input that is not valid JSON or lacks the
// minimal HAR shape. Nothing from a failed parse is ever loaded.
type DocumentParseError struct {
	Err error
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("failed to parse HAR document: %v", e.Err)
}

func (e *DocumentParseError) Unwrap() error {
	return e.Err
}

// EmptyResultError reports a document that parsed but has no entry matching
// the current selection.
type EmptyResultError struct {
	TotalEntries int
	Selection    CodeSelection
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no entries matching %s found in HAR document (%d entries total)",
		e.Selection, e.TotalEntries)
}

// IsEmptyResult reports whether err is an EmptyResultError.
func IsEmptyResult(err error) bool {
	var empty *EmptyResultError
	return errors.As(err, &empty)
}

// IsParseError reports whether err is a DocumentParseError.
func IsParseError(err error) bool {
	var parse *DocumentParseError
	return errors.As(err, &parse)
}
