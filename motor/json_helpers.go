package motor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// newTokenDecoder keeps numbers as json.Number so skipped values never go
// through float64.
func newTokenDecoder(r io.Reader) TokenDecoder {
	d := json.NewDecoder(r)
	d.UseNumber()
	return d
}

// skipValue consumes the next value without materialising it. Keys the parser
// ignores (pages, comments, extensions) are walked token by token.
func skipValue(decoder TokenDecoder) error {
	for depth := 0; ; {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("unexpected end of document while skipping value")
		}
		if err != nil {
			return err
		}

		if delim, ok := token.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			default:
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}
