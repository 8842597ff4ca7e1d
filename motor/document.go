package motor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pb33f/harhar"
)

const (
	keyLog     = "log"
	keyVersion = "version"
	keyCreator = "creator"
	keyBrowser = "browser"
	keyEntries = "entries"
)

// Document is a parsed HAR capture. It is immutable once returned by
// ParseDocument and may be shared between sessions.
type Document struct {
	Version   string
	Creator   *harhar.Creator
	Browser   *harhar.Creator
	Entries   []*Entry
	Hash      string
	Size      int64
	ParseTime time.Duration
}

// Fingerprint returns the xxhash of raw document text, as stored in
// Document.Hash.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

// ParseDocument parses HAR text. Invalid JSON, a missing "log" object or a
// missing "log.entries" array yield a *DocumentParseError.
func ParseDocument(data []byte) (*Document, error) {
	start := time.Now()

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DocumentParseError{Err: ErrEmptyDocument}
	}

	p := &documentParser{
		decoder: newTokenDecoder(bytes.NewReader(data)),
		doc:     &Document{},
	}
	if err := p.parse(); err != nil {
		return nil, &DocumentParseError{Err: err}
	}

	p.doc.Hash = Fingerprint(data)
	p.doc.Size = int64(len(data))
	p.doc.ParseTime = time.Since(start)
	return p.doc, nil
}

// Counts returns the number of entries per status class. Entries without a
// response are counted under StatusUnclassified.
func (d *Document) Counts() map[StatusClass]int {
	counts := make(map[StatusClass]int, len(AllClasses)+1)
	for _, e := range d.Entries {
		counts[e.Class()]++
	}
	return counts
}

type documentParser struct {
	decoder    TokenDecoder
	doc        *Document
	sawLog     bool
	sawEntries bool
}

func (p *documentParser) parse() error {
	token, err := p.decoder.Token()
	if err != nil {
		return err
	}
	if token != json.Delim('{') {
		return fmt.Errorf("expected object at document root, got %v", token)
	}

	for p.decoder.More() {
		key, err := p.nextKey()
		if err != nil {
			return err
		}

		if key == keyLog {
			p.sawLog = true
			if err := p.parseLog(); err != nil {
				return err
			}
			continue
		}
		if err := skipValue(p.decoder); err != nil {
			return err
		}
	}

	// consume the closing brace so trailing garbage inside the root is caught
	if _, err := p.decoder.Token(); err != nil {
		return err
	}
	if _, err := p.decoder.Token(); err != io.EOF {
		if err == nil {
			return fmt.Errorf("unexpected data after document root")
		}
		return err
	}

	if !p.sawLog {
		return ErrMissingLog
	}
	if !p.sawEntries {
		return ErrMissingEntries
	}
	return nil
}

func (p *documentParser) nextKey() (string, error) {
	token, err := p.decoder.Token()
	if err != nil {
		return "", err
	}
	key, ok := token.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", token)
	}
	return key, nil
}

func (p *documentParser) parseLog() error {
	token, err := p.decoder.Token()
	if err != nil {
		return err
	}
	if token != json.Delim('{') {
		return fmt.Errorf(`expected "log" to be an object, got %v`, token)
	}

	for p.decoder.More() {
		key, err := p.nextKey()
		if err != nil {
			return err
		}

		switch key {
		case keyVersion:
			if err := p.decoder.Decode(&p.doc.Version); err != nil {
				return err
			}
		case keyCreator:
			var creator harhar.Creator
			if err := p.decoder.Decode(&creator); err != nil {
				return err
			}
			p.doc.Creator = &creator
		case keyBrowser:
			var browser harhar.Creator
			if err := p.decoder.Decode(&browser); err != nil {
				return err
			}
			p.doc.Browser = &browser
		case keyEntries:
			p.sawEntries = true
			if err := p.parseEntries(); err != nil {
				return err
			}
		default:
			if err := skipValue(p.decoder); err != nil {
				return err
			}
		}
	}

	_, err = p.decoder.Token()
	return err
}

func (p *documentParser) parseEntries() error {
	token, err := p.decoder.Token()
	if err != nil {
		return err
	}
	if token != json.Delim('[') {
		return fmt.Errorf(`expected "log.entries" to be an array, got %v`, token)
	}

	entryIndex := 0
	for p.decoder.More() {
		var entry harhar.Entry
		if err := p.decoder.Decode(&entry); err != nil {
			return fmt.Errorf("failed to parse entry %d: %w", entryIndex, err)
		}
		p.doc.Entries = append(p.doc.Entries, &Entry{ID: entryIndex, Entry: &entry})
		entryIndex++
	}

	_, err = p.decoder.Token()
	return err
}
