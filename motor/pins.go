package motor

import (
	"fmt"

	"github.com/pb33f/harhar"
)

// Pin is a header or cookie the user chose to keep in an entry summary.
// Two pins are the same pin only if name and value are both equal; HAR allows
// repeated header names.
type Pin struct {
	Name  string
	Value string
}

func (p Pin) String() string {
	return p.Name + ": " + p.Value
}

// PinsFromHeaders converts HAR name/value pairs into pins, in order.
func PinsFromHeaders(headers []harhar.NameValuePair) []Pin {
	pins := make([]Pin, len(headers))
	for i, h := range headers {
		pins[i] = Pin{Name: h.Name, Value: h.Value}
	}
	return pins
}

// PinsFromCookies converts HAR cookies into pins, in order. Only name and
// value take part; path, domain and flags are dropped.
func PinsFromCookies(cookies []harhar.Cookie) []Pin {
	pins := make([]Pin, len(cookies))
	for i, c := range cookies {
		pins[i] = Pin{Name: c.Name, Value: c.Value}
	}
	return pins
}

// HeaderSelection tracks which of one list of headers (or cookies) is pinned.
type HeaderSelection struct {
	available []Pin
	pinned    []Pin
}

// NewHeaderSelection creates a selection over available with nothing pinned.
func NewHeaderSelection(available []Pin) *HeaderSelection {
	return &HeaderSelection{
		available: available,
		pinned:    make([]Pin, 0, 4),
	}
}

// Available returns the full list the selection was built from.
func (s *HeaderSelection) Available() []Pin {
	return s.available
}

// Pinned returns the selected pins in the order they were added.
func (s *HeaderSelection) Pinned() []Pin {
	out := make([]Pin, len(s.pinned))
	copy(out, s.pinned)
	return out
}

// Len returns the number of pinned items.
func (s *HeaderSelection) Len() int {
	return len(s.pinned)
}

// IsPinned reports whether p is pinned.
func (s *HeaderSelection) IsPinned(p Pin) bool {
	return indexOfPin(s.pinned, p) >= 0
}

// Add pins p. Adding an already pinned item is a no-op.
func (s *HeaderSelection) Add(p Pin) {
	if s.IsPinned(p) {
		return
	}
	s.pinned = append(s.pinned, p)
}

// Remove unpins p. Removing an item that is not pinned is a no-op.
func (s *HeaderSelection) Remove(p Pin) {
	i := indexOfPin(s.pinned, p)
	if i < 0 {
		return
	}
	s.pinned = append(s.pinned[:i:i], s.pinned[i+1:]...)
}

// Toggle pins p if it is not pinned and unpins it otherwise. It returns true
// when p ends up pinned.
func (s *HeaderSelection) Toggle(p Pin) bool {
	if s.IsPinned(p) {
		s.Remove(p)
		return false
	}
	s.Add(p)
	return true
}

// Clear unpins everything.
func (s *HeaderSelection) Clear() {
	s.pinned = s.pinned[:0]
}

// Unselected returns the available items that are not pinned, in the order
// of Available.
func (s *HeaderSelection) Unselected() []Pin {
	out := make([]Pin, 0, len(s.available))
	for _, p := range s.available {
		if !s.IsPinned(p) {
			out = append(out, p)
		}
	}
	return out
}

// ToRecord maps pinned items to a name -> value record. When two pins share a
// name the one pinned later wins, since a summary line cannot repeat a key.
func (s *HeaderSelection) ToRecord() *Record {
	r := NewRecord()
	for _, p := range s.pinned {
		r.Set(p.Name, p.Value)
	}
	return r
}

func indexOfPin(pins []Pin, p Pin) int {
	for i, candidate := range pins {
		if candidate == p {
			return i
		}
	}
	return -1
}

// PinList names one of the four pin lists of an entry.
type PinList int

const (
	RequestHeaders PinList = iota
	RequestCookies
	ResponseHeaders
	ResponseCookies
)

// PinLists enumerates the lists in summary order.
var PinLists = []PinList{RequestHeaders, RequestCookies, ResponseHeaders, ResponseCookies}

func (l PinList) String() string {
	switch l {
	case RequestHeaders:
		return "request headers"
	case RequestCookies:
		return "request cookies"
	case ResponseHeaders:
		return "response headers"
	case ResponseCookies:
		return "response cookies"
	default:
		return fmt.Sprintf("PinList(%d)", int(l))
	}
}

// EntryPins holds the four independent selections of one entry.
type EntryPins struct {
	entry *Entry
	lists [4]*HeaderSelection
}

// NewEntryPins creates empty selections over the headers and cookies of entry.
func NewEntryPins(entry *Entry) *EntryPins {
	return &EntryPins{
		entry: entry,
		lists: [4]*HeaderSelection{
			RequestHeaders:  NewHeaderSelection(PinsFromHeaders(entry.Request.Headers)),
			RequestCookies:  NewHeaderSelection(PinsFromCookies(entry.Request.Cookies)),
			ResponseHeaders: NewHeaderSelection(PinsFromHeaders(entry.Response.Headers)),
			ResponseCookies: NewHeaderSelection(PinsFromCookies(entry.Response.Cookies)),
		},
	}
}

// Entry returns the entry the pins belong to.
func (p *EntryPins) Entry() *Entry {
	return p.entry
}

// List returns one of the four selections.
func (p *EntryPins) List(l PinList) *HeaderSelection {
	if l < RequestHeaders || l > ResponseCookies {
		return nil
	}
	return p.lists[l]
}

// Count returns the total number of pins across all four lists.
func (p *EntryPins) Count() int {
	n := 0
	for _, l := range p.lists {
		n += l.Len()
	}
	return n
}

// Record assembles the summary record: the entry defaults, then request
// headers, request cookies, response headers and response cookies.
func (p *EntryPins) Record() *Record {
	return Assemble(DefaultRecord(p.entry),
		p.lists[RequestHeaders].ToRecord(),
		p.lists[RequestCookies].ToRecord(),
		p.lists[ResponseHeaders].ToRecord(),
		p.lists[ResponseCookies].ToRecord(),
	)
}

// Markdown renders the summary record.
func (p *EntryPins) Markdown() string {
	return Render(p.Record())
}

// PinStore owns the pin state of every entry in view, keyed by entry ID.
type PinStore struct {
	pins map[int]*EntryPins
}

// NewPinStore creates an empty store.
func NewPinStore() *PinStore {
	return &PinStore{pins: make(map[int]*EntryPins)}
}

// For returns the pins of entry, creating them on first use.
func (s *PinStore) For(entry *Entry) *EntryPins {
	if p, ok := s.pins[entry.ID]; ok && p.entry == entry {
		return p
	}
	p := NewEntryPins(entry)
	s.pins[entry.ID] = p
	return p
}

// Drop discards the pins of the entry with the given ID.
func (s *PinStore) Drop(id int) {
	delete(s.pins, id)
}

// Retain discards the pins of every entry not in entries.
func (s *PinStore) Retain(entries []*Entry) {
	keep := make(map[int]struct{}, len(entries))
	for _, e := range entries {
		keep[e.ID] = struct{}{}
	}
	for id := range s.pins {
		if _, ok := keep[id]; !ok {
			delete(s.pins, id)
		}
	}
}

// Reset discards all pins.
func (s *PinStore) Reset() {
	s.pins = make(map[int]*EntryPins)
}

// Len returns the number of entries with pin state.
func (s *PinStore) Len() int {
	return len(s.pins)
}
