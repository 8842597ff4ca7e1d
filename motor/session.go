package motor

// Session is the state behind one report view: the loaded document, the code
// selection, the URL query and the pins of every entry. Results are derived
// and recomputed whenever any input changes. A Session is not safe for
// concurrent use; it has a single owner.
type Session struct {
	doc       *Document
	state     *SelectionState
	query     *URLFilter
	dismissed map[int]struct{}
	pins      *PinStore
	results   []*Entry
}

// NewSession creates an empty session starting at the given selection.
func NewSession(initial CodeSelection) *Session {
	return &Session{
		state:     NewSelectionState(initial),
		dismissed: make(map[int]struct{}),
		pins:      NewPinStore(),
		results:   []*Entry{},
	}
}

// Load replaces the current document. Previous results, dismissals, query
// and pins are dropped first; the selection is kept. When the document
// parses but nothing matches the selection an *EmptyResultError is returned
// and the document stays loaded, so re-selecting classes can reveal entries.
func (s *Session) Load(doc *Document) error {
	s.Clear()
	if doc == nil {
		return nil
	}
	s.doc = doc
	s.recompute()

	if len(s.results) == 0 {
		return &EmptyResultError{
			TotalEntries: len(doc.Entries),
			Selection:    s.state.Selection(),
		}
	}
	return nil
}

// Clear unloads the document and drops everything derived from it.
func (s *Session) Clear() {
	s.doc = nil
	s.query = nil
	s.dismissed = make(map[int]struct{})
	s.pins.Reset()
	s.results = []*Entry{}
}

// Document returns the loaded document, nil if none.
func (s *Session) Document() *Document {
	return s.doc
}

// Loaded reports whether a document is installed.
func (s *Session) Loaded() bool {
	return s.doc != nil
}

// Selection returns the current code selection.
func (s *Session) Selection() CodeSelection {
	return s.state.Selection()
}

// SelectionState exposes the toggle state machine, mainly for rendering the
// pending prompt.
func (s *Session) SelectionState() *SelectionState {
	return s.state
}

// Toggle flips class, asking confirmer for gated classes.
func (s *Session) Toggle(class StatusClass, confirmer Confirmer) ToggleOutcome {
	outcome := s.state.Toggle(class, confirmer)
	s.afterToggle(outcome)
	return outcome
}

// RequestToggle starts a two-step toggle. When it returns
// ToggleNeedsConfirmation the caller must eventually call ResolveToggle or
// CancelToggle.
func (s *Session) RequestToggle(class StatusClass) ToggleOutcome {
	outcome := s.state.Request(class)
	s.afterToggle(outcome)
	return outcome
}

// ResolveToggle answers a pending confirmation.
func (s *Session) ResolveToggle(accepted bool) ToggleOutcome {
	outcome := s.state.Resolve(accepted)
	s.afterToggle(outcome)
	return outcome
}

// CancelToggle drops a pending confirmation.
func (s *Session) CancelToggle() {
	s.state.Cancel()
}

func (s *Session) afterToggle(outcome ToggleOutcome) {
	if outcome == ToggleAdded || outcome == ToggleRemoved {
		s.recompute()
	}
}

// SetQuery installs a URL query. An empty query clears the search. On an
// invalid regex the previous query stays in place and the error is returned.
func (s *Session) SetQuery(query string, mode SearchMode) error {
	if query == "" {
		s.query = nil
		s.recompute()
		return nil
	}
	filter, err := NewURLFilter(query, mode)
	if err != nil {
		return err
	}
	s.query = filter
	s.recompute()
	return nil
}

// Query returns the active URL query, "" if none.
func (s *Session) Query() string {
	if !s.query.IsActive() {
		return ""
	}
	return s.query.Query()
}

// Results returns the visible entries in document order.
func (s *Session) Results() []*Entry {
	return s.results
}

// Matching returns how many entries match the selection, ignoring the URL
// query and dismissals.
func (s *Session) Matching() int {
	if s.doc == nil {
		return 0
	}
	return len(FilterErrors(s.doc.Entries, s.state.Selection()))
}

// Dismiss hides the entry with the given ID and discards its pins. It
// reports whether the entry was visible.
func (s *Session) Dismiss(id int) bool {
	visible := false
	for _, e := range s.results {
		if e.ID == id {
			visible = true
			break
		}
	}
	if !visible {
		return false
	}
	s.dismissed[id] = struct{}{}
	s.pins.Drop(id)
	s.recompute()
	return true
}

// Dismissed returns the number of dismissed entries.
func (s *Session) Dismissed() int {
	return len(s.dismissed)
}

// Pins returns the pin state of entry.
func (s *Session) Pins(entry *Entry) *EntryPins {
	return s.pins.For(entry)
}

// Markdown renders the summary of entry with its current pins.
func (s *Session) Markdown(entry *Entry) string {
	return s.pins.For(entry).Markdown()
}

func (s *Session) recompute() {
	if s.doc == nil {
		s.results = []*Entry{}
		s.pins.Reset()
		return
	}

	errs := FilterErrors(s.doc.Entries, s.state.Selection())
	results := make([]*Entry, 0, len(errs))
	for _, e := range ApplyFilters(errs, s.query) {
		if _, gone := s.dismissed[e.ID]; gone {
			continue
		}
		results = append(results, e)
	}
	s.results = results

	// pins live only while their entry is in view
	s.pins.Retain(results)
}
