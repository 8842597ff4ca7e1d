package motor

import (
	"fmt"
	"strings"
)

// ExpensiveClassPrompt is shown before adding a class that is expected to
// match a large number of entries.
const ExpensiveClassPrompt = "This may produce a lot of additional entries and take a while to render"

// CodeSelection is a set of status classes. The zero value is the empty set.
type CodeSelection uint8

// DefaultSelection is the selection a fresh view starts with.
var DefaultSelection = NewCodeSelection(StatusClientError, StatusServerError)

// AllSelection contains every status class.
var AllSelection = NewCodeSelection(AllClasses...)

// NewCodeSelection builds a selection from classes, ignoring invalid ones.
func NewCodeSelection(classes ...StatusClass) CodeSelection {
	var s CodeSelection
	for _, c := range classes {
		s = s.With(c)
	}
	return s
}

// ParseCodeSelection parses a list of class names (see ParseStatusClass).
func ParseCodeSelection(names []string) (CodeSelection, error) {
	var s CodeSelection
	for _, name := range names {
		class, err := ParseStatusClass(name)
		if err != nil {
			return 0, err
		}
		s = s.With(class)
	}
	return s, nil
}

func (s CodeSelection) bit(c StatusClass) CodeSelection {
	return 1 << (uint8(c) - 1)
}

// Has reports whether c is in the set.
func (s CodeSelection) Has(c StatusClass) bool {
	return c.Valid() && s&s.bit(c) != 0
}

// With returns the set plus c.
func (s CodeSelection) With(c StatusClass) CodeSelection {
	if !c.Valid() {
		return s
	}
	return s | s.bit(c)
}

// Without returns the set minus c.
func (s CodeSelection) Without(c StatusClass) CodeSelection {
	if !c.Valid() {
		return s
	}
	return s &^ s.bit(c)
}

// Classes returns the members in canonical order.
func (s CodeSelection) Classes() []StatusClass {
	classes := make([]StatusClass, 0, len(AllClasses))
	for _, c := range AllClasses {
		if s.Has(c) {
			classes = append(classes, c)
		}
	}
	return classes
}

// Len returns the number of classes in the set.
func (s CodeSelection) Len() int {
	return len(s.Classes())
}

// IsEmpty reports whether no class is selected.
func (s CodeSelection) IsEmpty() bool {
	return s&AllSelection == 0
}

func (s CodeSelection) String() string {
	classes := s.Classes()
	if len(classes) == 0 {
		return "none"
	}
	labels := make([]string, len(classes))
	for i, c := range classes {
		labels[i] = c.Label()
	}
	return strings.Join(labels, ",")
}

// ToggleOutcome describes what a toggle request did to the selection.
type ToggleOutcome int

const (
	ToggleRemoved ToggleOutcome = iota
	ToggleAdded
	ToggleNeedsConfirmation
	ToggleDeclined
	ToggleBusy
	ToggleInvalid
)

func (o ToggleOutcome) String() string {
	switch o {
	case ToggleRemoved:
		return "removed"
	case ToggleAdded:
		return "added"
	case ToggleNeedsConfirmation:
		return "needs confirmation"
	case ToggleDeclined:
		return "declined"
	case ToggleBusy:
		return "busy"
	default:
		return "invalid"
	}
}

// Confirmer answers a yes/no question, blocking until the user decides.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

// NeverConfirm declines every prompt.
var NeverConfirm Confirmer = ConfirmFunc(func(string) bool { return false })

// SelectionState is the toggle state machine over a CodeSelection. Adding an
// expensive class is gated by a confirmation; while a confirmation is pending
// the selection is not mutated.
type SelectionState struct {
	initial    CodeSelection
	current    CodeSelection
	pending    StatusClass
	hasPending bool
}

// NewSelectionState creates a state starting at initial.
func NewSelectionState(initial CodeSelection) *SelectionState {
	return &SelectionState{
		initial: initial,
		current: initial,
	}
}

// Selection returns the current selection.
func (s *SelectionState) Selection() CodeSelection {
	return s.current
}

// Pending returns the class awaiting confirmation, if any.
func (s *SelectionState) Pending() (StatusClass, bool) {
	return s.pending, s.hasPending
}

// Request is the first half of the two-step toggle. Removal and non-expensive
// additions apply immediately; an expensive addition is parked until Resolve.
func (s *SelectionState) Request(class StatusClass) ToggleOutcome {
	if !class.Valid() {
		return ToggleInvalid
	}
	if s.hasPending {
		return ToggleBusy
	}
	if s.current.Has(class) {
		s.current = s.current.Without(class)
		return ToggleRemoved
	}
	if class.Expensive() {
		s.pending = class
		s.hasPending = true
		return ToggleNeedsConfirmation
	}
	s.current = s.current.With(class)
	return ToggleAdded
}

// Resolve completes a pending confirmation. Without a pending request it
// returns ToggleInvalid and changes nothing.
func (s *SelectionState) Resolve(accepted bool) ToggleOutcome {
	if !s.hasPending {
		return ToggleInvalid
	}
	class := s.pending
	s.pending = StatusUnclassified
	s.hasPending = false

	if !accepted {
		return ToggleDeclined
	}
	s.current = s.current.With(class)
	return ToggleAdded
}

// Cancel drops a pending confirmation, leaving the selection untouched.
func (s *SelectionState) Cancel() {
	s.pending = StatusUnclassified
	s.hasPending = false
}

// Toggle flips class in one call, asking confirmer when the class is gated.
// A nil confirmer declines.
func (s *SelectionState) Toggle(class StatusClass, confirmer Confirmer) ToggleOutcome {
	outcome := s.Request(class)
	if outcome != ToggleNeedsConfirmation {
		return outcome
	}
	if confirmer == nil {
		confirmer = NeverConfirm
	}
	return s.Resolve(confirmer.Confirm(ExpensiveClassPrompt))
}

// Reset restores the initial selection and drops any pending confirmation.
func (s *SelectionState) Reset() {
	s.current = s.initial
	s.Cancel()
}

func (s *SelectionState) String() string {
	if s.hasPending {
		return fmt.Sprintf("%s (pending %s)", s.current, s.pending)
	}
	return s.current.String()
}
