package motor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeSelection_Basics(t *testing.T) {
	s := NewCodeSelection(StatusServerError, StatusClientError)
	assert.Equal(t, DefaultSelection, s)
	assert.True(t, s.Has(StatusClientError))
	assert.False(t, s.Has(StatusSuccess))
	assert.Equal(t, []StatusClass{StatusClientError, StatusServerError}, s.Classes())
	assert.Equal(t, "4xx,5xx", s.String())
	assert.Equal(t, 2, s.Len())

	s = s.Without(StatusClientError).Without(StatusServerError)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, "none", s.String())

	assert.Equal(t, 5, AllSelection.Len())
	assert.Equal(t, CodeSelection(0), CodeSelection(0).With(StatusUnclassified))
}

func TestParseCodeSelection(t *testing.T) {
	s, err := ParseCodeSelection([]string{"5xx", "1", "server"})
	require.NoError(t, err)
	assert.Equal(t, NewCodeSelection(StatusInformational, StatusServerError), s)

	_, err = ParseCodeSelection([]string{"4xx", "bogus"})
	assert.Error(t, err)
}

func TestSelectionState_RemoveIsUnconditional(t *testing.T) {
	state := NewSelectionState(AllSelection)

	assert.Equal(t, ToggleRemoved, state.Toggle(StatusSuccess, NeverConfirm))
	assert.False(t, state.Selection().Has(StatusSuccess))
	assert.Equal(t, ToggleRemoved, state.Toggle(StatusRedirect, nil))
	assert.False(t, state.Selection().Has(StatusRedirect))
}

func TestSelectionState_CheapAddIsImmediate(t *testing.T) {
	state := NewSelectionState(DefaultSelection)

	asked := false
	confirmer := ConfirmFunc(func(string) bool {
		asked = true
		return false
	})

	assert.Equal(t, ToggleAdded, state.Toggle(StatusInformational, confirmer))
	assert.False(t, asked)
	assert.True(t, state.Selection().Has(StatusInformational))
}

func TestSelectionState_ExpensiveAddDeclined(t *testing.T) {
	state := NewSelectionState(DefaultSelection)

	var prompt string
	outcome := state.Toggle(StatusSuccess, ConfirmFunc(func(p string) bool {
		prompt = p
		return false
	}))

	assert.Equal(t, ToggleDeclined, outcome)
	assert.Equal(t, ExpensiveClassPrompt, prompt)
	assert.Equal(t, DefaultSelection, state.Selection())
}

func TestSelectionState_ExpensiveAddAccepted(t *testing.T) {
	state := NewSelectionState(DefaultSelection)

	assert.Equal(t, ToggleAdded, state.Toggle(StatusRedirect, AlwaysConfirm))
	assert.Equal(t, NewCodeSelection(StatusRedirect, StatusClientError, StatusServerError), state.Selection())
}

func TestSelectionState_NilConfirmerDeclines(t *testing.T) {
	state := NewSelectionState(DefaultSelection)
	assert.Equal(t, ToggleDeclined, state.Toggle(StatusSuccess, nil))
	assert.Equal(t, DefaultSelection, state.Selection())
}

func TestSelectionState_TwoStep(t *testing.T) {
	state := NewSelectionState(DefaultSelection)

	assert.Equal(t, ToggleNeedsConfirmation, state.Request(StatusSuccess))
	pending, ok := state.Pending()
	assert.True(t, ok)
	assert.Equal(t, StatusSuccess, pending)
	assert.Equal(t, DefaultSelection, state.Selection(), "selection must not change while pending")
	assert.Contains(t, state.String(), "pending 2xx")

	// nothing else is accepted until the prompt is answered
	assert.Equal(t, ToggleBusy, state.Request(StatusClientError))
	assert.True(t, state.Selection().Has(StatusClientError))

	assert.Equal(t, ToggleAdded, state.Resolve(true))
	_, ok = state.Pending()
	assert.False(t, ok)
	assert.True(t, state.Selection().Has(StatusSuccess))

	assert.Equal(t, ToggleInvalid, state.Resolve(true))
}

func TestSelectionState_CancelAndReset(t *testing.T) {
	state := NewSelectionState(DefaultSelection)

	state.Request(StatusRedirect)
	state.Cancel()
	_, ok := state.Pending()
	assert.False(t, ok)
	assert.Equal(t, DefaultSelection, state.Selection())

	state.Toggle(StatusInformational, nil)
	state.Request(StatusSuccess)
	state.Reset()
	assert.Equal(t, DefaultSelection, state.Selection())
	_, ok = state.Pending()
	assert.False(t, ok)
}

func TestSelectionState_InvalidClass(t *testing.T) {
	state := NewSelectionState(DefaultSelection)
	assert.Equal(t, ToggleInvalid, state.Toggle(StatusUnclassified, AlwaysConfirm))
	assert.Equal(t, ToggleInvalid, state.Toggle(StatusClass(9), AlwaysConfirm))
	assert.Equal(t, DefaultSelection, state.Selection())
}

func TestToggleOutcome_String(t *testing.T) {
	assert.Equal(t, "added", ToggleAdded.String())
	assert.Equal(t, "needs confirmation", ToggleNeedsConfirmation.String())
	assert.Equal(t, "invalid", ToggleOutcome(99).String())
}
