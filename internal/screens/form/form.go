// Package form implements the questionnaire screen: one item at a time,
// then a review step that submits the draft.
package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/router"
	"github.com/abhisek/dass21/internal/screen"
	"github.com/abhisek/dass21/internal/screens/draft"
	"github.com/abhisek/dass21/internal/screens/result"
	"github.com/abhisek/dass21/internal/ui/components"
	"github.com/abhisek/dass21/internal/ui/layout"
)

// reviewStep is the cursor position after the last item.
const reviewStep = questionnaire.ItemCount + 1

const submitTimeout = 10 * time.Second

// FormScreen walks the respondent through the items of a draft.
type FormScreen struct {
	draft     *draft.Draft
	submitter draft.Submitter

	cursor     int
	likert     components.Likert
	notice     string
	submitting bool
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)
var _ screen.EscapeHandler = (*FormScreen)(nil)
var _ screen.StatusProvider = (*FormScreen)(nil)

// New creates the questionnaire screen positioned on the first item.
func New(d *draft.Draft, submitter draft.Submitter) *FormScreen {
	f := &FormScreen{draft: d, submitter: submitter}
	f.moveTo(1)
	return f
}

func (f *FormScreen) Init() tea.Cmd {
	return nil
}

func (f *FormScreen) Title() string {
	return f.draft.Variant().Title
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	if f.submitting {
		return nil
	}
	if f.cursor == reviewStep {
		return []layout.KeyHint{
			{Key: "Enter", Description: f.draft.Variant().Messages.Submit},
			{Key: "←", Description: "Back"},
			{Key: "Esc", Description: "Details"},
		}
	}
	return []layout.KeyHint{
		{Key: "0-3", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Choose"},
		{Key: "←→", Description: "Item"},
		{Key: "Esc", Description: "Back"},
	}
}

// Status reports the item position, or the review state, for the footer.
func (f *FormScreen) Status() string {
	switch {
	case f.submitting:
		return "Submitting…"
	case f.cursor == reviewStep:
		return fmt.Sprintf("Review · %d/%d answered", f.draft.Answered(), questionnaire.ItemCount)
	}
	return fmt.Sprintf("Item %d/%d", f.cursor, questionnaire.ItemCount)
}

// Cursor returns the current item position, or reviewStep.
func (f *FormScreen) Cursor() int {
	return f.cursor
}

// Notice returns the message shown under the form, if any.
func (f *FormScreen) Notice() string {
	return f.notice
}

// Submitting reports whether a submit is in flight.
func (f *FormScreen) Submitting() bool {
	return f.submitting
}

// moveTo positions the cursor, clamped to the items and the review step.
func (f *FormScreen) moveTo(pos int) {
	if pos < 1 {
		pos = 1
	}
	if pos > reviewStep {
		pos = reviewStep
	}
	f.cursor = pos
	if pos == reviewStep {
		return
	}

	v := f.draft.Variant()
	chosen := components.NoChoice
	if a, ok := f.draft.Responses[pos]; ok && a.Valid() {
		chosen = int(a)
	}
	f.likert = components.NewLikert(fmt.Sprintf("%d. %s", pos, v.Prompt(pos)), v.Options, chosen)
}

func (f *FormScreen) HandleEscape() tea.Cmd {
	if f.submitting {
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		return f, f.handleSubmitDone(msg)
	case tea.KeyMsg:
		if f.submitting {
			return f, nil
		}
		return f, f.handleKey(msg)
	}
	return f, nil
}

func (f *FormScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "right", "pgdown":
		f.moveTo(f.cursor + 1)
		return nil
	case "left", "pgup":
		f.moveTo(f.cursor - 1)
		return nil
	}

	if f.cursor == reviewStep {
		if msg.String() == "enter" {
			return f.submit()
		}
		return nil
	}

	var picked bool
	f.likert, picked = f.likert.Update(msg)
	if picked {
		f.draft.Responses[f.cursor] = questionnaire.Answer(f.likert.Chosen)
		f.notice = ""
		f.moveTo(f.cursor + 1)
	}
	return nil
}

func (f *FormScreen) submit() tea.Cmd {
	f.submitting = true
	f.notice = ""

	req := f.draft.Request()
	s := f.submitter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		r, err := s.Submit(ctx, req)
		return submitDoneMsg{Receipt: r, Err: err}
	}
}

func (f *FormScreen) handleSubmitDone(msg submitDoneMsg) tea.Cmd {
	f.submitting = false
	v := f.draft.Variant()

	if msg.Err == nil {
		next := result.New(msg.Receipt)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	var ve *questionnaire.ValidationError
	if !errors.As(msg.Err, &ve) {
		// Unknown bank, ErrNotRecorded or a timeout: nothing was stored.
		f.notice = v.Messages.NotRecorded
		return nil
	}

	text := ve.Localize(v)
	if ve.Reason == questionnaire.ReasonMissingField && f.draft.CollectsIdentity() {
		f.draft.Notice = text
		f.draft.Focus = ve.Field
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	if ve.Position > 0 {
		f.moveTo(ve.Position)
	}
	f.notice = text
	return nil
}
