// Package draft holds the in-progress answers shared by the form screens.
package draft

import (
	"context"
	"errors"

	"github.com/abhisek/dass21/internal/intake"
	"github.com/abhisek/dass21/internal/questionnaire"
)

// Submitter scores and persists a completed form.
type Submitter interface {
	Submit(ctx context.Context, req intake.Request) (*intake.Receipt, error)
}

// Draft is one respondent's form. It is created fresh for every respondent
// and discarded once the result is shown.
type Draft struct {
	Engine    *questionnaire.Engine
	Identity  questionnaire.Identity
	Responses questionnaire.Responses

	// Notice is a localized message to show on the next screen rendered.
	Notice string
	// Focus names the identity field the notice refers to.
	Focus questionnaire.IdentityField
}

// New starts an empty draft for a question bank.
func New(e *questionnaire.Engine) *Draft {
	return &Draft{Engine: e, Responses: questionnaire.NewResponses()}
}

// Variant returns the question bank of the draft.
func (d *Draft) Variant() *questionnaire.Variant {
	return d.Engine.Variant()
}

// CollectsIdentity reports whether the bank asks for respondent details.
func (d *Draft) CollectsIdentity() bool {
	return len(d.Variant().Identity.Fields) > 0
}

// Answered returns how many items have a valid answer.
func (d *Draft) Answered() int {
	n := 0
	for pos := 1; pos <= questionnaire.ItemCount; pos++ {
		if a, ok := d.Responses[pos]; ok && a.Valid() {
			n++
		}
	}
	return n
}

// FirstUnanswered returns the lowest unanswered position, or 0.
func (d *Draft) FirstUnanswered() int {
	for pos := 1; pos <= questionnaire.ItemCount; pos++ {
		if a, ok := d.Responses[pos]; !ok || !a.Valid() {
			return pos
		}
	}
	return 0
}

// Request builds the submission request for the draft.
func (d *Draft) Request() intake.Request {
	return intake.Request{
		Variant:   d.Variant().ID,
		Identity:  d.Identity,
		Responses: d.Responses.Clone(),
	}
}

// CheckIdentity runs the engine's identity checks ahead of the items.
// It returns nil when only item answers are still missing.
func (d *Draft) CheckIdentity() *questionnaire.ValidationError {
	err := d.Engine.Validate(questionnaire.Input{Identity: d.Identity, Responses: d.Responses})
	var ve *questionnaire.ValidationError
	if !errors.As(err, &ve) || ve.Reason != questionnaire.ReasonMissingField {
		return nil
	}
	return ve
}
