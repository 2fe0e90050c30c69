package questionnaire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("submission is incomplete")

	// ErrNoBandMatched is returned by Classify when no band contains the total.
	ErrNoBandMatched = errors.New("no severity band matched")

	// ErrUnknownSubscale is returned for a subscale the variant does not define.
	ErrUnknownSubscale = errors.New("unknown subscale")
)

// Reason classifies why a submission was rejected.
type Reason string

const (
	ReasonMissingField Reason = "missing_field"
	ReasonUnanswered   Reason = "unanswered_item"
	ReasonInvalidValue Reason = "invalid_value"
)

// ValidationError describes the first requirement a submission failed.
// Field is set for ReasonMissingField, Position for item reasons.
type ValidationError struct {
	Reason   Reason
	Field    IdentityField
	Position int
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingField:
		return fmt.Sprintf("required field %q is missing", e.Field)
	case ReasonUnanswered:
		return fmt.Sprintf("item %d is unanswered", e.Position)
	case ReasonInvalidValue:
		return fmt.Sprintf("item %d has a value outside 0..%d", e.Position, MaxAnswer)
	}
	return string(e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Placeholders substituted into message templates. Any other text,
// including a literal %, is rendered as written.
const (
	PlaceholderField    = "{field}"
	PlaceholderPosition = "{n}"
)

// Localize renders the error with the variant's display strings.
func (e *ValidationError) Localize(v *Variant) string {
	if v == nil {
		return e.Error()
	}
	switch e.Reason {
	case ReasonMissingField:
		tmpl := v.Messages.MissingField
		if e.Field == FieldCampus && v.Messages.MissingChoice != "" {
			tmpl = v.Messages.MissingChoice
		}
		if tmpl != "" {
			return strings.ReplaceAll(tmpl, PlaceholderField, v.Identity.Label(e.Field))
		}
	case ReasonUnanswered:
		if v.Messages.Unanswered != "" {
			return strings.ReplaceAll(v.Messages.Unanswered, PlaceholderPosition, strconv.Itoa(e.Position))
		}
	case ReasonInvalidValue:
		if v.Messages.InvalidValue != "" {
			return strings.ReplaceAll(v.Messages.InvalidValue, PlaceholderPosition, strconv.Itoa(e.Position))
		}
	}
	return e.Error()
}

// ConfigError lists every integrity problem found in a variant.
// A variant with a ConfigError must never be used to score submissions.
type ConfigError struct {
	Variant  string
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("question bank %q is invalid:\n  %s", e.Variant, strings.Join(e.Problems, "\n  "))
}
