package questionnaire

import (
	"fmt"
	"sort"
	"strings"
)

// Engine scores submissions for one validated question bank.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	variant *Variant
	bands   map[SubscaleID][]Band
	items   map[SubscaleID][]int
}

// NewEngine validates v and prepares its band tables for lookup.
// Returns a *ConfigError if the bank fails any integrity check.
func NewEngine(v *Variant) (*Engine, error) {
	if v == nil {
		return nil, &ConfigError{Problems: []string{"nil question bank"}}
	}
	if err := validateVariant(v); err != nil {
		return nil, err
	}

	e := &Engine{
		variant: v,
		bands:   make(map[SubscaleID][]Band, len(v.Subscales)),
		items:   make(map[SubscaleID][]int, len(v.Subscales)),
	}
	for _, sc := range v.Subscales {
		e.bands[sc.ID] = sortedBands(sc.Bands)
		e.items[sc.ID] = append([]int(nil), sc.Items...)
	}
	return e, nil
}

// Variant returns the question bank the engine scores against.
func (e *Engine) Variant() *Variant {
	return e.variant
}

// Multiplier returns the factor applied to raw subscale sums.
func (e *Engine) Multiplier() int {
	return e.variant.multiplier()
}

// Validate checks a submission is complete without scoring it.
// Identity requirements are checked first, then items in position order;
// the first failure is returned as a *ValidationError.
func (e *Engine) Validate(in Input) error {
	id := e.variant.Identity
	for _, f := range id.Fields {
		if !id.IsRequired(f) {
			continue
		}
		if strings.TrimSpace(in.Identity.Get(f)) == "" {
			return &ValidationError{Reason: ReasonMissingField, Field: f}
		}
	}
	if id.Collects(FieldCampus) && in.Identity.Campus != "" && !e.knownCampus(in.Identity.Campus) {
		return &ValidationError{Reason: ReasonMissingField, Field: FieldCampus}
	}
	return validateItems(in.Responses)
}

// validateItems reports the first unanswered or out-of-range position.
func validateItems(r Responses) error {
	for pos := 1; pos <= ItemCount; pos++ {
		a, ok := r[pos]
		if !ok || a == Unanswered {
			return &ValidationError{Reason: ReasonUnanswered, Position: pos}
		}
		if !a.Valid() {
			return &ValidationError{Reason: ReasonInvalidValue, Position: pos}
		}
	}
	return nil
}

func (e *Engine) knownCampus(c string) bool {
	for _, x := range e.variant.Identity.Campuses {
		if x == c {
			return true
		}
	}
	return false
}

// SubscaleTotal sums the answers at the subscale's seven positions and
// applies the variant multiplier. A missing, unanswered or out-of-range
// answer at any of those positions yields a *ValidationError.
func (e *Engine) SubscaleTotal(r Responses, id SubscaleID) (raw, total int, err error) {
	positions, ok := e.items[id]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownSubscale, id)
	}
	for _, pos := range positions {
		a, ok := r[pos]
		if !ok || a == Unanswered {
			return 0, 0, &ValidationError{Reason: ReasonUnanswered, Position: pos}
		}
		if !a.Valid() {
			return 0, 0, &ValidationError{Reason: ReasonInvalidValue, Position: pos}
		}
		raw += int(a)
	}
	return raw, raw * e.Multiplier(), nil
}

// Classify returns the label of the band containing total.
func (e *Engine) Classify(total int, id SubscaleID) (string, error) {
	bands, ok := e.bands[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSubscale, id)
	}
	// First band whose High reaches total; bands are disjoint and sorted.
	i := sort.Search(len(bands), func(i int) bool { return bands[i].High >= total })
	if i == len(bands) || !bands[i].Contains(total) {
		return "", fmt.Errorf("%w: subscale %q total %d", ErrNoBandMatched, id, total)
	}
	return bands[i].Label, nil
}

// Compute validates the submission and scores every subscale.
func (e *Engine) Compute(in Input) (*Result, error) {
	if err := e.Validate(in); err != nil {
		return nil, err
	}
	return e.score(in.Responses)
}

// ScoreResponses scores answers without any identity checks. It is meant
// for offline scoring where no respondent details exist.
func (e *Engine) ScoreResponses(r Responses) (*Result, error) {
	if err := validateItems(r); err != nil {
		return nil, err
	}
	return e.score(r)
}

func (e *Engine) score(r Responses) (*Result, error) {
	res := &Result{
		Variant: e.variant.ID,
		Scores:  make([]SubscaleScore, 0, len(e.items)),
	}
	for _, id := range AllSubscales() {
		raw, total, err := e.SubscaleTotal(r, id)
		if err != nil {
			return nil, err
		}
		label, err := e.Classify(total, id)
		if err != nil {
			return nil, err
		}
		res.Scores = append(res.Scores, SubscaleScore{
			ID:    id,
			Name:  e.variant.Subscale(id).Name,
			Raw:   raw,
			Total: total,
			Label: label,
		})
	}
	return res, nil
}
