// Package record defines the submission record persisted for every
// successfully scored questionnaire.
package record

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/dass21/internal/questionnaire"
)

// TimestampLayout is the layout of the timestamp column in flattened rows.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// Submission is one append-only log entry. It is never updated or deleted.
type Submission struct {
	ID        string
	Timestamp time.Time
	Variant   string

	// Fields lists the identity fields the variant collects, in declared order.
	Fields   []questionnaire.IdentityField
	Identity questionnaire.Identity

	// Answers holds the 21 raw answers in position order.
	Answers []int
	Scores  []questionnaire.SubscaleScore
}

// New builds a submission from a scored input. res must come from
// Engine.Compute on the same input.
func New(id string, at time.Time, v *questionnaire.Variant, in questionnaire.Input, res *questionnaire.Result) (*Submission, error) {
	if res == nil || len(res.Scores) != len(questionnaire.AllSubscales()) {
		return nil, fmt.Errorf("incomplete score result for submission %s", id)
	}
	answers := make([]int, questionnaire.ItemCount)
	for i, a := range in.Responses.Slice() {
		if !a.Valid() {
			return nil, fmt.Errorf("submission %s: item %d is not a scored answer", id, i+1)
		}
		answers[i] = int(a)
	}
	return &Submission{
		ID:        id,
		Timestamp: at,
		Variant:   v.ID,
		Fields:    append([]questionnaire.IdentityField(nil), v.Identity.Fields...),
		Identity:  in.Identity,
		Answers:   answers,
		Scores:    append([]questionnaire.SubscaleScore(nil), res.Scores...),
	}, nil
}

// Score returns the score for a subscale.
func (s *Submission) Score(id questionnaire.SubscaleID) questionnaire.SubscaleScore {
	for _, sc := range s.Scores {
		if sc.ID == id {
			return sc
		}
	}
	return questionnaire.SubscaleScore{}
}

// Header returns the column names of a flattened row for the given fields.
func Header(fields []questionnaire.IdentityField) []string {
	cols := make([]string, 0, 1+len(fields)+questionnaire.ItemCount+6)
	cols = append(cols, "timestamp")
	for _, f := range fields {
		cols = append(cols, string(f))
	}
	for pos := 1; pos <= questionnaire.ItemCount; pos++ {
		cols = append(cols, "q"+strconv.Itoa(pos))
	}
	for _, id := range questionnaire.AllSubscales() {
		cols = append(cols, string(id)+"_total")
	}
	for _, id := range questionnaire.AllSubscales() {
		cols = append(cols, string(id)+"_label")
	}
	return cols
}

// Flatten renders the submission as a row matching Header(fields):
// timestamp, identity values, 21 answers, 3 totals, then 3 labels.
func (s *Submission) Flatten(fields []questionnaire.IdentityField) []string {
	row := make([]string, 0, 1+len(fields)+questionnaire.ItemCount+6)
	row = append(row, s.Timestamp.Format(TimestampLayout))
	for _, f := range fields {
		row = append(row, s.Identity.Get(f))
	}
	for _, a := range s.Answers {
		row = append(row, strconv.Itoa(a))
	}
	for _, id := range questionnaire.AllSubscales() {
		row = append(row, strconv.Itoa(s.Score(id).Total))
	}
	for _, id := range questionnaire.AllSubscales() {
		row = append(row, s.Score(id).Label)
	}
	return row
}

// Row flattens the submission using the fields its variant collects.
func (s *Submission) Row() []string {
	return s.Flatten(s.Fields)
}
