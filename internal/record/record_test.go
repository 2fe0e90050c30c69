package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dass21/internal/questionnaire"
)

func scored(t *testing.T) (*questionnaire.Variant, questionnaire.Input, *questionnaire.Result) {
	t.Helper()
	e, err := questionnaire.LoadBuiltin("ms")
	require.NoError(t, err)

	answers := make([]questionnaire.Answer, questionnaire.ItemCount)
	for i := range answers {
		answers[i] = questionnaire.Answer(i % 4)
	}
	in := questionnaire.Input{
		Identity:  questionnaire.Identity{Name: "Aisyah", StudentID: "S1", Campus: "MSI", Phone: "012"},
		Responses: questionnaire.FromSlice(answers),
	}
	res, err := e.Compute(in)
	require.NoError(t, err)
	return e.Variant(), in, res
}

func TestNew(t *testing.T) {
	v, in, res := scored(t)
	at := time.Date(2025, 3, 4, 9, 5, 6, 789000, time.UTC)

	s, err := New("abc", at, v, in, res)
	require.NoError(t, err)
	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, "ms", s.Variant)
	assert.Len(t, s.Answers, 21)
	assert.Equal(t, 0, s.Answers[0])
	assert.Equal(t, 3, s.Answers[3])
	assert.Equal(t, res.Scores, s.Scores)
}

func TestNew_RejectsIncompleteInput(t *testing.T) {
	v, in, res := scored(t)
	in.Responses = in.Responses.Clone()
	in.Responses[7] = questionnaire.Unanswered

	_, err := New("abc", time.Now(), v, in, res)
	assert.Error(t, err)

	_, err = New("abc", time.Now(), v, in, nil)
	assert.Error(t, err)
}

func TestRow_Order(t *testing.T) {
	v, in, res := scored(t)
	at := time.Date(2025, 3, 4, 9, 5, 6, 789000, time.UTC)
	s, err := New("abc", at, v, in, res)
	require.NoError(t, err)

	row := s.Row()
	header := Header(s.Fields)
	require.Len(t, row, len(header))
	require.Len(t, row, 1+4+21+3+3)

	assert.Equal(t, "2025-03-04 09:05:06.000789", row[0])
	assert.Equal(t, []string{"Aisyah", "S1", "MSI", "012"}, row[1:5])
	assert.Equal(t, "0", row[5])
	assert.Equal(t, "0", row[25])

	assert.Equal(t, []string{"timestamp", "name", "student_id", "campus", "phone", "q1"}, header[:6])
	assert.Equal(t, []string{
		"stress_total", "anxiety_total", "depression_total",
		"stress_label", "anxiety_label", "depression_label",
	}, header[26:])

	for i, id := range questionnaire.AllSubscales() {
		sc := s.Score(id)
		assert.Equal(t, sc.Label, row[29+i])
	}
}

func TestFlatten_WithoutIdentity(t *testing.T) {
	v, in, res := scored(t)
	s, err := New("abc", time.Now(), v, in, res)
	require.NoError(t, err)

	row := s.Flatten(nil)
	assert.Len(t, row, 1+21+6)
	assert.Len(t, Header(nil), 1+21+6)
}
