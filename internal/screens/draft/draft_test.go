package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dass21/internal/questionnaire"
)

func newDraft(t *testing.T) *Draft {
	t.Helper()
	e, err := questionnaire.LoadBuiltin("ms")
	require.NoError(t, err)
	return New(e)
}

func TestNew_StartsUnanswered(t *testing.T) {
	d := newDraft(t)
	assert.Equal(t, 0, d.Answered())
	assert.Equal(t, 1, d.FirstUnanswered())
	assert.True(t, d.CollectsIdentity())
}

func TestAnswered(t *testing.T) {
	d := newDraft(t)
	d.Responses[1] = 0
	d.Responses[2] = 3
	assert.Equal(t, 2, d.Answered())
	assert.Equal(t, 3, d.FirstUnanswered())

	for pos := 1; pos <= questionnaire.ItemCount; pos++ {
		d.Responses[pos] = 1
	}
	assert.Equal(t, 0, d.FirstUnanswered())
}

func TestCheckIdentity(t *testing.T) {
	d := newDraft(t)
	ve := d.CheckIdentity()
	require.NotNil(t, ve)
	assert.Equal(t, questionnaire.FieldStudentID, ve.Field)

	d.Identity = questionnaire.Identity{StudentID: "S1", Campus: "MFI"}
	assert.Nil(t, d.CheckIdentity(), "unanswered items are not identity problems")
}

func TestRequest_ClonesResponses(t *testing.T) {
	d := newDraft(t)
	d.Responses[4] = 2
	req := d.Request()
	d.Responses[4] = 0

	assert.Equal(t, "ms", req.Variant)
	assert.Equal(t, questionnaire.Answer(2), req.Responses[4])
}
