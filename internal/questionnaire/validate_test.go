package questionnaire

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// builtinVariant decodes a fresh copy of a built-in bank for mutation.
func builtinVariant(t *testing.T, id string) *Variant {
	t.Helper()
	data, err := builtinFS.ReadFile("builtin/" + id + ".yaml")
	require.NoError(t, err)
	var v Variant
	require.NoError(t, yaml.Unmarshal(data, &v))
	return &v
}

func requireConfigError(t *testing.T, v *Variant, want string) {
	t.Helper()
	_, err := NewEngine(v)
	require.Error(t, err)

	var ce *ConfigError
	require.True(t, errors.As(err, &ce), "want *ConfigError, got %T", err)
	joined := strings.Join(ce.Problems, "\n")
	assert.Contains(t, joined, want)
}

func TestNewEngine_BuiltinsPass(t *testing.T) {
	for _, id := range []string{"ms", "en"} {
		_, err := NewEngine(builtinVariant(t, id))
		assert.NoError(t, err, id)
	}
}

func TestNewEngine_NilVariant(t *testing.T) {
	_, err := NewEngine(nil)
	assert.Error(t, err)
}

func TestNewEngine_DetectsBandGap(t *testing.T) {
	v := builtinVariant(t, "ms")
	// Ringan 8..9 -> 8..8 leaves 9 unmatched.
	v.Subscale(Stress).Bands[1].High = 8
	requireConfigError(t, v, "scores 9..9 match no band")
}

func TestNewEngine_DetectsBandOverlap(t *testing.T) {
	v := builtinVariant(t, "ms")
	v.Subscale(Anxiety).Bands[1].Low = 4
	requireConfigError(t, v, "overlap")
}

func TestNewEngine_DetectsBandsNotStartingAtZero(t *testing.T) {
	v := builtinVariant(t, "en")
	v.Subscale(Depression).Bands[0].Low = 1
	requireConfigError(t, v, "scores 0..0 match no band")
}

func TestNewEngine_DetectsShortCoverageForMultiplier(t *testing.T) {
	v := builtinVariant(t, "ms")
	// A raw-sum table cannot serve a doubled total.
	v.Multiplier = 2
	for i := range v.Subscales {
		last := len(v.Subscales[i].Bands) - 1
		v.Subscales[i].Bands[last].High = 21
	}
	requireConfigError(t, v, "scores 22..42 match no band")
}

func TestNewEngine_DetectsBadMultiplier(t *testing.T) {
	v := builtinVariant(t, "en")
	v.Multiplier = 3
	requireConfigError(t, v, "multiplier")
}

func TestNewEngine_DetectsItemInTwoSubscales(t *testing.T) {
	v := builtinVariant(t, "ms")
	v.Subscale(Anxiety).Items[0] = 1
	_, err := NewEngine(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1 is scored by both")
	assert.Contains(t, err.Error(), "item 2 is not scored by any subscale")
}

func TestNewEngine_DetectsItemOutOfRange(t *testing.T) {
	v := builtinVariant(t, "ms")
	v.Subscale(Depression).Items[6] = 22
	requireConfigError(t, v, "outside 1..21")
}

func TestNewEngine_DetectsSwappedPartition(t *testing.T) {
	v := builtinVariant(t, "en")
	st, an := v.Subscale(Stress), v.Subscale(Anxiety)
	st.Items[0], an.Items[0] = an.Items[0], st.Items[0]
	requireConfigError(t, v, "differ from the shared partition")
}

func TestNewEngine_DetectsMissingSubscale(t *testing.T) {
	v := builtinVariant(t, "ms")
	v.Subscales = v.Subscales[:2]
	requireConfigError(t, v, `subscale "depression" is missing`)
}

func TestNewEngine_DetectsWrongItemCount(t *testing.T) {
	v := builtinVariant(t, "ms")
	v.Items = v.Items[:20]
	requireConfigError(t, v, "expected 21 item prompts, got 20")
}

func TestNewEngine_DetectsIdentityProblems(t *testing.T) {
	v := builtinVariant(t, "ms")
	v.Identity.Fields = []IdentityField{FieldName, FieldCampus}
	v.Identity.Campuses = nil

	_, err := NewEngine(v)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `required identity field "student_id" is not collected`)
	assert.Contains(t, msg, "no campuses are listed")
}

func TestNewEngine_ReportsEveryProblem(t *testing.T) {
	v := builtinVariant(t, "ms")
	v.ID = ""
	v.Options = v.Options[:2]
	v.Subscale(Stress).Bands[0].Label = ""

	_, err := NewEngine(v)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.GreaterOrEqual(t, len(ce.Problems), 3)
}

func TestNewEngine_BandOrderIrrelevant(t *testing.T) {
	v := builtinVariant(t, "ms")
	bands := v.Subscale(Stress).Bands
	for i, j := 0, len(bands)-1; i < j; i, j = i+1, j-1 {
		bands[i], bands[j] = bands[j], bands[i]
	}

	e, err := NewEngine(v)
	require.NoError(t, err)
	got, err := e.Classify(8, Stress)
	require.NoError(t, err)
	assert.Equal(t, "Ringan", got)
}
