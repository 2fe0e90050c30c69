package questionnaire

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinIDs(t *testing.T) {
	ids, err := BuiltinIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "ms"}, ids)
}

func TestLoadBuiltin_Unknown(t *testing.T) {
	_, err := LoadBuiltin("fr")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestLoadBuiltin_MalayContent(t *testing.T) {
	e := mustBuiltin(t, "ms")
	v := e.Variant()

	assert.Equal(t, 1, e.Multiplier())
	assert.Equal(t, "Saringan Minda Sihat UniKL", v.Title)
	assert.Equal(t, "Saya rasa susah untuk bertenang", v.Prompt(1))
	assert.Equal(t, "Saya rasa hidup ini tidak beerti lagi", v.Prompt(21))
	assert.Equal(t, "", v.Prompt(22))
	assert.Equal(t, []string{"Tidak pernah sama sekali", "Jarang", "Kerap", "Sangat kerap"}, v.Options)
	assert.Equal(t, "Pilih Kampus", v.Identity.CampusPrompt)
	assert.Len(t, v.Identity.Campuses, 12)
	assert.True(t, v.Identity.IsRequired(FieldStudentID))
	assert.False(t, v.Identity.IsRequired(FieldPhone))
	assert.Equal(t, "No. Telefon", v.Identity.Label(FieldPhone))
}

func TestLoadBuiltin_EnglishDoubles(t *testing.T) {
	e := mustBuiltin(t, "en")
	assert.Equal(t, 2, e.Multiplier())
	assert.Equal(t, "Depression", e.Variant().Subscale(Depression).Name)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	data, err := builtinFS.ReadFile("builtin/ms.yaml")
	require.NoError(t, err)

	bad := strings.Replace(string(data), "multiplier: 1", "multiplier: 1\nscoring: reverse", 1)
	_, err = Parse([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestParse_RejectsUnknownSubscale(t *testing.T) {
	data, err := builtinFS.ReadFile("builtin/en.yaml")
	require.NoError(t, err)

	bad := strings.Replace(string(data), "id: anxiety", "id: anger", 1)
	_, err = Parse([]byte(bad))
	assert.Error(t, err)
}

func TestParse_RejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("id: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse question bank")
}

func TestLoadFile(t *testing.T) {
	data, err := builtinFS.ReadFile("builtin/en.yaml")
	require.NoError(t, err)

	custom := strings.Replace(string(data), "id: en", "id: en-staff", 1)
	custom = strings.Replace(custom, "locale: en", "locale: en-GB", 1)
	path := filepath.Join(t.TempDir(), "staff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o644))

	e, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "en-staff", e.Variant().ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_IntegrityFaultNamesFile(t *testing.T) {
	data, err := builtinFS.ReadFile("builtin/ms.yaml")
	require.NoError(t, err)

	broken := strings.Replace(string(data), "{ low: 8, high: 9, label: Ringan }", "{ low: 9, high: 9, label: Ringan }", 1)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

	_, err = LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
	assert.Contains(t, err.Error(), "scores 8..8 match no band")
}

func TestLoadBank(t *testing.T) {
	b, err := LoadBank("")
	require.NoError(t, err)
	assert.Equal(t, "en", b.Default().Variant().ID)
	assert.Len(t, b.Engines(), 2)

	b, err = LoadBank(DefaultVariant)
	require.NoError(t, err)
	assert.Equal(t, "ms", b.Default().Variant().ID)

	_, err = LoadBank("xx")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestNewBank_Duplicate(t *testing.T) {
	e := mustBuiltin(t, "ms")
	_, err := NewBank("", e, e)
	assert.Error(t, err)

	_, err = NewBank("")
	assert.Error(t, err)
}

func TestBank_Get(t *testing.T) {
	b, err := LoadBank(DefaultVariant)
	require.NoError(t, err)

	e, err := b.Get("en")
	require.NoError(t, err)
	assert.Equal(t, "en", e.Variant().ID)

	_, err = b.Get("de")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestBank_Match(t *testing.T) {
	b, err := LoadBank(DefaultVariant)
	require.NoError(t, err)

	tests := []struct {
		header string
		want   string
	}{
		{"", "ms"},
		{"en-US,en;q=0.9", "en"},
		{"ms-MY", "ms"},
		{"ms", "ms"},
		{"fr-FR,en;q=0.5", "en"},
		{"ja", "ms"},
		{";;;", "ms"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Match(tt.header).Variant().ID)
		})
	}
}
