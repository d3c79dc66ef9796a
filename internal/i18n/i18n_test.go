package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/davetashner/triage/internal/severity"
)

func TestCatalogsAreComplete(t *testing.T) {
	for key := range translations[English] {
		_, ok := translations[French][key]
		assert.True(t, ok, "french catalog is missing %q", key)
	}
	assert.Len(t, translations[French], len(translations[English]))
	assert.ElementsMatch(t, []language.Tag{language.English, language.French}, messages.Languages())
}

func TestT(t *testing.T) {
	assert.Equal(t, "Report loaded", T(English, MsgLoaded))
	assert.Equal(t, "Rapport chargé", T(French, MsgLoaded))
	assert.Equal(t, "3 files • 10 issues", T(English, MsgSummary, 3, 10))
	assert.Equal(t, "Report loaded", T("de", MsgLoaded), "unsupported languages fall back")
	assert.Equal(t, "nope", T(English, "nope"))
	assert.Equal(t, `No issue matches "abc"`, T(English, MsgUnknownID, "abc"))
	assert.Equal(t, "Erreur parsing: boom", T(French, MsgParseError, "boom"))
}

func TestTLocalizesNumbers(t *testing.T) {
	assert.Equal(t, "12,345 stars", T(English, MsgStars, 12345))
	assert.NotEqual(t, "12345 étoiles", T(French, MsgStars, 12345))
	assert.Contains(t, T(French, MsgStars, 12345), "345 étoiles")
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, "Élevée", Severity(French, severity.High))
	assert.Equal(t, "Critical", Severity(English, severity.Critical))
	assert.Equal(t, "Info", Severity(English, severity.Level("weird")))
	assert.Equal(t, "Low", Severity("", severity.Low))
}

func TestParseAndToggle(t *testing.T) {
	l, err := Parse("fr")
	require.NoError(t, err)
	assert.Equal(t, French, l)
	l, err = Parse("en-GB")
	require.NoError(t, err)
	assert.Equal(t, English, l)
	for _, bad := range []string{"klingon", "de", ""} {
		_, err = Parse(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, French, English.Toggle())
	assert.Equal(t, English, French.Toggle())
	assert.Equal(t, French, Lang("").Toggle())
	assert.Equal(t, language.French, French.Tag())
	assert.Equal(t, language.English, Lang("xx").Tag())
}
