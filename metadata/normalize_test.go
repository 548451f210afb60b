package metadata_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JiscSD/rdss-image-archive/metadata"
)

func TestValidateLanguage(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"und", "en", "fr", "en-US", "EN-us", "zh-Hant-TW", "de-CH-1996", "x-private", "i-klingon"} {
		assert.NoError(t, metadata.ValidateLanguage(tag), tag)
	}

	for _, tag := range []string{
		"", "bad apples", "12345", "xx-!!", "en--US", "zz",
		"en_US", "eng", "fra", "root", "de-DE-1901-1901", "en-a-bbb-a-ccc",
	} {
		err := metadata.ValidateLanguage(tag)
		var verr metadata.ValidationError
		require.True(t, errors.As(err, &verr), "tag %q should fail validation", tag)
		assert.Equal(t, tag, verr.Value)
	}
}

func TestNormalizeSortKey(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   string
		want string
	}{
		"Inverted name":    {"Elliott, Tom", "elliotttom"},
		"Direct name":      {"Tom Elliott", "tomelliott"},
		"Title with colon": {"Rocks: Thinking Things", "rocksthinkingthings"},
		"ASCII symbols":    {"A+B=C|D~E$", "abcde"},
		"Unicode text":     {"Ça va, Zoë?", "çavazoë"},
		"Unicode quotes":   {"¡Hola! ¿Qué tal?", "holaquétal"},
		"Whitespace kinds": {"a\tb\nc  d", "abcd"},
		"Already normal":   {"aquicktriptozucchabar", "aquicktriptozucchabar"},
		"Empty string":     {"", ""},
		"Only punctuation": {"...!?", ""},
	}
	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			have := metadata.NormalizeSortKey(tc.in)
			assert.Equal(t, tc.want, have)
			assert.Equal(t, have, metadata.NormalizeSortKey(have), "normalization must be idempotent")
		})
	}
}

func TestDeriveSortKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x", metadata.DeriveSortKey("X", "12345", false))
	assert.Equal(t, "12345", metadata.DeriveSortKey("X", "12345", true))
	assert.Equal(t, "Not Normalized!", metadata.DeriveSortKey("X", "Not Normalized!", true))
}

func TestValidateURI(t *testing.T) {
	t.Parallel()

	assert.NoError(t, metadata.ValidateURI("http://orcid.org/0000-0002-4114-6677"))
	assert.NoError(t, metadata.ValidateURI("https://www.wikidata.org/wiki/Q173"))

	for _, uri := range []string{"pickles!", "", "/relative/path", "mailto:someone", "http://"} {
		var verr metadata.ValidationError
		assert.True(t, errors.As(metadata.ValidateURI(uri), &verr), uri)
	}
}
