package metadata

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Undetermined is the language tag used when none is given.
const Undetermined = "und"

// asciiPunctuation lists the ASCII characters removed from sort keys on top of
// the Unicode punctuation categories. Several of them ($, +, <, =, >, ^, `,
// |, ~) are symbols for Unicode.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ValidateLanguage checks the tag against the IANA language subtag registry
// bundled with golang.org/x/text. The tag must be written as registered:
// ISO 639-2 codes with a two-letter equivalent ("eng"), underscores, repeated
// variants or singletons and locale names such as "root" are rejected.
// Private use ("x-") and grandfathered ("i-") tags only need to parse.
func ValidateLanguage(tag string) error {
	if tag == "" {
		return validationErrorf("language tag", tag, "tag is empty")
	}
	t, err := language.Raw.Parse(tag)
	if err != nil {
		return validationErrorf("language tag", tag, "%v", err)
	}
	lower := strings.ToLower(tag)
	if strings.HasPrefix(lower, "x-") || strings.HasPrefix(lower, "i-") {
		return nil
	}
	if !sameSubtags(lower, strings.ToLower(t.String())) {
		return validationErrorf("language tag", tag, "not a registered tag, did you mean %q?", t.String())
	}
	if singleton, ok := repeatedSingleton(lower); ok {
		return validationErrorf("language tag", tag, "extension %q is repeated", singleton)
	}
	return nil
}

// sameSubtags reports whether both tags hold the same subtags, in any order.
// The parser sorts variants and extensions, and drops repeated variants.
func sameSubtags(a, b string) bool {
	as, bs := strings.Split(a, "-"), strings.Split(b, "-")
	if len(as) != len(bs) {
		return false
	}
	count := map[string]int{}
	for _, s := range as {
		count[s]++
	}
	for _, s := range bs {
		if count[s] == 0 {
			return false
		}
		count[s]--
	}
	return true
}

func repeatedSingleton(tag string) (string, bool) {
	seen := map[string]bool{}
	for _, s := range strings.Split(tag, "-")[1:] {
		if len(s) != 1 {
			continue
		}
		if s == "x" {
			break
		}
		if seen[s] {
			return s, true
		}
		seen[s] = true
	}
	return "", false
}

// NormalizeSortKey removes punctuation and whitespace and lowercases the rest.
//
// It is not collation: "Elliott, Tom" becomes "elliotttom" and "Tom Elliott"
// becomes "tomelliott", which sort apart.
func NormalizeSortKey(s string) string {
	t := transform.Chain(
		runes.Remove(runes.Predicate(isSortNoise)),
		cases.Lower(language.Und),
	)
	result, _, _ := transform.String(t, s)
	return result
}

// DeriveSortKey returns the override verbatim when forced, otherwise the
// normalized source.
func DeriveSortKey(source, override string, force bool) string {
	if force {
		return override
	}
	return NormalizeSortKey(source)
}

func isSortNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || strings.ContainsRune(asciiPunctuation, r)
}
