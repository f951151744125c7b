package gmp

import (
	"regexp"
	"strconv"
	"strings"
)

// numericEntityRegexp matches numeric character references like "&#8377;".
var numericEntityRegexp = regexp.MustCompile(`&#(\d+);`)

// tagRegexp matches anything between '<' and '>', tags and fragments alike.
var tagRegexp = regexp.MustCompile(`<[^>]*>`)

// whitespaceRegexp matches runs of whitespace for collapsing.
var whitespaceRegexp = regexp.MustCompile(`\s+`)

// The six named entities the report service actually emits. Plain
// substring replacement, applied after numeric references; partial
// overlaps are accepted as-is.
var namedEntities = []struct {
	entity  string
	literal string
}{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
}

/*
DecodeEntities replaces HTML character references in a report field with
their literal characters. Non-string input yields "".

Numeric references ("&#NNN;") are resolved first, then the small named
set above.
*/
func DecodeEntities(value any) string {
	text, isString := value.(string)
	if !isString {
		return ""
	}

	decoded := numericEntityRegexp.ReplaceAllStringFunc(text, func(reference string) string {
		digits := reference[2 : len(reference)-1]
		codePoint, convErr := strconv.Atoi(digits)
		if convErr != nil {
			return reference
		}
		return string(rune(codePoint))
	})

	for _, pair := range namedEntities {
		decoded = strings.ReplaceAll(decoded, pair.entity, pair.literal)
	}

	return decoded
}

/*
StripMarkup flattens a report field to plain text: tags become a single
space, entities are decoded, whitespace runs collapse to one space and
the result is trimmed. Non-string input yields "".

The output never contains raw tags or character references.
*/
func StripMarkup(value any) string {
	text, isString := value.(string)
	if !isString {
		return ""
	}

	withoutTags := tagRegexp.ReplaceAllString(text, " ")
	decoded := DecodeEntities(withoutTags)
	collapsed := whitespaceRegexp.ReplaceAllString(decoded, " ")

	return strings.TrimSpace(collapsed)
}
