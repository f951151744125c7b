package gmp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateUnknown is the sentinel NormalizeDate returns for anything it
// cannot turn into a calendar date. It never matches a real date string.
const DateUnknown = "unknown"

const dateLayout = "2006-01-02"

var isoDateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// dayMonthRegexp matches the report's short close-date form, e.g. "5-Apr".
var dayMonthRegexp = regexp.MustCompile(`^(\d{1,2})-([A-Za-z]{3})$`)

var monthNumberByAbbrev = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// Explicit layouts tried last, in order. Generic locale parsing is a
// known ambiguity trap for this feed, so every accepted shape is listed.
var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02-Jan-2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02/01/2006",
	"2006/01/02",
}

/*
NormalizeDate turns a heterogeneous report date value into a
"YYYY-MM-DD" string, or DateUnknown when it cannot. Total: never panics,
never errors.

Rules, in order:
  - nil/empty/non-string -> DateUnknown
  - already "YYYY-MM-DD" -> returned unchanged
  - "D-Mon"/"DD-Mon" (3-letter month, any case) -> expanded with the
    reference year; no fiscal-year rollover is inferred
  - one of the explicit fallback layouts, parsed in the reference
    timezone -> its calendar date
  - anything else -> DateUnknown

All parsing happens in the reference time's location so a close date
never drifts across the Asia/Kolkata day boundary.
*/
func NormalizeDate(value any, reference time.Time) string {
	text, isString := value.(string)
	if !isString {
		return DateUnknown
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return DateUnknown
	}

	if isoDateRegexp.MatchString(trimmed) {
		return trimmed
	}

	if match := dayMonthRegexp.FindStringSubmatch(trimmed); match != nil {
		monthNumber, known := monthNumberByAbbrev[strings.ToLower(match[2])]
		if known {
			day, _ := strconv.Atoi(match[1])
			return fmt.Sprintf("%04d-%s-%02d", reference.Year(), monthNumber, day)
		}
	}

	for _, layout := range fallbackDateLayouts {
		parsed, parseErr := time.ParseInLocation(layout, trimmed, reference.Location())
		if parseErr == nil {
			// Offset-bearing layouts keep the string's own zone; convert
			// before taking the calendar date so it cannot drift across
			// the reference day boundary.
			return parsed.In(reference.Location()).Format(dateLayout)
		}
	}

	return DateUnknown
}

/*
ResolveCloseDate picks the close-date field for a row and normalizes it.

The report carries two close fields: "~Srt_Close" (machine-sortable,
preferred) and "Close" (display form, fallback when the preferred one is
absent or strips to nothing).
*/
func ResolveCloseDate(row map[string]any, reference time.Time) string {
	closeText := StripMarkup(row["~Srt_Close"])
	if closeText == "" {
		closeText = StripMarkup(row["Close"])
	}
	return NormalizeDate(closeText, reference)
}

/*
IsClosingToday reports whether a row's resolved close date equals the
calendar date of the reference time. Rows with unparseable close dates
never match.
*/
func IsClosingToday(row map[string]any, reference time.Time) bool {
	closeDate := ResolveCloseDate(row, reference)
	if closeDate == DateUnknown {
		return false
	}
	return closeDate == reference.Format(dateLayout)
}
