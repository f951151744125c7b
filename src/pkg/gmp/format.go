package gmp

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// rowsKey is where the report service keeps the row array.
const rowsKey = "reportTableData"

const (
	actionLine = "🚀 Apply today before the issue closes!"
	noIPOLine  = "No IPOs are closing today."
)

/*
FormatRow renders one report row into its fixed 9-line text block.

Every display field goes through StripMarkup; empty results become a "-"
placeholder ("Unknown IPO" for the name). The Open/Close pair collapses
into one Window line, a single "-" when both are empty.
*/
func FormatRow(row map[string]any) string {
	name := StripMarkup(row["Name"])
	if name == "" {
		name = "Unknown IPO"
	}

	openText := StripMarkup(row["Open"])
	closeText := StripMarkup(row["Close"])
	window := "-"
	if openText != "" || closeText != "" {
		window = fmt.Sprintf("%s – %s", fieldOrDash(openText), fieldOrDash(closeText))
	}

	lines := []string{
		"• " + name,
		"GMP: " + fieldOrDash(StripMarkup(row["GMP"])),
		"Price: " + fieldOrDash(StripMarkup(row["Price"])),
		"Subscriptions: " + fieldOrDash(StripMarkup(row["Sub"])),
		"GMP Range: " + fieldOrDash(StripMarkup(row["GMP(L/H)"])),
		"Window: " + window,
		"Listing: " + fieldOrDash(StripMarkup(row["Listing"])),
		"Updated: " + fieldOrDash(StripMarkup(row["Updated-On"])),
		actionLine,
	}

	return strings.Join(lines, "\n")
}

func fieldOrDash(stripped string) string {
	if stripped == "" {
		return "-"
	}
	return stripped
}

/*
ComposeMessage assembles the outbound digest for a report payload.

Three shapes, never an empty string:
  - payload without a usable row array -> header + a JSON dump of
    whatever came back, so the chat still shows something diagnosable
  - no rows closing on the reference date -> header + fixed no-IPO line
  - otherwise -> header + one formatted block per surviving row,
    blank-line separated

Also returns how many rows survived the close-date filter.
*/
func ComposeMessage(payload any, reference time.Time) (message string, rowsMatched int) {
	referenceDate := reference.Format(dateLayout)
	header := fmt.Sprintf("IPOs Closing Today (%s)", referenceDate)

	rows, usable := extractRows(payload)
	if !usable {
		tl.Log(tl.Warning, palette.PurpleBright, "Report payload is %s; composing a %s", "missing a row array", "raw dump fallback")
		return header + "\n\n" + "Unexpected report payload:\n" + dumpPayload(payload), 0
	}

	blocks := make([]string, 0, len(rows))
	for _, row := range rows {
		if !IsClosingToday(row, reference) {
			continue
		}
		blocks = append(blocks, FormatRow(row))
	}

	tl.Log(tl.Info1, palette.Cyan, "'%v' of '%v' rows are closing on '%s'", len(blocks), len(rows), referenceDate)

	if len(blocks) == 0 {
		return header + "\n\n" + noIPOLine, 0
	}

	return header + "\n\n" + strings.Join(blocks, "\n\n"), len(blocks)
}

/*
extractRows pulls the row objects out of the payload. usable is false
when the payload is not an object or the row key is absent/not an array;
non-object entries inside a valid array are skipped silently.
*/
func extractRows(payload any) (rows []map[string]any, usable bool) {
	object, isObject := payload.(map[string]any)
	if !isObject {
		return nil, false
	}

	rawRows, isArray := object[rowsKey].([]any)
	if !isArray {
		return nil, false
	}

	rows = make([]map[string]any, 0, len(rawRows))
	for _, rawRow := range rawRows {
		row, isRow := rawRow.(map[string]any)
		if !isRow {
			continue
		}
		rows = append(rows, row)
	}

	return rows, true
}

func dumpPayload(payload any) string {
	dump, marshalErr := json.MarshalIndent(payload, "", "  ")
	if marshalErr != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(dump)
}
