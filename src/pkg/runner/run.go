package runner

import (
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"ipo-gmp-notifier/src/pkg/gmp"
	"ipo-gmp-notifier/src/pkg/notify"
)

/*
Outcome summarizes a successful run. The server entrypoint returns it as
the response body; the CLI entrypoint logs it.
*/
type Outcome struct {
	ReferenceDate string     `json:"reference_date"`
	RowsMatched   int        `json:"rows_matched"`
	Ack           notify.Ack `json:"ack"`
}

/*
Run executes the whole pipeline once: build the report URL, fetch the
payload, compose the digest, deliver it.

On any failure it makes exactly one extra delivery attempt carrying the
error text to the same destination, then returns the original error. A
failure of that second attempt is logged and swallowed; nothing is
retried further. Both entrypoints share this function and differ only in
how they surface the result.
*/
func Run(settings Settings) (outcome Outcome, e *xerr.Error) {
	outcome, e = runPipeline(settings)
	if e == nil {
		return outcome, nil
	}

	tl.Log(tl.Error, palette.RedBold, "Run failed: '%s'", e)
	reportRunFailure(settings, e)
	return outcome, e
}

func runPipeline(settings Settings) (outcome Outcome, e *xerr.Error) {
	now := gmp.Now()
	outcome.ReferenceDate = now.Format("2006-01-02")

	tl.Log(
		tl.Notice, palette.BlueBold, "%s IPO GMP digest for '%s' (report '%s')",
		"Building", outcome.ReferenceDate, settings.ReportID,
	)

	reportURL := gmp.BuildReportURL(settings.APIBaseURL, settings.ReportID, now)

	payload, e := gmp.FetchReport(reportURL)
	if e != nil {
		return outcome, e
	}

	message, rowsMatched := gmp.ComposeMessage(payload, now)
	outcome.RowsMatched = rowsMatched

	ack, e := notify.SendMessage(settings.Destination, message)
	if e != nil {
		return outcome, e
	}
	outcome.Ack = ack

	tl.Log(
		tl.Notice1, palette.GreenBold, "%s: '%v' rows matched for '%s'",
		"Digest delivered", outcome.RowsMatched, outcome.ReferenceDate,
	)
	return outcome, nil
}

/*
reportRunFailure makes the single best-effort attempt to tell the chat
that the run failed. Its own failure only gets logged; escalating further
would loop.
*/
func reportRunFailure(settings Settings, runErr *xerr.Error) {
	errorText := fmt.Sprintf("⚠️ IPO GMP notifier run failed: %s", runErr)

	_, sendErr := notify.SendMessage(settings.Destination, errorText)
	if sendErr != nil {
		tl.Log(tl.Error, palette.RedBold, "Failed to deliver the failure notice: '%s'", sendErr)
		return
	}

	tl.Log(tl.Info1, palette.Cyan, "%s was %s", "Failure notice", "delivered")
}
