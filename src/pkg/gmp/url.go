package gmp

import (
	"fmt"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
BuildReportURL derives the upstream report URL from the current time and
static configuration. Pure computation, no error conditions.

The report path is:

	{base}/{reportId}/1/{month}/{year}/{fiscalLabel}/0/ipo?search=&v={token}

where token is a DD-HHMM cache buster that changes every minute.
*/
func BuildReportURL(baseURL string, reportID string, now time.Time) string {
	base := strings.TrimSuffix(strings.TrimSpace(baseURL), "/")

	fiscalLabel := FiscalYearLabel(now)
	cacheToken := fmt.Sprintf("%02d-%02d%02d", now.Day(), now.Hour(), now.Minute())

	reportURL := fmt.Sprintf(
		"%s/%s/1/%d/%d/%s/0/ipo?search=&v=%s",
		base, reportID, int(now.Month()), now.Year(), fiscalLabel, cacheToken,
	)

	tl.Log(tl.Verbose, palette.BlueDim, "Built report URL '%s'", reportURL)
	return reportURL
}

/*
FiscalYearLabel computes the Indian fiscal-year label for a moment in
time. The fiscal year starts in April, so any date in Jan-Mar belongs to
the fiscal year that started the previous calendar year.

Example: 2024-02-10 -> "2023-24", 2024-04-05 -> "2024-25".
*/
func FiscalYearLabel(now time.Time) string {
	startYear := now.Year()
	if now.Month() < time.April {
		startYear = startYear - 1
	}
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}
