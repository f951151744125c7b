package gmp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
FetchReport performs a GET against the built report URL and returns the
decoded JSON payload.

The payload is decoded structurally unchecked (any): the report service
is loosely typed and the composer tolerates whatever shape comes back.
A non-2xx status or a body that is not JSON is fatal for the run.
*/
func FetchReport(reportURL string) (payload any, e *xerr.Error) {
	tl.Log(tl.Info, palette.Blue, "%s %s from '%s'", "Fetching", "GMP report", reportURL)

	req, newReqErr := http.NewRequest("GET", reportURL, nil)
	if newReqErr != nil {
		return nil, xerr.NewError(newReqErr, "Failed to create HTTP request", reportURL)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	client := &http.Client{Timeout: time.Duration(Cfg.FetchTimeoutSeconds) * time.Second}
	resp, httpErr := client.Do(req)
	if httpErr != nil {
		return nil, xerr.NewError(httpErr, "HTTP error while fetching the GMP report", map[string]any{"url": reportURL})
	}
	defer resp.Body.Close()

	respBody, e := ReadBody(resp, reportURL)
	if e != nil {
		return nil, e
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, xerr.NewError(fmt.Errorf("status is '%s'", resp.Status), "Report endpoint returned a non-success status", string(respBody))
	}

	decodeErr := json.Unmarshal(respBody, &payload)
	if decodeErr != nil {
		return nil, xerr.NewError(decodeErr, "Failed to decode the report payload as JSON", reportURL)
	}

	tl.Log(tl.Info1, palette.Green, "%s %s ('%v' bytes)", "Fetched", "GMP report", len(respBody))
	return payload, nil
}
