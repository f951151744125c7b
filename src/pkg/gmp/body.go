package gmp

import (
	"compress/flate"
	"compress/gzip"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
ReadBody drains an http.Response body, handling compression.

The report endpoint negotiates Content-Encoding when we send our own
Accept-Encoding header, so the usual transparent gzip handling of
net/http is off and we decode here. Pass the original url for more
clear logging.
*/
func ReadBody(resp *http.Response, urlStr string) (body []byte, e *xerr.Error) {
	var reader io.Reader
	contentEncoding := resp.Header.Get("Content-Encoding")

	tl.Log(tl.Verbose5, palette.BlueDim, "Reading body (content encoding is '%s') for '%s'", contentEncoding, urlStr)
	switch contentEncoding {
	case "gzip":
		gzipReader, gzipErr := gzip.NewReader(resp.Body)
		if gzipErr != nil {
			return body, xerr.NewError(gzipErr, "Unable to get gzip reader", urlStr)
		}
		defer gzipReader.Close()
		reader = gzipReader
	case "deflate":
		flateReader := flate.NewReader(resp.Body)
		defer flateReader.Close()
		reader = flateReader
	case "br":
		reader = brotli.NewReader(resp.Body) // brotli reader needs no Close
	case "", "none":
		// No compression, just use the response body as-is
		reader = resp.Body
	default:
		reader = resp.Body
		tl.Log(tl.Warning, palette.YellowDim, "Unsupported %s: '%s'", "Content-Encoding", contentEncoding)
	}

	body, readErr := io.ReadAll(reader)
	if readErr != nil {
		return body, xerr.NewError(readErr, "Failed to read response body", urlStr)
	}
	tl.Log(tl.Verbose6, palette.GreenDim, "Got body length %v (content encoding is '%s') for '%s'", len(body), contentEncoding, urlStr)

	return body, nil
}
