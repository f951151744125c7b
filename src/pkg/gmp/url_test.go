package gmp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIST = time.FixedZone("IST", 19800)

func TestFiscalYearLabel(t *testing.T) {
	tests := []struct {
		name   string
		date   time.Time
		expect string
	}{
		{"january belongs to previous fiscal year", time.Date(2024, time.January, 15, 0, 0, 0, 0, testIST), "2023-24"},
		{"march still belongs to previous fiscal year", time.Date(2024, time.March, 31, 23, 59, 0, 0, testIST), "2023-24"},
		{"april starts the new fiscal year", time.Date(2024, time.April, 1, 0, 0, 0, 0, testIST), "2024-25"},
		{"december stays in the current fiscal year", time.Date(2024, time.December, 31, 12, 0, 0, 0, testIST), "2024-25"},
		{"century wrap keeps two digits", time.Date(1999, time.May, 1, 0, 0, 0, 0, testIST), "1999-00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, FiscalYearLabel(tt.date))
		})
	}
}

func TestBuildReportURL(t *testing.T) {
	now := time.Date(2024, time.April, 5, 9, 7, 0, 0, testIST)

	url := BuildReportURL("https://example.com/api/", "331", now)
	require.Equal(t, "https://example.com/api/331/1/4/2024/2024-25/0/ipo?search=&v=05-0907", url)
}

func TestBuildReportURLKeepsBaseWithoutTrailingSlash(t *testing.T) {
	now := time.Date(2024, time.February, 9, 23, 58, 0, 0, testIST)

	url := BuildReportURL("https://example.com/api", "42", now)
	require.Equal(t, "https://example.com/api/42/1/2/2024/2023-24/0/ipo?search=&v=09-2358", url)
}
