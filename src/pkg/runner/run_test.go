package runner

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipo-gmp-notifier/src/pkg/gmp"
	"ipo-gmp-notifier/src/pkg/notify"
)

func newChatServer(t *testing.T, responseBody string, sentTexts *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		decodeErr := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, decodeErr)

		text, _ := body["text"].(string)
		*sentTexts = append(*sentTexts, text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(responseBody))
	}))
}

func TestRunDeliversDigest(t *testing.T) {
	today := gmp.Now().Format("2006-01-02")
	payload := fmt.Sprintf(`{"reportTableData":[{"Name":"<b>Foo</b>","GMP":"50","Close":"Today","~Srt_Close":%q}]}`, today)

	var fetchedPath string
	reportServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetchedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer reportServer.Close()

	sentTexts := []string{}
	chatServer := newChatServer(t, `{"ok":true,"result":{"message_id":7,"date":1712300000}}`, &sentTexts)
	defer chatServer.Close()

	settings := Settings{
		APIBaseURL: reportServer.URL,
		ReportID:   "331",
		Destination: notify.Destination{
			Provider: notify.ProviderTelegram,
			BotToken: "tok",
			ChatID:   "1",
			Endpoint: chatServer.URL,
		},
	}

	outcome, e := Run(settings)
	require.Nil(t, e)

	assert.Equal(t, 1, outcome.RowsMatched)
	assert.Equal(t, today, outcome.ReferenceDate)
	assert.Equal(t, "7", outcome.Ack.MessageID)

	assert.Contains(t, fetchedPath, "/331/1/")

	require.Len(t, sentTexts, 1)
	assert.Contains(t, sentTexts[0], "IPOs Closing Today ("+today+")")
	assert.Contains(t, sentTexts[0], "• Foo")
	assert.Contains(t, sentTexts[0], "GMP: 50")
}

func TestRunReportsFetchFailureToChat(t *testing.T) {
	reportServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer reportServer.Close()

	sentTexts := []string{}
	chatServer := newChatServer(t, `{"ok":true,"result":{"message_id":8,"date":1712300001}}`, &sentTexts)
	defer chatServer.Close()

	settings := Settings{
		APIBaseURL: reportServer.URL,
		ReportID:   "331",
		Destination: notify.Destination{
			Provider: notify.ProviderTelegram,
			BotToken: "tok",
			ChatID:   "1",
			Endpoint: chatServer.URL,
		},
	}

	_, e := Run(settings)
	require.NotNil(t, e)

	// Exactly one best-effort failure notice, no digest.
	require.Len(t, sentTexts, 1)
	assert.Contains(t, sentTexts[0], "run failed")
}

func TestRunSwallowsSecondaryNotifyFailure(t *testing.T) {
	reportServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer reportServer.Close()

	sentTexts := []string{}
	chatServer := newChatServer(t, `{"ok":false,"description":"chat not found"}`, &sentTexts)
	defer chatServer.Close()

	settings := Settings{
		APIBaseURL: reportServer.URL,
		ReportID:   "331",
		Destination: notify.Destination{
			Provider: notify.ProviderTelegram,
			BotToken: "tok",
			ChatID:   "1",
			Endpoint: chatServer.URL,
		},
	}

	_, e := Run(settings)

	// The original fetch failure survives; the failed notice is logged only.
	require.NotNil(t, e)
	require.Len(t, sentTexts, 1)
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("API_URL", "https://example.com/api/")
	t.Setenv("BOT_TOKEN", "tok")
	t.Setenv("CHAT_ID", "42")
	t.Setenv("API_REPORT_ID", "")
	t.Setenv("NOTIFY_PROVIDER", "")

	settings := SettingsFromEnv()

	assert.Equal(t, "https://example.com/api/", settings.APIBaseURL)
	assert.Equal(t, DefaultReportID, settings.ReportID)
	assert.Equal(t, notify.ProviderTelegram, settings.Destination.Provider)
	assert.Equal(t, "tok", settings.Destination.BotToken)
	assert.Equal(t, "42", settings.Destination.ChatID)

	t.Setenv("API_REPORT_ID", "777")
	assert.Equal(t, "777", SettingsFromEnv().ReportID)
}
