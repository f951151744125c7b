package runner

import (
	"os"
	"strings"

	"ipo-gmp-notifier/src/pkg/config"
	"ipo-gmp-notifier/src/pkg/notify"
)

// DefaultReportID is the GMP report on the upstream service.
const DefaultReportID = "331"

/*
Settings is the explicit configuration object for one run, built once at
startup and passed into the pipeline. Nothing in the pipeline reads the
environment directly, so tests can substitute any of it.
*/
type Settings struct {
	APIBaseURL  string
	ReportID    string
	Destination notify.Destination
}

/*
CheckEnv verifies every environment variable the selected provider needs
and exits(1) when any is missing. Call it before flags and before any
network activity.
*/
func CheckEnv() {
	provider := notify.ResolveProvider(os.Getenv("NOTIFY_PROVIDER"))
	required := append([]string{"API_URL"}, notify.RequiredEnvVars(provider)...)
	config.CheckIfEnvVarsPresent(required...)
}

/*
SettingsFromEnv builds the run settings from the environment.

Recognized names: API_URL (required), API_REPORT_ID (optional, default
"331"), NOTIFY_PROVIDER (optional, default telegram), BOT_TOKEN/CHAT_ID
for telegram, MAIL_SENDER/MAIL_RECIPIENT plus provider credentials for
the email channels.
*/
func SettingsFromEnv() Settings {
	reportID := strings.TrimSpace(os.Getenv("API_REPORT_ID"))
	if reportID == "" {
		reportID = DefaultReportID
	}

	return Settings{
		APIBaseURL: strings.TrimSpace(os.Getenv("API_URL")),
		ReportID:   reportID,
		Destination: notify.Destination{
			Provider:      notify.ResolveProvider(os.Getenv("NOTIFY_PROVIDER")),
			BotToken:      strings.TrimSpace(os.Getenv("BOT_TOKEN")),
			ChatID:        strings.TrimSpace(os.Getenv("CHAT_ID")),
			MailSender:    strings.TrimSpace(os.Getenv("MAIL_SENDER")),
			MailRecipient: strings.TrimSpace(os.Getenv("MAIL_RECIPIENT")),
		},
	}
}
