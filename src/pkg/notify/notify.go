package notify

import (
	"fmt"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

// Provider selects the delivery channel for the digest.
type Provider string

const (
	ProviderTelegram Provider = "telegram"
	ProviderSendGrid Provider = "sendgrid"
	ProviderMailgun  Provider = "mailgun"
	ProviderSES      Provider = "ses"
)

/*
Destination is the single configured delivery target. Exactly one
message goes to exactly one destination per run; there is no fan-out.
*/
type Destination struct {
	Provider Provider

	// Telegram
	BotToken string
	ChatID   string

	// Email providers
	MailSender    string
	MailRecipient string

	// Endpoint overrides the provider's default API base URL.
	Endpoint string
}

// Ack is the provider's acknowledgement of a delivered message.
type Ack struct {
	Provider   Provider `json:"provider"`
	MessageID  string   `json:"message_id"`
	SentAtUnix int64    `json:"sent_at"`
}

/*
ResolveProvider maps a raw provider name to a known Provider. Empty
input means telegram, the channel this notifier was built around.
*/
func ResolveProvider(raw string) Provider {
	normalized := Provider(strings.ToLower(strings.TrimSpace(raw)))
	switch normalized {
	case "":
		return ProviderTelegram
	case ProviderTelegram, ProviderSendGrid, ProviderMailgun, ProviderSES:
		return normalized
	default:
		tl.Log(tl.Warning, palette.YellowBold, "Unknown notify provider '%s', using '%s'", raw, ProviderTelegram)
		return ProviderTelegram
	}
}

/*
RequiredEnvVars lists the environment variables a provider cannot run
without. Checked at startup so a half-configured process never reaches
the network.
*/
func RequiredEnvVars(provider Provider) []string {
	switch provider {
	case ProviderSendGrid:
		return []string{"SENDGRID_API_KEY", "MAIL_SENDER", "MAIL_RECIPIENT"}
	case ProviderMailgun:
		return []string{"MAILGUN_DOMAIN", "MAILGUN_API_KEY", "MAIL_SENDER", "MAIL_RECIPIENT"}
	case ProviderSES:
		// Credentials come from the AWS default chain.
		return []string{"MAIL_SENDER", "MAIL_RECIPIENT"}
	default:
		return []string{"BOT_TOKEN", "CHAT_ID"}
	}
}

/*
SendMessage delivers the message text to the destination through its
provider and returns the provider's acknowledgement.

Every provider failure is terminal for the current run; there are no
retries here.
*/
func SendMessage(destination Destination, text string) (ack Ack, e *xerr.Error) {
	if strings.TrimSpace(text) == "" {
		err := fmt.Errorf("message text is empty")
		return ack, xerr.NewError(err, "refusing to send an empty message", nil)
	}

	tl.Log(
		tl.Info, palette.Blue, "%s %s via '%s' ('%v' characters)",
		"Sending", "digest message", destination.Provider, len(text),
	)

	switch destination.Provider {
	case ProviderSendGrid:
		ack, e = sendViaSendGrid(destination, text)
	case ProviderMailgun:
		ack, e = sendViaMailgun(destination, text)
	case ProviderSES:
		ack, e = sendViaSES(destination, text)
	default:
		ack, e = sendViaTelegram(destination, text)
	}

	if e != nil {
		return ack, e
	}

	tl.Log(
		tl.Info1, palette.Green, "%s via '%s', message id '%s'",
		"Message acknowledged", ack.Provider, ack.MessageID,
	)
	return ack, nil
}
