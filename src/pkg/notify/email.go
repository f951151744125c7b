package notify

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/mailgun/mailgun-go/v4"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
Email delivery of the same digest text, for chats that live in an inbox.
One sender, one recipient, plain text; the digest is already formatted
as fixed-width lines so no HTML variant is produced.
*/

func sendViaSendGrid(destination Destination, text string) (ack Ack, e *xerr.Error) {
	from := mail.NewEmail(Cfg.MailSenderName, destination.MailSender)
	to := mail.NewEmail("", destination.MailRecipient)
	message := mail.NewSingleEmail(from, Cfg.MailSubject, to, text, text)

	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, sendErr := client.Send(message)
	if sendErr != nil {
		return ack, xerr.NewError(sendErr, "HTTP error while calling SendGrid", map[string]any{"recipient": destination.MailRecipient})
	}

	e = checkSendGridResponse(response)
	if e != nil {
		return ack, e
	}

	ack = Ack{
		Provider:   ProviderSendGrid,
		MessageID:  firstHeaderValue(response, "X-Message-Id"),
		SentAtUnix: time.Now().Unix(),
	}
	return ack, nil
}

func checkSendGridResponse(response *rest.Response) *xerr.Error {
	if response == nil {
		err := fmt.Errorf("response is nil")
		return xerr.NewError(err, "SendGrid returned no response", nil)
	}
	if response.StatusCode >= 300 {
		err := fmt.Errorf("status is '%d'", response.StatusCode)
		return xerr.NewError(err, "SendGrid rejected the message", response.Body)
	}
	tl.Log(tl.Verbose, palette.GreenDim, "SendGrid accepted the message with status '%v'", response.StatusCode)
	return nil
}

func firstHeaderValue(response *rest.Response, name string) string {
	values, exists := response.Headers[name]
	if !exists || len(values) == 0 {
		return ""
	}
	return values[0]
}

func sendViaMailgun(destination Destination, text string) (ack Ack, e *xerr.Error) {
	mg := mailgun.NewMailgun(os.Getenv("MAILGUN_DOMAIN"), os.Getenv("MAILGUN_API_KEY"))
	message := mailgun.NewMessage(destination.MailSender, Cfg.MailSubject, text, destination.MailRecipient)

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout())
	defer cancel()

	status, messageID, sendErr := mg.Send(ctx, message)
	if sendErr != nil {
		return ack, xerr.NewError(sendErr, "Mailgun rejected the message", map[string]any{"recipient": destination.MailRecipient})
	}

	tl.Log(tl.Verbose, palette.GreenDim, "Mailgun accepted the message: '%s'", status)

	ack = Ack{
		Provider:   ProviderMailgun,
		MessageID:  messageID,
		SentAtUnix: time.Now().Unix(),
	}
	return ack, nil
}

func sendViaSES(destination Destination, text string) (ack Ack, e *xerr.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout())
	defer cancel()

	awsCfg, loadErr := awsconfig.LoadDefaultConfig(ctx)
	if loadErr != nil {
		return ack, xerr.NewError(loadErr, "Failed to load the AWS configuration", nil)
	}

	client := sesv2.NewFromConfig(awsCfg)
	output, sendErr := client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(destination.MailSender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{destination.MailRecipient},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(Cfg.MailSubject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(text)},
				},
			},
		},
	})
	if sendErr != nil {
		return ack, xerr.NewError(sendErr, "SES rejected the message", map[string]any{"recipient": destination.MailRecipient})
	}

	ack = Ack{
		Provider:   ProviderSES,
		MessageID:  aws.ToString(output.MessageId),
		SentAtUnix: time.Now().Unix(),
	}
	return ack, nil
}
