package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

const telegramAPIURL = "https://api.telegram.org"

/*
telegramResponse is the Bot API envelope. Success is the "ok" flag, not
the HTTP status: the API can answer 200 with ok=false.
*/
type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int64 `json:"message_id"`
		Date      int64 `json:"date"`
	} `json:"result"`
}

/*
sendViaTelegram POSTs the message to the Bot API sendMessage method.

The body is {chat_id, text, disable_web_page_preview: true}; link
previews would bury the digest under a site banner. Any response without
a truthy ok flag is a failure carrying the raw body for diagnostics.
*/
func sendViaTelegram(destination Destination, text string) (ack Ack, e *xerr.Error) {
	base := destination.Endpoint
	if base == "" {
		base = telegramAPIURL
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", base, destination.BotToken)

	payload := map[string]any{
		"chat_id":                  destination.ChatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}
	encoded, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return ack, xerr.NewError(marshalErr, "Failed to marshal the Telegram request body", nil)
	}

	req, newReqErr := http.NewRequest("POST", url, bytes.NewBuffer(encoded))
	if newReqErr != nil {
		return ack, xerr.NewError(newReqErr, "Failed to create HTTP request", nil)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: sendTimeout()}
	resp, httpErr := client.Do(req)
	if httpErr != nil {
		return ack, xerr.NewError(httpErr, "HTTP error while calling the Telegram Bot API", map[string]any{"chat_id": destination.ChatID})
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return ack, xerr.NewError(readErr, "Failed to read the Telegram response body", nil)
	}

	var parsed telegramResponse
	decodeErr := json.Unmarshal(respBody, &parsed)
	if decodeErr != nil || !parsed.OK {
		err := fmt.Errorf("send was not acknowledged")
		return ack, xerr.NewError(err, "Telegram did not acknowledge the message", string(respBody))
	}

	tl.Log(tl.Verbose, palette.GreenDim, "Telegram acknowledged message '%v' at '%v'", parsed.Result.MessageID, parsed.Result.Date)

	ack = Ack{
		Provider:   ProviderTelegram,
		MessageID:  strconv.FormatInt(parsed.Result.MessageID, 10),
		SentAtUnix: parsed.Result.Date,
	}
	if ack.SentAtUnix == 0 {
		// Only the provider's own timestamp goes into the ack; a zero
		// stays zero rather than being faked with local time.
		tl.Log(tl.Warning, palette.YellowDim, "Telegram response carried %s; ack timestamp left %s", "no date", "unset")
	}
	return ack, nil
}
