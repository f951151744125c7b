package main

import (
	"flag"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"ipo-gmp-notifier/src/pkg/config"
	"ipo-gmp-notifier/src/pkg/notify"
	"ipo-gmp-notifier/src/pkg/runner"
	"ipo-gmp-notifier/src/pkg/util"
)

/*
Send an arbitrary text message to the configured destination.

Use it to verify BOT_TOKEN/CHAT_ID (or the email provider credentials)
before pointing a schedule at the real pipeline.
*/
func main() {
	runner.CheckEnv()

	// common flags
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	// program's custom flags
	text := flag.String("text", "", "Message text to deliver")
	// parse and init config
	flag.Parse()
	util.RequiredFlag(text, "text")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	var notifyCfg notify.Config
	if config.UnmarshalSection("notify", &notifyCfg) {
		notify.InitializeConfig(&notifyCfg)
	} else {
		notify.InitializeConfig(nil)
	}

	settings := runner.SettingsFromEnv()

	tl.Log(
		tl.Notice, palette.BlueBold, "%s test message via '%s'",
		"Sending", settings.Destination.Provider,
	)

	ack, e := notify.SendMessage(settings.Destination, *text)
	e.QuitIf("error")

	tl.Log(
		tl.Notice1, palette.GreenBold, "%s, message id '%s'",
		"Test message acknowledged", ack.MessageID,
	)
}
