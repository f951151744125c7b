package notify

import (
	"fmt"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"ipo-gmp-notifier/src/pkg/config"
	"ipo-gmp-notifier/src/pkg/util"
)

type Config struct {
	SendTimeoutSeconds int    `json:"send_timeout_seconds,omitempty"`
	MailSubject        string `json:"mail_subject,omitempty"`
	MailSenderName     string `json:"mail_sender_name,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		SendTimeoutSeconds: 15,
		MailSubject:        "IPOs Closing Today",
		MailSenderName:     "IPO GMP Notifier",
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig() // this one we use to access config values from anywhere

/*
If local Config is provided - use it. Replace all missing values with default ones.

If not provided - just use defaultConfig.
*/
func InitializeConfig(localConfig *Config) {
	// If not provided - just use defaultConfig
	if localConfig == nil {
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "notify", "not provided", "default notify config")
		return
	}

	defaultConfig := DefaultValueConfig() // Default values to replace some values with during config initialization

	// If local Config is provided - use it
	Cfg = *localConfig

	tl.ApplyDefaults(&Cfg, defaultConfig, func(field string, defVal any) {
		tl.Log(
			tl.Info, palette.Purple,
			"%s field is %s in %s configuration. Using default value: %v",
			field, "missing", config.GetPackageName(), tl.PrettyForStderr(defVal),
		)
	})

	Cfg.SendTimeoutSeconds = util.Clamp(Cfg.SendTimeoutSeconds, 1, 120)

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "notify", "provided", "local notify config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", config.GetPackageName()), Cfg)
}

func sendTimeout() time.Duration {
	return time.Duration(Cfg.SendTimeoutSeconds) * time.Second
}
