package gmp

import (
	"fmt"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"ipo-gmp-notifier/src/pkg/config"
	"ipo-gmp-notifier/src/pkg/util"
)

type Config struct {
	Timezone            string `json:"timezone,omitempty"`
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		Timezone:            "Asia/Kolkata",
		FetchTimeoutSeconds: 15,
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
		tl.Log(tl.Info, palette.Purple, "%s config is %s, keeping %s", "gmp", "not provided", "default gmp config")
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

	// Timeouts below 1s or above 2 minutes are always a config mistake.
	Cfg.FetchTimeoutSeconds = util.Clamp(Cfg.FetchTimeoutSeconds, 1, 120)

	tl.Log(tl.Info, palette.Green, "%s config was %s, using %s", "gmp", "provided", "local gmp config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", config.GetPackageName()), Cfg)
}

/*
Location returns the reference timezone for every date decision in the
pipeline (close-date matching, fiscal labels, cache tokens).

Falls back to UTC when the configured zone name cannot be loaded.
*/
func Location() *time.Location {
	location, locationErr := time.LoadLocation(Cfg.Timezone)
	if locationErr != nil {
		tl.Log(tl.Warning, palette.PurpleBright, "Invalid timezone '%s'; falling back to UTC", Cfg.Timezone)
		return time.UTC
	}
	return location
}

// Now returns the current time in the reference timezone.
func Now() time.Time {
	return time.Now().In(Location())
}
