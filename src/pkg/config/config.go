package config

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"
	"sync"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
Central configuration loading.

The config file is a single JSON object keyed by package name, e.g.:

	{
	  "echo_middleware": { "port": 8402, "middleware_rate_limit": 3 },
	  "notify":          { "provider": "telegram" },
	  "gmp":             { "timezone": "Asia/Kolkata" }
	}

Each package owns its section: it defines its own Config struct with
default values and calls config.UnmarshalSection from its entrypoint
wiring. Secrets never live in this file; they come from environment
variables checked with CheckIfEnvVarsPresent.
*/

var (
	mu       sync.Mutex
	sections = map[string]json.RawMessage{}
)

/*
CheckIfEnvVarsPresent logs every missing environment variable from the
given list and exits(1) if any were missing.

Call it first thing in every entrypoint, before flags and before any
network call, so a half-configured process never gets far enough to act.
*/
func CheckIfEnvVarsPresent(names ...string) {
	missing := false
	for _, name := range names {
		value := strings.TrimSpace(os.Getenv(name))
		if value == "" {
			tl.Log(tl.Warning, palette.YellowBold, "%s environment variable is %s", name, "required")
			missing = true
		}
	}
	if missing {
		os.Exit(1)
	}
}

/*
InitializeConfig reads the JSON config file at configPath and stores its
top-level sections for later UnmarshalSection calls.

A missing or empty file is not fatal: every package ships usable default
values, so the process can run with no config file at all.
*/
func InitializeConfig(configPath string) {
	contentBytes, readErr := os.ReadFile(configPath)
	if readErr != nil {
		tl.Log(
			tl.Info, palette.Purple, "Config file '%s' is %s, keeping %s",
			configPath, "not readable", "default values for every package",
		)
		return
	}

	parsed := map[string]json.RawMessage{}
	unmarshalErr := json.Unmarshal(contentBytes, &parsed)
	if unmarshalErr != nil {
		tl.Log(
			tl.Warning, palette.YellowBold, "Config file '%s' is %s: %s",
			configPath, "not valid JSON", unmarshalErr,
		)
		os.Exit(1)
	}

	mu.Lock()
	sections = parsed
	mu.Unlock()

	tl.Log(tl.Info, palette.Green, "Config file '%s' was %s (%v sections)", configPath, "loaded", len(parsed))
}

/*
UnmarshalSection decodes the named top-level section into target.

Returns false when the section is absent or does not decode; the caller
then initializes its package with nil (defaults).
*/
func UnmarshalSection(name string, target any) bool {
	mu.Lock()
	raw, exists := sections[name]
	mu.Unlock()

	if !exists {
		return false
	}

	unmarshalErr := json.Unmarshal(raw, target)
	if unmarshalErr != nil {
		tl.Log(
			tl.Warning, palette.YellowBold, "Config section '%s' is %s: %s",
			name, "not decodable", unmarshalErr,
		)
		return false
	}

	return true
}

/*
GetPackageName returns the short package name of the caller, for logging.
*/
func GetPackageName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}

	fullName := runtime.FuncForPC(pc).Name() // e.g. ipo-gmp-notifier/src/pkg/gmp.BuildReportURL
	tail := fullName
	if slashIndex := strings.LastIndex(fullName, "/"); slashIndex >= 0 {
		tail = fullName[slashIndex+1:]
	}
	if dotIndex := strings.Index(tail, "."); dotIndex > 0 {
		tail = tail[:dotIndex]
	}
	return tail
}
