package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"ipo-gmp-notifier/src/pkg/config"
	echomw "ipo-gmp-notifier/src/pkg/echo-middleware"
	"ipo-gmp-notifier/src/pkg/gmp"
	"ipo-gmp-notifier/src/pkg/notify"
	"ipo-gmp-notifier/src/pkg/runner"
)

/*
main serves the request-handler invocation of the digest pipeline.

Routes:
  - POST /notify  — run the pipeline once, respond with the outcome
  - GET  /healthz — liveness probe

The process never exits on a failed run; failures come back as the
response body.
*/
func main() {
	runner.CheckEnv()

	// common flags
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	// parse and init config
	flag.Parse()
	config.InitializeConfig(*configPath)
	initializePackageConfigs()

	settings := runner.SettingsFromEnv()

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Use(echomw.RouteAccessLoggerMiddleware)
	server.Use(echomw.RateLimiterMiddleware)

	server.GET("/healthz", handleHealth)
	if echomw.HasBearerToken() {
		server.POST("/notify", handleNotify(settings), echomw.RequireBearerToken)
	} else {
		tl.Log(tl.Warning, palette.YellowBold, "%s is %s; /notify accepts unauthenticated requests", echomw.EnvNotifierBearerToken, "not set")
		server.POST("/notify", handleNotify(settings))
	}

	address := fmt.Sprintf("%s:%d", echomw.Cfg.Address, echomw.Cfg.Port)
	tl.Log(tl.Notice, palette.BlueBold, "%s on '%s'", "Starting notifier server", address)

	startErr := server.Start(address)
	xerr.QuitIfError(startErr, "start HTTP server")
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

/*
handleNotify runs the same pipeline the CLI runs and surfaces the result
as a response instead of an exit code. A failed run answers 500 with the
error text; the best-effort failure notice has already been attempted
inside runner.Run by then.
*/
func handleNotify(settings runner.Settings) echo.HandlerFunc {
	return func(c echo.Context) error {
		outcome, e := runner.Run(settings)
		if e != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{
				"status": "error",
				"error":  fmt.Sprintf("%s", e),
			})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"status":         "ok",
			"reference_date": outcome.ReferenceDate,
			"rows_matched":   outcome.RowsMatched,
			"ack":            outcome.Ack,
		})
	}
}

func initializePackageConfigs() {
	var mwCfg echomw.Config
	if config.UnmarshalSection("echo_middleware", &mwCfg) {
		echomw.InitializeConfig(&mwCfg)
	} else {
		echomw.InitializeConfig(nil)
	}

	var gmpCfg gmp.Config
	if config.UnmarshalSection("gmp", &gmpCfg) {
		gmp.InitializeConfig(&gmpCfg)
	} else {
		gmp.InitializeConfig(nil)
	}

	var notifyCfg notify.Config
	if config.UnmarshalSection("notify", &notifyCfg) {
		notify.InitializeConfig(&notifyCfg)
	} else {
		notify.InitializeConfig(nil)
	}
}
