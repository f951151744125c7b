package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"ipo-gmp-notifier/src/pkg/config"
	"ipo-gmp-notifier/src/pkg/gmp"
	"ipo-gmp-notifier/src/pkg/notify"
	"ipo-gmp-notifier/src/pkg/runner"
)

/*
main runs the IPO GMP digest.

Default: one run — build the report URL, fetch, compose, deliver — then
exit 0, or 1 when the run failed (the failure notice has already been
attempted by then).

With -cron the process stays alive and fires the same run on the given
schedule, for deployments without an external cron.
*/
func main() {
	runner.CheckEnv()

	// common flags
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	// program's custom flags
	cronExpr := flag.String("cron", "", "Cron expression, e.g. '30 10 * * 1-5'. When set, keep running and fire on schedule instead of once.")
	// parse and init config
	flag.Parse()
	config.InitializeConfig(*configPath)
	initializePackageConfigs()

	settings := runner.SettingsFromEnv()

	if *cronExpr != "" {
		runOnSchedule(settings, *cronExpr)
		return
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s standalone digest run (report '%s')",
		"Starting", settings.ReportID,
	)

	_, e := runner.Run(settings)
	if e != nil {
		os.Exit(1)
	}
}

func initializePackageConfigs() {
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

/*
runOnSchedule keeps the process alive and fires the pipeline on the cron
schedule until SIGINT/SIGTERM.

A failed run does not stop the schedule; the next trigger runs anyway.
Overlapping triggers are not coordinated — each run is independent.
*/
func runOnSchedule(settings runner.Settings, cronExpr string) {
	scheduler := cron.New()

	_, addErr := scheduler.AddFunc(cronExpr, func() {
		outcome, e := runner.Run(settings)
		if e != nil {
			// Run already logged and reported the failure.
			return
		}
		tl.Log(
			tl.Notice1, palette.GreenBold, "%s: '%v' rows matched for '%s'",
			"Scheduled run finished", outcome.RowsMatched, outcome.ReferenceDate,
		)
	})
	xerr.QuitIfError(addErr, "add cron entry")

	scheduler.Start()
	tl.Log(tl.Notice, palette.BlueBold, "%s with schedule '%s'", "Scheduler started", cronExpr)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	<-signalChan

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	tl.Log(tl.Notice, palette.BlueBold, "Scheduler %s", "stopped")
}
