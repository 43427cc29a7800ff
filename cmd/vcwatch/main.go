package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/dm/vcwatch/internal/client"
	"github.com/dm/vcwatch/internal/config"
	"github.com/dm/vcwatch/internal/engine"
	"github.com/dm/vcwatch/internal/model"
	"github.com/dm/vcwatch/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		fmt.Fprintf(stderr, "usage: vcwatch [flags] <endpoint-uri>\n")
		fmt.Fprintf(stderr, "example: vcwatch --family resync --scope Cluster01 --interval 5m https://operator@vc.example.com\n")
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	c, err := client.NewDefaultClient(client.ClientConfig{
		Endpoint:           cfg.Endpoint,
		Username:           cfg.Username,
		Password:           cfg.Password,
		InsecureSkipVerify: cfg.Insecure,
		RequestTimeout:     10 * time.Second,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Login(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	log.WithField("endpoint", c.Endpoint()).Debug("session established")

	fetcher, schema := buildFamily(c, cfg)
	mon := engine.NewMonitor(fetcher, engine.NewPolicy(cfg.MaxTransient), report.New(stdout, schema), cfg.Interval, log)

	res := mon.Run(ctx)
	printStatus(stdout, res)
	return exitCode(res)
}

// buildFamily selects the Snapshot Fetcher and column schema for the
// configured operation family. Config validation has already rejected
// anything but resync and tasks.
func buildFamily(c client.VCClient, cfg *config.Config) (engine.Fetcher, report.Schema) {
	if cfg.Family == "tasks" {
		return engine.NewTaskFetcher(c, cfg.Scope), report.Tasks()
	}
	return engine.NewResyncFetcher(c, cfg.Scope), report.Resync()
}

// statusLine maps the terminal MonitorResult to the single human-readable
// line every session ends with.
func statusLine(res model.MonitorResult) string {
	switch res.Kind {
	case model.Completed:
		return "completed normally"
	case model.NothingToDo:
		return "nothing to do"
	default:
		return "stopped on error: " + res.Reason
	}
}

func printStatus(w io.Writer, res model.MonitorResult) {
	line := statusLine(res)
	if res.Success() {
		_, _ = color.New(color.FgGreen).Fprintln(w, line)
		return
	}
	_, _ = color.New(color.FgRed).Fprintln(w, line)
}

func exitCode(res model.MonitorResult) int {
	if res.Success() {
		return 0
	}
	return 1
}
