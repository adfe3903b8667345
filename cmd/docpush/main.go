package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docpush/internal/config"
	"git.home.luguber.info/inful/docpush/internal/journal"
	"git.home.luguber.info/inful/docpush/internal/logfields"
	"git.home.luguber.info/inful/docpush/internal/metrics"
	"git.home.luguber.info/inful/docpush/internal/publish"
	"git.home.luguber.info/inful/docpush/internal/version"
	"github.com/alecthomas/kong"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"docpush.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Publish struct {
		DryRun bool `help:"Evaluate the gate and stop before any side effect"`
	} `cmd:"" help:"Conditionally publish documentation to the hosting branch"`

	Check struct{} `cmd:"" help:"Print the publish gate decision without publishing"`

	History struct {
		Limit int `short:"n" help:"Number of runs to show" default:"20"`
	} `cmd:"" help:"Show recent publish runs from the journal"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "publish":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if err := runPublish(cfg, CLI.Publish.DryRun); err != nil {
			slog.Error("Publish failed", logfields.Error(err))
			os.Exit(1)
		}
	case "check":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		runCheck(cfg)
	case "history":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		if err := runHistory(cfg, CLI.History.Limit); err != nil {
			slog.Error("History failed", logfields.Error(err))
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", logfields.Error(err))
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", CLI.Config)
	case "version":
		fmt.Printf("docpush %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
	}
}

func runPublish(cfg *config.Config, dryRun bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	publisher := publish.New(cfg)

	if dryRun {
		_, decision := publisher.Decide()
		fmt.Println(decision.String())
		return nil
	}

	if cfg.Journal.Path != "" {
		store, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				slog.Warn("Failed to close journal", logfields.Error(cerr))
			}
		}()
		publisher.WithJournal(store)
	}

	var recorder *metrics.PrometheusRecorder
	if cfg.Metrics.Gateway != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		publisher.WithRecorder(recorder)
	}

	report, err := publisher.Run(ctx)

	// Metrics delivery is best-effort either way: a publish run's result is
	// decided by the pipeline, never by observability.
	if recorder != nil {
		if perr := recorder.PushToGateway(cfg.Metrics.Gateway, cfg.Metrics.Job); perr != nil {
			slog.Warn("Failed to push metrics", logfields.Error(perr))
		}
	}

	if err != nil {
		return err
	}
	slog.Info("Publish run finished",
		logfields.RunID(report.RunID),
		logfields.Outcome(string(report.Outcome)),
		logfields.DurationMS(float64(report.Duration().Milliseconds())))
	return nil
}

func runCheck(cfg *config.Config) {
	signals, decision := publish.New(cfg).Decide()
	fmt.Printf("repository: %q\n", signals.RepoSlug)
	fmt.Printf("pull_request: %q\n", signals.PullRequest)
	fmt.Printf("branch: %q\n", signals.Branch)
	fmt.Println(decision.String())
}

func runHistory(cfg *config.Config, limit int) error {
	if cfg.Journal.Path == "" {
		return fmt.Errorf("no journal configured (set journal.path)")
	}
	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No publish runs recorded yet")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-9s  %s@%s", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Outcome, e.Slug, e.Branch)
		if e.CommitHash != "" {
			line += "  " + shortHash(e.CommitHash)
		}
		if e.Reason != "" {
			line += "  (" + e.Reason + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
