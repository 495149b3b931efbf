package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/garyjia/post-review/internal/application/dispatcher"
	"github.com/garyjia/post-review/internal/application/scenario"
	"github.com/garyjia/post-review/internal/config"
	"github.com/garyjia/post-review/internal/domain/event"
	"github.com/garyjia/post-review/internal/report"
	"github.com/garyjia/post-review/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (optional)")
	scenarioPath := flag.String("scenario", "", "Path to scenario file (overrides config)")
	xlsxPath := flag.String("xlsx", "", "Write an .xlsx report to this path (overrides config)")
	flag.Parse()

	// .env is optional
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *scenarioPath != "" {
		cfg.Scenario.Path = *scenarioPath
	}
	if *xlsxPath != "" {
		cfg.Report.XLSXPath = *xlsxPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error("Post review failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run executes the configured scenario and prints the console report to out
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	s := scenario.Default()
	if cfg.Scenario.Path != "" {
		loaded, err := scenario.LoadFile(cfg.Scenario.Path)
		if err != nil {
			return err
		}
		s = loaded
	}

	logger.Info("Running scenario",
		zap.String("scenario", cfg.Scenario.Path),
		zap.Int("posts", len(s.Posts)))

	d := dispatcher.NewDispatcher(dispatcher.WithLogger(logger))
	d.SubscribeNamed(event.TypePostRejected, "log-rejection", func(ctx context.Context, evt *event.Event) error {
		logger.Info("Review rejected",
			zap.String("post_id", evt.PostID.String()),
			zap.String("message", evt.GetPayloadString("message")))
		return nil
	})

	results, err := scenario.NewRunner(logger, scenario.WithDispatcher(d)).Run(ctx, s)
	if err != nil {
		return fmt.Errorf("failed to run scenario: %w", err)
	}

	if err := report.NewConsoleWriter(out, cfg.Report.ShowUnfinished).Write(results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.Report.XLSXPath != "" {
		if err := report.NewWorkbookWriter(logger).Write(cfg.Report.XLSXPath, results); err != nil {
			return err
		}
	}

	return nil
}
