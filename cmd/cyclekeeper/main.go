package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/terraincognita07/cyclekeeper/internal/api"
	"github.com/terraincognita07/cyclekeeper/internal/cli"
	"github.com/terraincognita07/cyclekeeper/internal/config"
	"github.com/terraincognita07/cyclekeeper/internal/db"
	"github.com/terraincognita07/cyclekeeper/internal/logger"
	"github.com/terraincognita07/cyclekeeper/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) > 1 && isHelpCommand(os.Args[1]) {
		printUsage(os.Stdout)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Must(logger.New(cfg.LogLevel, cfg.LogPretty))
	defer func() {
		_ = log.Sync()
	}()

	if len(os.Args) > 1 {
		os.Exit(runCommand(cfg, log, os.Args[1:], os.Stdout, os.Stderr))
	}

	if err := serve(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func openDatabase(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	return db.Open(db.Options{
		Driver:      cfg.DBDriver,
		SQLitePath:  cfg.DBPath,
		PostgresURL: cfg.DatabaseURL,
		Logger:      logger.Named(log, "db"),
	})
}

func serve(cfg config.Config, log *zap.Logger) error {
	time.Local = cfg.Location

	database, err := openDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	var registry *metrics.Metrics
	if cfg.MetricsEnabled {
		registry = metrics.New()
	}

	handler, err := api.NewHandler(database, api.Options{
		SecretKey:         cfg.JWTSecret,
		Location:          cfg.Location,
		DefaultCycleLimit: cfg.DefaultCycleLimit,
		Logger:            logger.Named(log, "api"),
		Metrics:           registry,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(cfg, handler, registry, logger.Named(log, "http"))

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Warn("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("cyclekeeper listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("tz", cfg.Location.String()),
		zap.Bool("metrics", cfg.MetricsEnabled),
	)
	return app.Listen(":" + cfg.Port)
}

func newApp(cfg config.Config, handler *api.Handler, registry *metrics.Metrics, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "cyclekeeper",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(api.RequestLogger(log))
	app.Use(cors.New(corsMiddlewareConfig(cfg.CORSAllowedOrigins)))
	app.Use(registry.Middleware())

	if registry != nil {
		app.Get("/metrics", registry.Handler())
	}
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func corsMiddlewareConfig(allowedOrigins string) cors.Config {
	return cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodOptions,
		}, ", "),
		AllowHeaders: "Content-Type, Authorization",
	}
}

// runCommand dispatches maintenance subcommands and returns the exit code.
func runCommand(cfg config.Config, log *zap.Logger, args []string, stdout io.Writer, stderr io.Writer) int {
	switch args[0] {
	case "recompute-metrics":
		userID, err := parseRecomputeArgs(args[1:], stderr)
		if err != nil {
			fmt.Fprintf(stderr, "recompute-metrics: %v\n", err)
			return 2
		}
		database, err := openDatabase(cfg, log)
		if err != nil {
			fmt.Fprintf(stderr, "recompute-metrics: database init failed: %v\n", err)
			return 1
		}
		if err := cli.RunRecomputeMetricsCommand(database, userID, stdout); err != nil {
			fmt.Fprintf(stderr, "recompute-metrics: %v\n", err)
			return 1
		}
		return 0
	default:
		if isHelpCommand(args[0]) {
			printUsage(stdout)
			return 0
		}
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func parseRecomputeArgs(args []string, stderr io.Writer) (uint, error) {
	flags := flag.NewFlagSet("recompute-metrics", flag.ContinueOnError)
	flags.SetOutput(stderr)
	userID := flags.Uint("user-id", 0, "user whose cycle history is recomputed")
	if err := flags.Parse(args); err != nil {
		return 0, err
	}
	if *userID == 0 {
		return 0, errors.New("--user-id is required")
	}
	return *userID, nil
}

func isHelpCommand(name string) bool {
	switch name {
	case "help", "-h", "--help":
		return true
	}
	return false
}

func printUsage(out io.Writer) {
	fmt.Fprint(out, `Usage:
  cyclekeeper                                 start the HTTP server
  cyclekeeper recompute-metrics --user-id N   re-derive cycle and period lengths
  cyclekeeper help                            show this help
`)
}
