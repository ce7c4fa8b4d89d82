// Package main provides the rangewizard server: a JSON/HTTP API that
// drives real browser sessions against the GTO Wizard range-builder
// page so callers can set its filters programmatically.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/entrhq/rangewizard/pkg/browser"
	appconfig "github.com/entrhq/rangewizard/pkg/config"
	"github.com/entrhq/rangewizard/pkg/logging"
	"github.com/entrhq/rangewizard/pkg/rangebuilder"
	"github.com/entrhq/rangewizard/pkg/server"
)

const version = "0.1.0"

func main() {
	// Optional .env file for ops overrides; absence is fine.
	_ = godotenv.Load()

	var (
		addr        = flag.String("addr", envOr("RANGEWIZARD_ADDR", ""), "Address to listen on (host:port)")
		configFile  = flag.String("config", "", "Path to configuration file (YAML)")
		engine      = flag.String("engine", "", "Browser engine: firefox or chromium")
		headless    = flag.Bool("headless", false, "Run browsers without a visible window")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("rangewizard v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, *addr, *configFile, *engine, *headless); err != nil {
		log.Printf("rangewizard failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, addr, configFile, engine string, headless bool) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	// Flags override file values.
	if addr != "" {
		cfg.BindAddress = addr
	}
	if engine != "" {
		cfg.Browser.Engine = engine
	}
	if headless {
		cfg.Browser.Headless = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	mainLog, err := logging.NewLogger("main")
	if err != nil {
		log.Printf("warning: file logging unavailable: %v", err)
	}
	defer mainLog.Close()

	browserLog, _ := logging.NewLogger("browser")
	defer browserLog.Close()
	executorLog, _ := logging.NewLogger("rangebuilder")
	defer executorLog.Close()
	serverLog, _ := logging.NewLogger("server")
	defer serverLog.Close()

	registry := browser.NewSessionManager(browser.Options{
		Engine:   cfg.Browser.Engine,
		Headless: cfg.Browser.Headless,
		Viewport: browser.Viewport{
			Width:  cfg.Browser.ViewportWidth,
			Height: cfg.Browser.ViewportHeight,
		},
		UserAgent: cfg.Browser.UserAgent,
	}, browserLog)

	mainLog.Infof("initializing playwright driver")
	if err := registry.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize browser registry: %w", err)
	}
	defer func() {
		if err := registry.Shutdown(); err != nil {
			mainLog.Errorf("registry shutdown failed: %v", err)
		}
	}()

	executor := rangebuilder.NewExecutor(executorLog, rangebuilder.ExecutorOptions{})

	srv := server.NewServer(server.Config{
		BindAddress: cfg.BindAddress,
		Version:     version,
	}, registry, executor, serverLog)

	log.Printf("rangewizard v%s listening on %s", version, cfg.BindAddress)
	mainLog.Infof("rangewizard v%s starting on %s (engine=%s headless=%v)",
		version, cfg.BindAddress, cfg.Browser.Engine, cfg.Browser.Headless)

	return srv.Start(ctx)
}

func loadConfig(path string) (*appconfig.Config, error) {
	if path == "" {
		return appconfig.Default(), nil
	}
	cfg, err := appconfig.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
