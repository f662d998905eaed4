package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mapatag/internal/audit"
	"github.com/dmitrijs2005/mapatag/internal/buildinfo"
	"github.com/dmitrijs2005/mapatag/internal/cli"
	"github.com/dmitrijs2005/mapatag/internal/config"
	"github.com/dmitrijs2005/mapatag/internal/logging"
	"github.com/dmitrijs2005/mapatag/internal/services"
	"github.com/dmitrijs2005/mapatag/internal/store"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// The REPL only sees cancellation between lines; a second signal kills.
	go func() {
		<-ctx.Done()
		stop()
	}()

	cfg := config.LoadConfig()
	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer st.Close()

	if cfg.SeedDemoData {
		rec := audit.NewLogger(st, logger.With("component", "audit"))
		seeded, err := services.NewRegistryService(st, rec).SeedDemoData(ctx)
		if err != nil {
			logger.Error(ctx, "seeding demo data failed", "error", err)
		} else if seeded {
			logger.Info(ctx, "seeded demo senior")
		}
	}

	app := cli.NewApp(cfg, st, logger.With("component", "cli"), os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "registry terminal stopped", "error", err)
	}

}
