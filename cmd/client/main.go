package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/med-cms/internal/adapter"
	"github.com/MKhiriev/med-cms/internal/client"
	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.NewClientLogger("med-cms-client", os.Stderr, cfg.Verbose)
	log.Debug().Str("build", models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).String()).Msg("starting")

	serverAdapter, err := adapter.NewHTTPServerAdapter(adapter.HTTPConfig{
		Address:        cfg.ServerAddress,
		RequestTimeout: cfg.RequestTimeout,
		Locale:         cfg.Locale,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}
	serverAdapter.SetToken(cfg.Token)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = client.NewApp(serverAdapter, os.Stdout, log).Run(ctx, args); err != nil {
		log.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}
