package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/gorchard/farmhand/internal/adapters/catalog"
	"github.com/gorchard/farmhand/internal/adapters/mail"
	"github.com/gorchard/farmhand/internal/adapters/repo/jsonfile"
	"github.com/gorchard/farmhand/internal/adapters/session/sim"
	"github.com/gorchard/farmhand/internal/application"
	"github.com/gorchard/farmhand/internal/ports"
)

type app struct {
	supervisor *application.Supervisor
	config     *application.ConfigService
	log        *slog.Logger
}

func wireApp(ctx context.Context, verbose bool) (*app, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	repo, err := jsonfile.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire config repository: %w", err)
	}
	configService, err := application.NewConfigService(ctx, repo, log)
	if err != nil {
		return nil, fmt.Errorf("wire config service: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	seedsPath, fruitsPath, itemsPath, err := catalog.EnsureDefaultSources(filepath.Join(homeDir, ".farmhand", "data"))
	if err != nil {
		return nil, fmt.Errorf("wire catalog data: %w", err)
	}
	catalogSource := catalog.NewSource(seedsPath, fruitsPath, itemsPath, log)

	views := application.NewMaterializer(catalogSource, log)
	alerter := application.NewAlerter(configService, mail.NewTransport(), log)

	supervisor := application.NewSupervisor(application.SupervisorDeps{
		Dialers: map[string]ports.SessionDialer{
			"sim": sim.Dialer{},
		},
		Config:  configService,
		Views:   views,
		Alerter: alerter,
		Logger:  log,
	})

	return &app{supervisor: supervisor, config: configService, log: log}, nil
}
