// Command datimex finds date-like expressions in documents and normalises
// them to YYYY-MM-DD.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clamsproject/app-datimex-extraction/internal/adapters/driven/config/file"
	"github.com/clamsproject/app-datimex-extraction/internal/adapters/driven/storage/memory"
	"github.com/clamsproject/app-datimex-extraction/internal/adapters/driven/storage/sqlite"
	"github.com/clamsproject/app-datimex-extraction/internal/adapters/driving/cli"
	"github.com/clamsproject/app-datimex-extraction/internal/annotators"
	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
	"github.com/clamsproject/app-datimex-extraction/internal/core/services"
	"github.com/clamsproject/app-datimex-extraction/internal/logger"
	"github.com/clamsproject/app-datimex-extraction/internal/normalisers/eml"
	"github.com/clamsproject/app-datimex-extraction/internal/normalisers/html"
	"github.com/clamsproject/app-datimex-extraction/internal/normalisers/markdown"
	"github.com/clamsproject/app-datimex-extraction/internal/normalisers/plaintext"
)

// version is set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log := logger.Default()

	config, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return err
	}
	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	settingsService := services.NewSettingsService(config)
	settings, err := settingsService.Get()
	if err != nil {
		// Commands still run so "settings set" can repair the file.
		log.Warn("invalid settings, using defaults: %v", err)
		settings = domain.DefaultSettings()
	}
	log.SetVerbose(settings.Verbose)

	registry := annotators.NewRegistry()
	annotators.RegisterDefaults(registry, log)

	normalisers := services.NewNormaliserRegistry(
		plaintext.New(),
		markdown.New(),
		html.New(),
		eml.New(),
	)

	var factoryOpts []annotators.FactoryOption
	if settings.Pattern != "" {
		factoryOpts = append(factoryOpts, annotators.WithDefaults(domain.Parameters{annotators.ParamPattern: settings.Pattern}))
	}

	extraction := services.NewExtractionService(
		annotators.NewFactory(registry, factoryOpts...),
		normalisers,
		services.WithConcurrency(settings.Concurrency),
		services.WithLogger(log),
		services.WithMetadata(services.NewAppMetadata(version)),
	)

	store, closeStore := openStore(settings, log)
	defer closeStore()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Extraction:  extraction,
		Annotations: services.NewAnnotationService(store),
		Settings:    settingsService,
		Logger:      log,
	})

	return cli.Execute(ctx)
}

// openStore opens the configured annotation store. A sqlite store that
// cannot be opened falls back to memory so extraction keeps working.
func openStore(settings domain.Settings, log *logger.Logger) (driven.AnnotationStore, func()) {
	if settings.StorageBackend == domain.StorageMemory {
		return memory.NewAnnotationStore(), func() {}
	}

	db, err := sqlite.NewStore(settings.StoragePath)
	if err != nil {
		log.Warn("annotation storage unavailable, results will not persist: %v", err)
		return memory.NewAnnotationStore(), func() {}
	}
	log.Debug("annotation storage: %s", db.Path())
	return db.AnnotationStore(), func() { _ = db.Close() }
}
