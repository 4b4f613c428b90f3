package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aouyang1/pexelwallpaper/api"
	"github.com/aouyang1/pexelwallpaper/config"
	"github.com/aouyang1/pexelwallpaper/i18n"
	"github.com/aouyang1/pexelwallpaper/pexels"
	"github.com/aouyang1/pexelwallpaper/slideshow"
	"github.com/aouyang1/pexelwallpaper/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeStore := openStore(cfg)
	defer closeStore()

	translations := i18n.English()
	if cfg.TranslationsPath != "" {
		translations, err = i18n.Load(cfg.TranslationsPath, cfg.Lang)
		if err != nil {
			slog.Warn("using built in translations", "path", cfg.TranslationsPath, "error", err)
			translations = i18n.English()
		}
	}

	source, err := api.NewURLListSource(ctx, cfg.LocalURLs, cfg.AWSProfile)
	if err != nil {
		log.Fatalf("Failed to initialize default url list: %v", err)
	}

	orchestrator := api.NewOrchestrator(api.Components{
		Store: kv,
		Client: pexels.NewClient(cfg.PexelsBaseURL,
			pexels.WithPhotoSize(cfg.PhotoSize),
		),
		Source:       source,
		Translations: translations,
		EngineOpts:   []slideshow.Option{slideshow.WithInterval(cfg.Interval)},
	})
	defer orchestrator.Close()

	if err := orchestrator.Start(ctx); err != nil {
		log.Fatalf("Failed to start slideshow: %v", err)
	}

	webServer := api.NewWebServer(orchestrator,
		api.WithLanguage(cfg.Lang),
		api.WithPollInterval(cfg.PollInterval),
	)
	go webServer.Start(cfg.ListenAddr)

	<-ctx.Done()
	slog.Info("shutting down")
}

// openStore prefers the sqlite database and falls back to memory when it
// cannot be opened
func openStore(cfg *config.Config) (store.KeyValueStore, func()) {
	if cfg.DBPath != "" {
		db, err := store.NewDatabase(cfg.DBPath)
		if err == nil {
			return db, func() { db.Close() }
		}
		slog.Warn("falling back to in-memory storage", "path", cfg.DBPath, "error", err)
	}

	mem, err := store.NewMemoryStore(cfg.MemoryEntries)
	if err != nil {
		log.Fatalf("Failed to initialize memory store: %v", err)
	}
	return mem, func() {}
}
