// Package config reads the frame server settings from the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string `env:"WALLPAPER_LISTEN_ADDR" envDefault:"0.0.0.0:8080"`
	// DBPath is the sqlite file holding settings and the collection cache.
	// Empty keeps everything in memory.
	DBPath        string `env:"WALLPAPER_DB_PATH" envDefault:"data/wallpaper.db"`
	MemoryEntries int    `env:"WALLPAPER_MEMORY_ENTRIES" envDefault:"256"`

	PexelsBaseURL string `env:"PEXELS_BASE_URL" envDefault:"https://api.pexels.com/v1/"`
	PhotoSize     string `env:"WALLPAPER_PHOTO_SIZE" envDefault:"original"`

	// LocalURLs is a path, http(s) url or s3://bucket/key of the default list
	LocalURLs  string `env:"WALLPAPER_LOCAL_URLS" envDefault:"pexels_photo_urls.txt"`
	AWSProfile string `env:"WALLPAPER_AWS_PROFILE"`

	Interval     time.Duration `env:"WALLPAPER_INTERVAL" envDefault:"5m"`
	PollInterval time.Duration `env:"WALLPAPER_POLL_INTERVAL" envDefault:"5s"`

	TranslationsPath string `env:"WALLPAPER_TRANSLATIONS"`
	Lang             string `env:"WALLPAPER_LANG" envDefault:"us"`
}

// Load reads the given dotenv files, .env when none are named, and then
// parses the environment. Variables already set win over the files and
// missing files are skipped.
func Load(files ...string) (*Config, error) {
	if err := LoadDotEnv(files...); err != nil {
		return nil, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("WALLPAPER_INTERVAL must be positive, got %s", cfg.Interval)
	}
	return &cfg, nil
}

func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}
