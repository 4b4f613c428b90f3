package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aouyang1/pexelwallpaper/i18n"
	"github.com/aouyang1/pexelwallpaper/pexels"
	"github.com/aouyang1/pexelwallpaper/store"
)

// LocalManager loads the bundled url list used when no Pexels credentials are
// configured
type LocalManager struct {
	source       URLListSource
	status       StatusDisplay
	translations i18n.Translations
}

func NewLocalManager(source URLListSource, status StatusDisplay, translations i18n.Translations) *LocalManager {
	return &LocalManager{
		source:       source,
		status:       status,
		translations: translations,
	}
}

// LoadDefaultImages reads the url list and normalizes every non blank line.
// Any failure is reported on the status display and yields no photos.
func (l *LocalManager) LoadDefaultImages(ctx context.Context) []store.PhotoEntry {
	notFound := l.translations.Get("statusLocalFileNotFound")

	data, err := l.source.Read(ctx)
	if err != nil {
		var statusErr *ResourceStatusError
		if errors.As(err, &statusErr) {
			slog.Warn("default url list unavailable", "status", statusErr.Status)
			l.status.ShowStatus(fmt.Sprintf("%s (HTTP %d)", notFound, statusErr.Status), true, StatusOptions{Persistent: true})
			return nil
		}
		slog.Warn("unable to read default url list", "error", err)
		l.status.ShowStatus(notFound, true, StatusOptions{Persistent: true})
		return nil
	}

	var lines []pexels.RawURLEntry
	for line := range strings.Lines(string(data)) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, pexels.RawURLEntry(line))
		}
	}

	photos := pexels.NormalizeAll(lines)
	if len(photos) == 0 {
		slog.Warn("default url list is empty")
		l.status.ShowStatus(notFound, true, StatusOptions{Persistent: true})
		return nil
	}

	l.status.HideStatus()
	slog.Info("loaded default url list", "count", len(photos))
	return photos
}
