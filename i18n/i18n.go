// Package i18n holds the status, caption and error strings shown on the frame
package i18n

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"strings"
)

const DefaultLanguage = "us"

// Translations maps a message key to its localized text
type Translations map[string]string

var english = Translations{
	"formTitle":                "Wallpapers",
	"statusLoading":            "Loading...",
	"statusNoPhotosFound":      "No photos found in this collection.",
	"statusError401":           "Unauthorized: please double-check your Pexels API key.",
	"statusError429":           "Rate limit reached. Wait a moment before trying again.",
	"statusErrorGeneric":       "Something went wrong (HTTP {status}). Please try again later.",
	"statusErrorNetwork":       "Network error while contacting Pexels. Check your connection and retry.",
	"statusLocalFileNotFound":  "Default wallpaper file (pexels_photo_urls.txt) not found or empty. Run fetchurls or configure a Pexels API source.",
	"statusSettingsCleared":    "Stored API settings cleared. Enter new details to resume.",
	"errorBothRequired":        "API Key and Collection URL are required.",
	"errorInvalidPexelsUrl":    "Invalid Collection URL.",
	"wallpaperAltWallpaper":    "Wallpaper",
	"wallpaperAltOf":           "of",
	"wallpaperAltFetching":     "Fetching wallpapers...",
	"wallpaperAltConfigure":    "Configure API Key and Collection URL.",
	"wallpaperAltLocalLoading": "Loading default wallpapers...",
	"wallpaperAltLocalError":   "Default wallpapers could not be loaded.",
	"slideshowPaused":          "Slideshow paused",
	"slideshowResumed":         "Slideshow resumed",
	"defaultSlideshowStarted":  "Default slideshow started",
	"defaultSlideshowStopped":  "Default slideshow stopped",
	"attributionLabel":         "Photos provided by Pexels",
}

// English returns a copy of the built in translations
func English() Translations {
	return maps.Clone(english)
}

// Get returns the text for key, or the key itself when it is unknown
func (t Translations) Get(key string) string {
	if v, ok := t[key]; ok && v != "" {
		return v
	}
	if v, ok := english[key]; ok {
		return v
	}
	return key
}

// Format returns the text for key with every {name} placeholder replaced
func (t Translations) Format(key string, vars map[string]string) string {
	text := t.Get(key)
	for name, value := range vars {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

// Load reads a translations file shaped {"lang": {"key": "text"}} and returns
// the set for lang layered over English. Unknown languages fall back to the
// default language in the file, then to English alone.
func Load(path, lang string) (Translations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read translations: %w", err)
	}

	var all map[string]map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse translations: %w", err)
	}

	selected, ok := all[strings.ToLower(lang)]
	if !ok {
		selected = all[DefaultLanguage]
	}

	t := English()
	for key, value := range selected {
		// nested groups such as instructions are display glue, not core text
		if s, ok := value.(string); ok {
			t[key] = s
		}
	}
	return t, nil
}
