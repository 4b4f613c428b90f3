package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tr := English()
	require.Equal(t,
		"Something went wrong (HTTP 503). Please try again later.",
		tr.Format("statusErrorGeneric", map[string]string{"status": "503"}),
	)
}

func TestGetFallsBack(t *testing.T) {
	tr := Translations{"statusLoading": ""}
	require.Equal(t, "Loading...", tr.Get("statusLoading"))
	require.Equal(t, "noSuchKey", tr.Get("noSuchKey"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.json")
	content := `{
		"us": {"statusLoading": "Loading..."},
		"nl": {"statusLoading": "Laden...", "instructions": {"mac": {"step3": "x"}}}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	nl, err := Load(path, "NL")
	require.NoError(t, err)
	require.Equal(t, "Laden...", nl.Get("statusLoading"))
	require.Equal(t, "of", nl.Get("wallpaperAltOf"))
	_, nested := nl["instructions"]
	require.False(t, nested)

	fr, err := Load(path, "fr")
	require.NoError(t, err)
	require.Equal(t, "Loading...", fr.Get("statusLoading"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), "us")
	require.Error(t, err)
}
