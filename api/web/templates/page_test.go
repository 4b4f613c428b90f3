package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func render(t *testing.T, d PageData) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Page(d).Render(context.Background(), &sb))
	return sb.String()
}

func TestPageEscapesContent(t *testing.T) {
	body := render(t, PageData{
		Lang:             "us",
		Title:            "Pexel Wallpaper",
		Src:              "https://images.pexels.com/photos/1/a.jpeg?w=1&h=2",
		Alt:              `Wallpaper "1" <of> 2`,
		AttributionURL:   "https://www.pexels.com/photo/1/",
		AttributionLabel: "Photos provided by Pexels",
		Status:           "<b>Loading</b>",
		StatusVisible:    true,
		PollSeconds:      5,
	})

	require.Contains(t, body, `<html lang="us">`)
	require.Contains(t, body, `<title>Pexel Wallpaper</title>`)
	require.Contains(t, body, `data-poll-seconds="5"`)
	require.Contains(t, body, `src="https://images.pexels.com/photos/1/a.jpeg?w=1&amp;h=2"`)
	require.Contains(t, body, `alt="Wallpaper &#34;1&#34; &lt;of&gt; 2"`)
	require.Contains(t, body, `&lt;b&gt;Loading&lt;/b&gt;`)
	require.Contains(t, body, `href="https://www.pexels.com/photo/1/"`)
	require.Contains(t, body, `class="status"`)
}

func TestPageStatusClasses(t *testing.T) {
	body := render(t, PageData{Status: "Invalid API Key", StatusIsError: true})
	require.Contains(t, body, `class="status status-error hidden"`)

	body = render(t, PageData{Status: "Invalid API Key", StatusIsError: true, StatusVisible: true})
	require.Contains(t, body, `class="status status-error"`)
}

func TestPageRejectsUnsafeAttributionURL(t *testing.T) {
	body := render(t, PageData{AttributionURL: "javascript:alert(1)"})
	require.NotContains(t, body, "javascript:")
}
