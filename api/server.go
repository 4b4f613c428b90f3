// Package api is the main api web server
package api

import (
	"embed"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/a-h/templ"
	"github.com/aouyang1/pexelwallpaper/api/models"
	"github.com/aouyang1/pexelwallpaper/api/web/templates"
	"github.com/aouyang1/pexelwallpaper/i18n"
	"github.com/aouyang1/pexelwallpaper/slideshow"
	"github.com/aouyang1/pexelwallpaper/util"
	"github.com/gin-gonic/gin"
)

//go:embed web/static/*
var webFiles embed.FS

const defaultPollInterval = 5 * time.Second

type WebServer struct {
	router       *gin.Engine
	orchestrator *Orchestrator
	lang         string
	pollInterval time.Duration
}

type ServerOption func(*WebServer)

// WithLanguage sets the lang attribute of the page
func WithLanguage(lang string) ServerOption {
	return func(ws *WebServer) { ws.lang = lang }
}

// WithPollInterval sets how often the page asks for the current wallpaper
func WithPollInterval(d time.Duration) ServerOption {
	return func(ws *WebServer) {
		if d > 0 {
			ws.pollInterval = d
		}
	}
}

func NewWebServer(orchestrator *Orchestrator, opts ...ServerOption) *WebServer {
	ws := &WebServer{
		router:       gin.Default(),
		orchestrator: orchestrator,
		lang:         i18n.DefaultLanguage,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(ws)
	}

	ws.setupRoutes()
	return ws
}

func (ws *WebServer) setupRoutes() {
	staticFS, err := fs.Sub(webFiles, "web/static")
	if err != nil {
		log.Fatalf("Failed to create static filesystem: %v", err)
	}
	ws.router.StaticFS("static", http.FS(staticFS))

	ws.router.GET("/", ws.handleIndex)
	ws.router.GET("/wallpaper", ws.handleGetWallpaper)
	ws.router.GET("/status", ws.handleGetStatus)
	ws.router.GET("/settings", ws.handleGetSettings)
	ws.router.PUT("/settings", ws.handleUpdateSettings)
	ws.router.DELETE("/settings", ws.handleDeleteSettings)
	ws.router.POST("/slideshow/pause", ws.handlePause)
	ws.router.POST("/slideshow/resume", ws.handleResume)
	ws.router.POST("/slideshow/next", ws.handleNext)
}

func (ws *WebServer) Handler() http.Handler {
	return ws.router
}

func (ws *WebServer) Start(addr string) {
	log.Printf("Starting web server on %s", addr)
	if err := ws.router.Run(addr); err != nil {
		log.Fatalf("Failed to start web server: %v", err)
	}
}

// handleIndex serves the wallpaper page. Credentials passed in the query are
// applied once and stripped with a redirect.
func (ws *WebServer) handleIndex(c *gin.Context) {
	query := c.Request.URL.Query()

	sensitive := false
	for key := range query {
		if util.SensitiveQueryKeys.Contains(key) {
			sensitive = true
			break
		}
	}
	if sensitive {
		apiKey := query.Get("apiKey")
		collectionURL := query.Get("collectionUrl")
		if apiKey != "" && collectionURL != "" {
			if _, err := ws.orchestrator.Configure(c.Request.Context(), apiKey, collectionURL); err != nil {
				slog.Warn("ignoring settings from url", "collection_url", collectionURL, "error", err)
			}
		}

		for key := range util.SensitiveQueryKeys.Iter() {
			query.Del(key)
		}
		stripped := url.URL{Path: c.Request.URL.Path, RawQuery: query.Encode()}
		c.Redirect(http.StatusFound, stripped.String())
		return
	}

	frame := ws.orchestrator.Frame().Current()
	status := ws.orchestrator.Status().Current()
	tr := ws.orchestrator.Translations()

	page := templates.Page(templates.PageData{
		Lang:             ws.lang,
		Title:            tr.Get("formTitle"),
		Src:              frame.Src,
		Alt:              frame.Alt,
		AttributionURL:   frame.AttributionURL(),
		AttributionLabel: tr.Get("attributionLabel"),
		Status:           status.Message,
		StatusIsError:    status.IsError,
		StatusVisible:    status.Visible,
		PollSeconds:      int(ws.pollInterval / time.Second),
	})
	templ.Handler(page).ServeHTTP(c.Writer, c.Request)
}

func (ws *WebServer) handleGetWallpaper(c *gin.Context) {
	c.JSON(http.StatusOK, ws.wallpaper())
}

func (ws *WebServer) wallpaper() models.WallpaperResponse {
	frame := ws.orchestrator.Frame().Current()
	resp := models.WallpaperResponse{
		Src:            frame.Src,
		Alt:            frame.Alt,
		AttributionURL: frame.AttributionURL(),
	}
	if frame.Photo != nil {
		resp.PageURL = frame.Photo.PageURL
		resp.PhotographerURL = frame.Photo.PhotographerURL
	}

	mode := ws.orchestrator.Mode()
	if mode == ModeIdle {
		return resp
	}
	track := slideshow.Remote
	if mode == ModeDefault {
		track = slideshow.Default
	}
	state := ws.orchestrator.Engine().Snapshot(track)
	resp.Track = mode
	resp.Total = len(state.Images)
	resp.Paused = state.Paused
	if resp.Total > 0 {
		// CurrentIndex already points at the next photo
		resp.Index = (state.CurrentIndex+resp.Total-1)%resp.Total + 1
	}
	return resp
}

func (ws *WebServer) handleGetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ws.orchestrator.Status().Current())
}

func (ws *WebServer) handleGetSettings(c *gin.Context) {
	settings, err := ws.orchestrator.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get settings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.SettingsResponse{
		APIKeyConfigured: settings.APIKey != "",
		CollectionID:     settings.CollectionID,
		CollectionURL:    settings.LastCollectionURL,
		Mode:             ws.orchestrator.Mode(),
	})
}

func (ws *WebServer) handleUpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	settings, err := ws.orchestrator.Configure(c.Request.Context(), req.APIKey, req.CollectionURL)
	if err != nil {
		if IsValidationError(err) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update settings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.SettingsResponse{
		APIKeyConfigured: true,
		CollectionID:     settings.CollectionID,
		CollectionURL:    settings.LastCollectionURL,
		Mode:             ModeRemote,
	})
}

func (ws *WebServer) handleDeleteSettings(c *gin.Context) {
	if err := ws.orchestrator.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to clear settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{
		Message: ws.orchestrator.Translations().Get("statusSettingsCleared"),
	})
}

func (ws *WebServer) handlePause(c *gin.Context) {
	ws.orchestrator.Pause()
	c.JSON(http.StatusOK, models.MessageResponse{Message: ws.orchestrator.Translations().Get("slideshowPaused")})
}

func (ws *WebServer) handleResume(c *gin.Context) {
	ws.orchestrator.Resume()
	c.JSON(http.StatusOK, models.MessageResponse{Message: ws.orchestrator.Translations().Get("slideshowResumed")})
}

func (ws *WebServer) handleNext(c *gin.Context) {
	if !ws.orchestrator.Engine().Next() {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "No slideshow is running"})
		return
	}
	c.JSON(http.StatusOK, ws.wallpaper())
}
