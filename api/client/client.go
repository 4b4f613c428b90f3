// Package client talks to a running frame server over its http api
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aouyang1/pexelwallpaper/api/models"
)

type FrameClient struct {
	baseURL string
	client  *http.Client
}

func NewFrameClient(baseURL string) *FrameClient {
	return &FrameClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Wallpaper returns the photo the frame is showing
func (fc *FrameClient) Wallpaper(ctx context.Context) (*models.WallpaperResponse, error) {
	var resp models.WallpaperResponse
	if err := fc.do(ctx, http.MethodGet, "/wallpaper", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (fc *FrameClient) Status(ctx context.Context) (*models.StatusResponse, error) {
	var resp models.StatusResponse
	if err := fc.do(ctx, http.MethodGet, "/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (fc *FrameClient) Settings(ctx context.Context) (*models.SettingsResponse, error) {
	var resp models.SettingsResponse
	if err := fc.do(ctx, http.MethodGet, "/settings", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Configure points the frame at a collection
func (fc *FrameClient) Configure(ctx context.Context, apiKey, collectionURL string) (*models.SettingsResponse, error) {
	req := models.UpdateSettingsRequest{APIKey: apiKey, CollectionURL: collectionURL}
	var resp models.SettingsResponse
	if err := fc.do(ctx, http.MethodPut, "/settings", req, &resp); err != nil {
		return nil, err
	}
	slog.Info("frame configured", "collection_id", resp.CollectionID)
	return &resp, nil
}

// Reset clears the frame's stored credentials
func (fc *FrameClient) Reset(ctx context.Context) (string, error) {
	var resp models.MessageResponse
	if err := fc.do(ctx, http.MethodDelete, "/settings", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (fc *FrameClient) Pause(ctx context.Context) (string, error) {
	var resp models.MessageResponse
	if err := fc.do(ctx, http.MethodPost, "/slideshow/pause", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (fc *FrameClient) Resume(ctx context.Context) (string, error) {
	var resp models.MessageResponse
	if err := fc.do(ctx, http.MethodPost, "/slideshow/resume", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (fc *FrameClient) Next(ctx context.Context) (*models.WallpaperResponse, error) {
	var resp models.WallpaperResponse
	if err := fc.do(ctx, http.MethodPost, "/slideshow/next", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (fc *FrameClient) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	var body io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fc.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := fc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s", errResp.Error)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(data))
	}

	if err := json.Unmarshal(data, respBody); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
