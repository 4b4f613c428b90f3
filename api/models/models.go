// Package models tracks all api models for request and responses
package models

type WallpaperResponse struct {
	Src             string `json:"src"`
	Alt             string `json:"alt"`
	PageURL         string `json:"pageUrl,omitempty"`
	PhotographerURL string `json:"photographerUrl,omitempty"`
	AttributionURL  string `json:"attributionUrl"`
	Track           string `json:"track,omitempty"`
	Index           int    `json:"index"`
	Total           int    `json:"total"`
	Paused          bool   `json:"paused"`
}

type StatusResponse struct {
	Message string `json:"message"`
	IsError bool   `json:"isError"`
	Visible bool   `json:"visible"`
}

type SettingsResponse struct {
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
	CollectionID     string `json:"collectionId"`
	CollectionURL    string `json:"collectionUrl"`
	Mode             string `json:"mode"`
}

type UpdateSettingsRequest struct {
	APIKey        string `json:"apiKey"`
	CollectionURL string `json:"collectionUrl"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
