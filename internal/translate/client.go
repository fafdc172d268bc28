// Package translate is a typed client for the Google Cloud Translate v2 API.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"lingobot/internal/core"
)

const (
	defaultEndpoint = "https://translation.googleapis.com/language/translate/v2"
	httpTimeout     = 30 * time.Second
)

// ErrNoTranslations marks a 200 response whose translations list is empty.
var ErrNoTranslations = errors.New("bad response: translations are missing")

// Client calls the translation API. Stateless; safe to share.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
	log      *zerolog.Logger
}

// New creates a translation client with the given API key.
func New(apiKey string, logger *zerolog.Logger) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: httpTimeout},
		log:      logger,
	}
}

// WithEndpoint overrides the API endpoint (for testing).
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

type apiResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate sends one translation request. The API carries everything in
// query parameters; the POST body stays empty. An empty source asks the API
// to detect the source language.
func (c *Client) Translate(ctx context.Context, query, target, source string) (core.Translation, error) {
	params := url.Values{
		"q":      {query},
		"target": {target},
		"format": {"text"},
		"model":  {"base"},
		"key":    {c.apiKey},
	}
	if source != "" {
		params.Set("source", source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return core.Translation{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return core.Translation{}, fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().Int("status", resp.StatusCode).Msg("translate response")

	if resp.StatusCode != http.StatusOK {
		return core.Translation{}, fmt.Errorf("google cloud translate error: %d", resp.StatusCode)
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return core.Translation{}, fmt.Errorf("decode response: %w", err)
	}

	if len(out.Data.Translations) == 0 {
		return core.Translation{}, ErrNoTranslations
	}

	first := out.Data.Translations[0]
	return core.Translation{
		TranslatedText:         first.TranslatedText,
		DetectedSourceLanguage: first.DetectedSourceLanguage,
	}, nil
}
