package capi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"conversion-bridge/internal/model"
)

// Forwarder delivers a conversion event to the advertising platform.
type Forwarder interface {
	Send(ctx context.Context, ev model.ServerEvent) error
}

var ErrUnavailable = errors.New("conversions api circuit open")

// apiError is the structured error body the Graph API returns on non-2xx.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type ClientConfig struct {
	BaseURL       string // e.g. "https://graph.facebook.com"
	APIVersion    string // e.g. "v19.0"
	PixelID       string
	AccessToken   string
	TestEventCode string
	TimeoutMs     int
	FailThreshold int
	OpenForMs     int
}

// Client posts single-event batches to the Conversions API events endpoint.
// At most one delivery attempt is made per event; there is no retry.
type Client struct {
	endpoint      string
	accessToken   string
	testEventCode string
	client        *http.Client
	br            *Breaker
}

var _ Forwarder = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 3000
	}

	if cfg.FailThreshold <= 0 {
		cfg.FailThreshold = 3
	}

	if cfg.OpenForMs <= 0 {
		cfg.OpenForMs = 15000
	}

	return &Client{
		endpoint:      fmt.Sprintf("%s/%s/%s/events", cfg.BaseURL, cfg.APIVersion, cfg.PixelID),
		accessToken:   cfg.AccessToken,
		testEventCode: cfg.TestEventCode,
		client:        &http.Client{Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond},
		br:            NewBreaker(cfg.FailThreshold, time.Duration(cfg.OpenForMs)*time.Millisecond),
	}
}

func (c *Client) Send(ctx context.Context, ev model.ServerEvent) error {
	if !c.br.TryAcquire() {
		return ErrUnavailable
	}

	if err := c.post(ctx, ev); err != nil {
		c.br.OnFailure()
		return err
	}

	c.br.OnSuccess()

	return nil
}

func (c *Client) post(ctx context.Context, ev model.ServerEvent) error {
	batch := model.EventBatch{
		Data:          []model.ServerEvent{ev},
		TestEventCode: c.testEventCode,
	}

	b, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal event batch: %w", err)
	}

	u := c.endpoint + "?access_token=" + url.QueryEscape(c.accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		// Prefer the provider's structured message when it parses.
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		var ae apiError
		if json.Unmarshal(body, &ae) == nil && ae.Error.Message != "" {
			return fmt.Errorf("conversions api status=%d: %s", res.StatusCode, ae.Error.Message)
		}
		return fmt.Errorf("conversions api status=%d", res.StatusCode)
	}

	return nil
}
