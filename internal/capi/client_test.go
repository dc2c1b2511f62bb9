package capi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"conversion-bridge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srvURL string, cfg ClientConfig) *Client {
	cfg.BaseURL = srvURL
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v19.0"
	}
	if cfg.PixelID == "" {
		cfg.PixelID = "1234567890"
	}
	if cfg.AccessToken == "" {
		cfg.AccessToken = "token"
	}
	return NewClient(cfg)
}

func sampleEvent() model.ServerEvent {
	em := "905231986a8c247271f571ca09ae3b15edcd8ec2fd5de9931ac02bda02a22e37"
	value := 99.9
	return model.ServerEvent{
		EventName:    "Purchase",
		EventTime:    1700000000,
		EventID:      "01J0000000000000000000000X",
		ActionSource: "website",
		UserData:     model.UserData{Em: []*string{&em}},
		CustomData:   model.CustomData{Value: &value, Currency: "BRL"},
	}
}

func TestClientSend(t *testing.T) {
	var gotPath, gotToken string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, ClientConfig{AccessToken: "secret-token"})

	err := c.Send(context.Background(), sampleEvent())
	require.NoError(t, err)

	assert.Equal(t, "/v19.0/1234567890/events", gotPath)
	assert.Equal(t, "secret-token", gotToken)

	var batch model.EventBatch
	require.NoError(t, json.Unmarshal(gotBody, &batch))
	require.Len(t, batch.Data, 1)
	assert.Equal(t, "Purchase", batch.Data[0].EventName)
	assert.Empty(t, batch.TestEventCode)
}

func TestClientSendTestEventCode(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, ClientConfig{TestEventCode: "TEST123"})

	require.NoError(t, c.Send(context.Background(), sampleEvent()))

	var batch model.EventBatch
	require.NoError(t, json.Unmarshal(gotBody, &batch))
	assert.Equal(t, "TEST123", batch.TestEventCode)
}

func TestClientSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, ClientConfig{})

	err := c.Send(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid parameter")
	assert.Contains(t, err.Error(), "400")
}

func TestClientSendUnstructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unhappy"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, ClientConfig{})

	err := c.Send(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClientBreakerOpensAfterFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, ClientConfig{FailThreshold: 2, OpenForMs: 60000})

	require.Error(t, c.Send(context.Background(), sampleEvent()))
	require.Error(t, c.Send(context.Background(), sampleEvent()))

	err := c.Send(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, calls)
}
