package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTP.Addr)
	assert.Equal(t, "https://graph.facebook.com", cfg.Facebook.BaseURL)
	assert.Equal(t, "v19.0", cfg.Facebook.APIVersion)
	assert.Equal(t, 3000, cfg.Facebook.TimeoutMs)
	assert.Equal(t, []string{"raras 2026", "outro evento"}, cfg.Filter.Keywords)
	assert.False(t, cfg.RateLimit.Enabled)
	// fail closed until a secret is configured
	assert.Empty(t, cfg.Asaas.WebhookToken)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BRIDGE_ASAAS_WEBHOOK_TOKEN", "tok-123")
	t.Setenv("BRIDGE_FACEBOOK_PIXEL_ID", "987654321")
	t.Setenv("BRIDGE_HTTP_ADDR", ":8080")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "tok-123", cfg.Asaas.WebhookToken)
	assert.Equal(t, "987654321", cfg.Facebook.PixelID)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}
