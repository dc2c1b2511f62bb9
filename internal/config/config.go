package config

import (
	"bytes"
	_ "embed"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

// ---- Root ----

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	Asaas     AsaasConfig     `mapstructure:"asaas"`
	Facebook  FacebookConfig  `mapstructure:"facebook"`
	Filter    FilterConfig    `mapstructure:"filter"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

// ---- Leaf structs ----

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AsaasConfig holds the inbound webhook credentials. An empty WebhookToken
// means every inbound request is rejected (fail closed).
type AsaasConfig struct {
	WebhookToken string `mapstructure:"webhook_token"`
}

type FacebookConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIVersion     string        `mapstructure:"api_version"`
	PixelID        string        `mapstructure:"pixel_id"`
	AccessToken    string        `mapstructure:"access_token"`
	TestEventCode  string        `mapstructure:"test_event_code"`
	EventSourceURL string        `mapstructure:"event_source_url"`
	TimeoutMs      int           `mapstructure:"timeout_ms"`
	Breaker        BreakerConfig `mapstructure:"breaker"`
}

type BreakerConfig struct {
	FailThreshold int `mapstructure:"fail_threshold"`
	OpenForMs     int `mapstructure:"open_for_ms"`
}

type FilterConfig struct {
	Keywords []string `mapstructure:"keywords"`
}

type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
	RPS     int  `mapstructure:"rps"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env overrides (BRIDGE_*).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		_ = v.MergeInConfig()
	}

	// env override (BRIDGE_*), e.g. BRIDGE_ASAAS_WEBHOOK_TOKEN
	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
