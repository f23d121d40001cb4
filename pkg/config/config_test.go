package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Model: ModelConfig{Provider: ModelProviderOpenAI, APIKey: "sk-test"},
		Store: StoreConfig{Backend: StoreBackendNotion, NotionAPIKey: "secret_x", NotionDatabaseID: "db"},
		Mail:  MailConfig{ResendAPIKey: "re_x", Recipient: "lead@example.com", MaxAttempts: 3},
		Sweep: SweepConfig{PageSize: 5},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing openai key", func(c *Config) { c.Model.APIKey = "" }, "OPENAI_API_KEY"},
		{"gemini without key", func(c *Config) { c.Model.Provider = ModelProviderGemini }, "GEMINI_API_KEY"},
		{"unknown provider", func(c *Config) { c.Model.Provider = "llama" }, "MODEL_PROVIDER"},
		{"notion without database", func(c *Config) { c.Store.NotionDatabaseID = "" }, "NOTION_DATABASE_ID"},
		{"memory needs nothing", func(c *Config) { c.Store = StoreConfig{Backend: StoreBackendMemory} }, ""},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, "STORE_BACKEND"},
		{"missing resend key", func(c *Config) { c.Mail.ResendAPIKey = "" }, "RESEND_API_KEY"},
		{"bad recipient", func(c *Config) { c.Mail.Recipient = "lead" }, "MAIL_RECIPIENT"},
		{"zero attempts", func(c *Config) { c.Mail.MaxAttempts = 0 }, "MAIL_MAX_ATTEMPTS"},
		{"zero page size", func(c *Config) { c.Sweep.PageSize = 0 }, "SWEEP_PAGE_SIZE"},
		{"lease without ttl", func(c *Config) { c.Sweep.LeaseEnabled = true }, "SWEEP_LEASE_TTL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("MAIL_RECIPIENT", "lead@example.com")
	t.Setenv("SWEEP_INTERVAL", "10m")

	cfg, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.Model.APIKey)
	assert.Equal(t, "gpt-4-turbo", cfg.Model.Name)
	assert.InDelta(t, 0.2, cfg.Model.Temperature, 1e-9)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Mail.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.Mail.RetryDelay)
	assert.Equal(t, 5, cfg.Sweep.PageSize)
	assert.Equal(t, 10*time.Minute, cfg.Sweep.Interval)
	assert.Equal(t, "Untitled Meeting", cfg.DefaultMeetingName)
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{}
	assert.Empty(t, cfg.GetRedisAddr())

	cfg.Redis = RedisConfig{Host: "redis", Port: "6379"}
	assert.Equal(t, "redis:6379", cfg.GetRedisAddr())
}
