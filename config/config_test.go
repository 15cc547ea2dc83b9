package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
telegram:
  poll_timeout_seconds: 30
maersk:
  base_url: "https://api.maerskline.com/track/"
  fetch_timeout_seconds: 10
  max_in_flight: 10
cache:
  backend: "redis"
  capacity: 500
  ttl_seconds: 3600
redis:
  host: "localhost"
  port: 6379
kafka:
  host: "localhost"
  port: 9092
  mirror_topic_name: "request.mirrored"
bot:
  admin_chat_id: 1525941072
  mirror_by_default: false
  http_addr: ":8082"
`), 0o600))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	require.Equal(t, 30, cfg.Telegram.PollTimeoutSeconds)
	require.Equal(t, "https://api.maerskline.com/track/", cfg.Maersk.BaseURL)
	require.Equal(t, "redis", cfg.Cache.Backend)
	require.Equal(t, 3600, cfg.Cache.TTLSeconds)
	require.Equal(t, "request.mirrored", cfg.Kafka.MirrorTopicName)
	require.Equal(t, int64(1525941072), cfg.Bot.AdminChatID)
	require.NotNil(t, cfg.Bot.MirrorByDefault)
	require.False(t, *cfg.Bot.MirrorByDefault)
}

func TestLoadConfig_MirrorDefaultAbsent(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte("bot:\n  admin_chat_id: 1\n"), 0o600))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	require.Nil(t, cfg.Bot.MirrorByDefault)
}

func TestLoadSecrets(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	s, err := LoadSecrets(context.Background())
	require.NoError(t, err)
	require.Equal(t, "123:abc", s.TelegramBotToken)
}

func TestLoadSecrets_Missing(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	_, err := LoadSecrets(context.Background())
	require.Error(t, err)
}
