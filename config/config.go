package config

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Maersk   MaerskConfig   `yaml:"maersk"`
	Cache    CacheConfig    `yaml:"cache"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Bot      BotConfig      `yaml:"bot"`
}

type TelegramConfig struct {
	APIBaseURL         string `yaml:"api_base_url"`
	PollTimeoutSeconds int    `yaml:"poll_timeout_seconds"`
}

type MaerskConfig struct {
	BaseURL             string `yaml:"base_url"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
	MaxInFlight         int    `yaml:"max_in_flight"`
}

type CacheConfig struct {
	Backend    string `yaml:"backend"` // "memory" (default) or "redis"
	Capacity   int    `yaml:"capacity"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type KafkaConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	MirrorTopicName string `yaml:"mirror_topic_name"`
}

type BotConfig struct {
	AdminChatID int64 `yaml:"admin_chat_id"`
	// MirrorByDefault keeps mirroring on when absent from the file.
	MirrorByDefault *bool  `yaml:"mirror_by_default"`
	HTTPAddr        string `yaml:"http_addr"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}

// Secrets come from the environment, never from the YAML file.
type Secrets struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN, required"`
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	var s Secrets
	if err := envconfig.Process(ctx, &s); err != nil {
		return nil, fmt.Errorf("failed to read secrets from env: %w", err)
	}
	return &s, nil
}
