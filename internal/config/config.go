package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "LINGUANEWS_CONFIG"
	newsEndpointEnv   = "LINGUANEWS_NEWS_URL"
	sourcesURLEnv     = "LINGUANEWS_SOURCES_URL"
	userIDEnv         = "LINGUANEWS_USER_ID"
	bearerTokenEnv    = "LINGUANEWS_TOKEN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	speechAPIKeyEnv   = "SPEECH_API_KEY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	News          NewsConfig         `yaml:"news"`
	Sources       SourcesConfig      `yaml:"sources"`
	Auth          AuthConfig         `yaml:"auth"`
	Cache         CacheConfig        `yaml:"cache"`
	Notifications NotificationConfig `yaml:"notifications"`
	Speech        SpeechConfig       `yaml:"speech"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NewsConfig points at the leveled-news list endpoint.
type NewsConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// SourcesConfig points at the optional per-user source-settings endpoint.
type SourcesConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// AuthConfig carries the opaque identity the external provider issued: a
// user id used as fetch discriminator and a bearer token for writes.
type AuthConfig struct {
	UserID string `yaml:"userId"`
	Token  string `yaml:"token"`
}

// CacheConfig locates the local snapshot database.
type CacheConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// NotificationConfig encapsulates the delivery channel.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SpeechConfig selects and configures the text-to-speech engine.
type SpeechConfig struct {
	Engine   string   `yaml:"engine"` // "http", "command", or "" for off
	Endpoint string   `yaml:"endpoint"`
	APIKey   string   `yaml:"apiKey"`
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. It never fails; Validate reports what is unusable.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate fails fast on configuration the rest of the app cannot work
// without. The news endpoint is the only hard requirement.
func (c Config) Validate() error {
	if strings.TrimSpace(c.News.Endpoint) == "" {
		return errors.New("news.endpoint is required (set it in the config file or " + newsEndpointEnv + ")")
	}
	switch c.Speech.Engine {
	case "", "http", "command":
	default:
		return errors.New("speech.engine must be one of: http, command")
	}
	if c.Speech.Engine == "http" && strings.TrimSpace(c.Speech.Endpoint) == "" {
		return errors.New("speech.endpoint is required when speech.engine is http")
	}
	if c.Speech.Engine == "command" && strings.TrimSpace(c.Speech.Command) == "" {
		return errors.New("speech.command is required when speech.engine is command")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(newsEndpointEnv); v != "" {
		c.News.Endpoint = v
	}

	if v := os.Getenv(sourcesURLEnv); v != "" {
		c.Sources.Endpoint = v
	}

	if v := os.Getenv(userIDEnv); v != "" {
		c.Auth.UserID = v
	}

	if v := os.Getenv(bearerTokenEnv); v != "" {
		c.Auth.Token = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(speechAPIKeyEnv); v != "" {
		c.Speech.APIKey = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.News.Endpoint != "" {
		base.News = override.News
	}

	if override.Sources.Endpoint != "" {
		base.Sources = override.Sources
	}

	if override.Auth.UserID != "" {
		base.Auth.UserID = override.Auth.UserID
	}
	if override.Auth.Token != "" {
		base.Auth.Token = override.Auth.Token
	}

	if override.Cache.Path != "" {
		base.Cache.Path = override.Cache.Path
	}
	if override.Cache.Disabled {
		base.Cache.Disabled = true
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Speech.Engine != "" {
		base.Speech.Engine = override.Speech.Engine
	}
	if override.Speech.Endpoint != "" {
		base.Speech.Endpoint = override.Speech.Endpoint
	}
	if override.Speech.APIKey != "" {
		base.Speech.APIKey = override.Speech.APIKey
	}
	if override.Speech.Command != "" {
		base.Speech.Command = override.Speech.Command
		base.Speech.Args = override.Speech.Args
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Cache:   CacheConfig{Path: "linguanews.db"},
	}
}
