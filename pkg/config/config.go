package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"

	"yoi_chat/pkg/chat"
)

// Placement values for the chat panel.
const (
	PositionBottomLeft  = "bottom-left"
	PositionBottomRight = "bottom-right"
)

// Markup rendering modes for remote replies.
const (
	MarkupEscape   = "escape"
	MarkupSanitize = "sanitize"
	MarkupRaw      = "raw"
)

// Config represents the application configuration
type Config struct {
	Widget       WidgetConfig       `json:"widget"`
	Language     string             `json:"language" env:"YOI_LANGUAGE"`
	Markup       string             `json:"markup" env:"YOI_MARKUP"`
	Greeting     string             `json:"greeting"`
	QuickReplies []QuickReply       `json:"quick_replies"`
	SessionStore SessionStoreConfig `json:"session_store"`
	LogLevel     string             `json:"log_level" env:"YOI_LOG_LEVEL"`
	LogFormat    string             `json:"log_format" env:"YOI_LOG_FORMAT"`
	LogFile      string             `json:"log_file" env:"YOI_LOG_FILE"`
}

// WidgetConfig mirrors the embeddable widget's options object.
type WidgetConfig struct {
	APIURL                string `json:"api_url" env:"YOI_API_URL"`
	BrandColor            string `json:"brand_color" env:"YOI_BRAND_COLOR"`
	Position              string `json:"position" env:"YOI_POSITION"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" env:"YOI_REQUEST_TIMEOUT_SECONDS"`
}

// QuickReply is a suggested message offered after the greeting.
type QuickReply struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// SessionStoreConfig selects where the session identifier is persisted.
type SessionStoreConfig struct {
	Type          string `json:"type" env:"YOI_STORE_TYPE"` // file | memory | sqlite | redis
	Path          string `json:"path" env:"YOI_STORE_PATH"`
	RedisAddr     string `json:"redis_addr" env:"YOI_REDIS_ADDR"`
	RedisPassword string `json:"redis_password" env:"YOI_REDIS_PASSWORD"`
	RedisDB       int    `json:"redis_db" env:"YOI_REDIS_DB"`
	RedisPrefix   string `json:"redis_prefix" env:"YOI_REDIS_PREFIX"`
	TTLSeconds    int    `json:"ttl_seconds" env:"YOI_STORE_TTL_SECONDS"`
}

// DefaultQuickReplies returns the suggested messages of the embeddable widget.
func DefaultQuickReplies() []QuickReply {
	defaults := chat.DefaultQuickReplies()
	out := make([]QuickReply, len(defaults))
	for i, qr := range defaults {
		out[i] = QuickReply{Label: qr.Label, Message: qr.Message}
	}
	return out
}

// ChatQuickReplies converts the configured set for the chat client.
func (c Config) ChatQuickReplies() []chat.QuickReply {
	out := make([]chat.QuickReply, 0, len(c.QuickReplies))
	for _, qr := range c.QuickReplies {
		label := qr.Label
		if strings.TrimSpace(label) == "" {
			label = qr.Message
		}
		out = append(out, chat.QuickReply{Label: label, Message: qr.Message})
	}
	return out
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		Widget: WidgetConfig{
			APIURL:     "http://127.0.0.1:8080/chat",
			BrandColor: "#FF7A00",
			Position:   PositionBottomRight,
		},
		Language:     chat.DefaultLanguage,
		Markup:       MarkupEscape,
		Greeting:     chat.DefaultGreeting,
		QuickReplies: DefaultQuickReplies(),
		SessionStore: SessionStoreConfig{
			Type:        "file",
			RedisPrefix: "yoi:",
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Fields missing from the file keep their defaults.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		cfg := Default()
		if err := Save(configPath, cfg); err != nil {
			return Config{}, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads the file config, then applies a .env file (if present)
// and YOI_* environment variables on top of it.
func LoadWithEnv(configPath, dotenvPath string) (Config, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return Config{}, err
	}

	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any YOI_* variables set in the environment.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if strings.TrimSpace(c.Widget.APIURL) == "" {
		return fmt.Errorf("widget.api_url is required")
	}
	u, err := url.Parse(c.Widget.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("widget.api_url must be an http(s) URL, got: %q", c.Widget.APIURL)
	}

	if _, err := colorful.Hex(NormalizeHex(c.Widget.BrandColor)); err != nil {
		return fmt.Errorf("widget.brand_color must be a hex color, got: %q", c.Widget.BrandColor)
	}

	switch c.Widget.Position {
	case PositionBottomLeft, PositionBottomRight:
	default:
		return fmt.Errorf("widget.position must be %q or %q, got: %q", PositionBottomLeft, PositionBottomRight, c.Widget.Position)
	}

	if c.Widget.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("widget.request_timeout_seconds must not be negative, got: %d", c.Widget.RequestTimeoutSeconds)
	}

	switch c.Markup {
	case MarkupEscape, MarkupSanitize, MarkupRaw:
	default:
		return fmt.Errorf("markup must be one of escape, sanitize, raw, got: %q", c.Markup)
	}

	for i, qr := range c.QuickReplies {
		if strings.TrimSpace(qr.Message) == "" {
			return fmt.Errorf("quick_replies[%d].message is required", i)
		}
	}

	switch c.SessionStore.Type {
	case "file", "memory", "sqlite":
	case "redis":
		if strings.TrimSpace(c.SessionStore.RedisAddr) == "" {
			return fmt.Errorf("session_store.redis_addr is required for the redis store")
		}
	default:
		return fmt.Errorf("unsupported session_store.type: %q", c.SessionStore.Type)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log_level: %q", c.LogLevel)
	}

	return nil
}

// NormalizeHex prefixes a bare hex triplet with '#'.
func NormalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "#") {
		return "#" + s
	}
	return s
}

// GetConfigDir returns the directory holding config, storage and logs.
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return ".yoi_chat"
	}
	return filepath.Join(homeDir, ".yoi_chat")
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.json")
}

// StorePath resolves the session store location for file and sqlite drivers.
func (c Config) StorePath() string {
	if p := strings.TrimSpace(c.SessionStore.Path); p != "" {
		return p
	}
	switch c.SessionStore.Type {
	case "sqlite":
		return filepath.Join(GetConfigDir(), "storage.db")
	default:
		return filepath.Join(GetConfigDir(), "storage.json")
	}
}
