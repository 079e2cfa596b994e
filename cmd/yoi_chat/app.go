package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"yoi_chat/pkg/chat"
	"yoi_chat/pkg/chat/markup"
	"yoi_chat/pkg/config"
	"yoi_chat/pkg/logging"
	"yoi_chat/pkg/store"

	"github.com/redis/go-redis/v9"
)

// app carries the loaded configuration between cobra commands.
type app struct {
	configPath string
	envFile    string
	ephemeral  bool

	cfg    config.Config
	logger *slog.Logger
}

// load reads config, applies .env and YOI_* overrides, validates and starts
// file logging.
func (a *app) load() error {
	cfg, err := config.LoadWithEnv(a.configPath, a.envFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.configPath, err)
	}
	a.cfg = cfg

	logger, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	a.logger = logger

	if cfg.Markup == config.MarkupRaw {
		logger.Warn("raw markup enabled; remote replies are formatted without sanitizing")
	}
	logger.Debug("config loaded",
		"path", a.configPath,
		"api_url", cfg.Widget.APIURL,
		"store", cfg.SessionStore.Type)
	return nil
}

// openStore creates the session store selected by config. --ephemeral forces
// an in-memory store.
func (a *app) openStore() (store.Store, error) {
	if a.ephemeral {
		return store.New(store.TypeMemory)
	}

	sc := a.cfg.SessionStore
	switch store.Type(sc.Type) {
	case store.TypeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     sc.RedisAddr,
			Password: sc.RedisPassword,
			DB:       sc.RedisDB,
		})
		return store.New(store.TypeRedis,
			store.WithRedisClient(client),
			store.WithRedisPrefix(sc.RedisPrefix),
			store.WithTTL(time.Duration(sc.TTLSeconds)*time.Second))
	case store.TypeFile, store.TypeSQLite:
		return store.New(store.Type(sc.Type), store.WithPath(a.cfg.StorePath()))
	default:
		return store.New(store.Type(sc.Type))
	}
}

// newClient builds the chat client on top of st.
func (a *app) newClient(ctx context.Context, st store.Store) (*chat.Client, error) {
	timeout := time.Duration(a.cfg.Widget.RequestTimeoutSeconds) * time.Second
	transport, err := chat.NewHTTPTransport(a.cfg.Widget.APIURL, timeout)
	if err != nil {
		return nil, err
	}

	opts := []chat.Option{
		chat.WithQuickReplies(a.cfg.ChatQuickReplies()...),
		chat.WithLogger(a.logger),
	}
	if a.cfg.Greeting != "" {
		opts = append(opts, chat.WithGreeting(a.cfg.Greeting))
	}
	if a.cfg.Language != "" {
		opts = append(opts, chat.WithLanguage(a.cfg.Language))
	}

	return chat.NewClient(ctx, transport, st, opts...)
}

// renderer returns the markup renderer for the configured mode.
func (a *app) renderer() *markup.Renderer {
	mode, err := markup.ParseMode(a.cfg.Markup)
	if err != nil {
		a.logger.Warn("unknown markup mode, escaping", "markup", a.cfg.Markup)
	}
	return markup.New(mode)
}
