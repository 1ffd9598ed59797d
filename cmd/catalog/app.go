package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/catalog-client/pkg/catalog"
	"github.com/Sternrassler/catalog-client/pkg/client"
	"github.com/Sternrassler/catalog-client/pkg/connectivity"
	"github.com/Sternrassler/catalog-client/pkg/gateway"
	"github.com/Sternrassler/catalog-client/pkg/logging"
)

// deps are the seams replaced in tests.
type deps struct {
	checker    connectivity.Checker
	httpClient *http.Client
}

// app is the wired object graph shared by all commands.
type app struct {
	cfg    config
	logger zerolog.Logger
	redis  *redis.Client
	client *client.Client
	repo   *catalog.Repository
}

func newApp(ctx context.Context, cfg config, d deps, logger zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	if cfg.RedisURL != "" {
		rdb, err := newRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("redis", cfg.RedisURL).Msg("Redis unavailable, response cache disabled")
			_ = rdb.Close()
		} else {
			logger.Info().Str("redis", cfg.RedisURL).Msg("Connected to Redis")
			a.redis = rdb
		}
	}

	ccfg := client.DefaultConfig(a.redis, cfg.UserAgent)
	ccfg.BaseURL = cfg.BaseURL
	ccfg.CacheMaxAge = cfg.CacheMaxAge
	c, err := client.New(ccfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create client: %w", err)
	}
	if d.httpClient != nil {
		c.SetHTTPClient(d.httpClient)
	}
	a.client = c

	checker := d.checker
	if checker == nil {
		checker = connectivity.NewInterfaces(connectivity.DefaultInterfacesTTL, logging.NewLogger("connectivity"))
	}
	gw := gateway.New(checker, logging.NewLogger("gateway"))
	a.repo = catalog.NewRepository(c, gw)

	return a, nil
}

// newRedis accepts either a redis:// URL or a plain host:port address.
func newRedis(raw string) (*redis.Client, error) {
	if strings.Contains(raw, "://") {
		opts, err := redis.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: raw}), nil
}

func (a *app) Close() {
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
