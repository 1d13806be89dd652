package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/dweb-live-cache/internal/logging"
	"github.com/goodnatureofminers/dweb-live-cache/internal/metrics"
	"github.com/goodnatureofminers/dweb-live-cache/internal/repository/redis"
)

type config struct {
	RedisURL    string `long:"redis-url" env:"LIVE_CACHE_REDIS_URL" description:"Redis URL" default:"redis://127.0.0.1:6379/0"`
	RedisPrefix string `long:"redis-prefix" env:"LIVE_CACHE_REDIS_PREFIX" description:"Redis key prefix" default:"live-cache"`
	LogLevel    string `long:"log-level" env:"LOG_LEVEL" description:"debug, info, warn or error" default:"info"`
	LogEncoding string `long:"log-encoding" env:"LOG_ENCODING" description:"json or console" default:"console"`
}

func main() {
	cfg := config{}

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("flush failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	client, err := redis.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	store, err := redis.NewStore(client, cfg.RedisPrefix, metrics.NewRedisStore())
	if err != nil {
		return err
	}
	deleted, err := store.Flush(ctx)
	if err != nil {
		return err
	}
	logger.Info("store flushed", zap.String("prefix", cfg.RedisPrefix), zap.Int64("deleted_keys", deleted))
	return nil
}
