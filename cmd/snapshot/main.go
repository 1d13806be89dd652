package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/dweb-live-cache/internal/logging"
	"github.com/goodnatureofminers/dweb-live-cache/internal/metrics"
	"github.com/goodnatureofminers/dweb-live-cache/internal/repository/redis"
	"github.com/goodnatureofminers/dweb-live-cache/internal/snapshot"
)

type config struct {
	RedisURL    string `long:"redis-url" env:"LIVE_CACHE_REDIS_URL" description:"Redis URL" default:"redis://127.0.0.1:6379/0"`
	RedisPrefix string `long:"redis-prefix" env:"LIVE_CACHE_REDIS_PREFIX" description:"Redis key prefix" default:"live-cache"`
	Output      string `long:"output" short:"o" env:"LIVE_CACHE_SNAPSHOT_OUTPUT" description:"snapshot file, - for stdout" default:"-"`
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
		logger.Fatal("snapshot failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) (err error) {
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

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()

	stats, err := snapshot.Export(ctx, store, out)
	if err != nil {
		return err
	}
	logger.Info("snapshot written",
		zap.String("output", cfg.Output),
		zap.Int("forward_records", stats.Forward),
		zap.Int("reverse_records", stats.Reverse),
		zap.Uint64("checkpoint", stats.Checkpoint),
	)
	return nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create snapshot: %w", err)
	}
	return f, f.Close, nil
}
