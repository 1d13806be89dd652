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
	Input       string `long:"input" short:"i" env:"LIVE_CACHE_SEED_INPUT" description:"snapshot file, - for stdin" required:"true"`
	ChunkSize   int    `long:"chunk-size" env:"LIVE_CACHE_SEED_CHUNK_SIZE" description:"records per pipelined write" default:"1000"`
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
		logger.Fatal("seed failed", zap.Error(err))
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

	in, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	importer, err := snapshot.NewImporter(store, cfg.ChunkSize, logger)
	if err != nil {
		return err
	}
	stats, err := importer.Import(ctx, in)
	if err != nil {
		// Never leave a partial seed behind.
		if _, flushErr := store.Flush(context.WithoutCancel(ctx)); flushErr != nil {
			logger.Error("failed to clean up after seed failure", zap.Error(flushErr))
		}
		return err
	}

	logger.Info("store seeded",
		zap.String("prefix", cfg.RedisPrefix),
		zap.Int("forward_records", stats.Forward),
		zap.Int("reverse_records", stats.Reverse),
		zap.Uint64("checkpoint", stats.Checkpoint),
		zap.Bool("has_checkpoint", stats.HasCheckpoint),
	)
	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	return f, nil
}
