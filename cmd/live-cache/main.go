package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/dweb-live-cache/internal/ledger"
	"github.com/goodnatureofminers/dweb-live-cache/internal/logging"
	"github.com/goodnatureofminers/dweb-live-cache/internal/metrics"
	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
	"github.com/goodnatureofminers/dweb-live-cache/internal/repository/clickhouse"
	"github.com/goodnatureofminers/dweb-live-cache/internal/repository/redis"
	"github.com/goodnatureofminers/dweb-live-cache/internal/service/indexer"
	"github.com/goodnatureofminers/dweb-live-cache/internal/service/resolver"
	"github.com/goodnatureofminers/dweb-live-cache/internal/transport"
)

type config struct {
	RPCURL           string        `long:"rpc-url" env:"LIVE_CACHE_RPC_URL" description:"Ethereum JSON-RPC URL, ws(s) for head subscriptions" required:"true"`
	RPCRPS           int           `long:"rpc-rps" env:"LIVE_CACHE_RPC_RPS" description:"max RPC requests per second, 0 disables the limit" default:"50"`
	PollInterval     time.Duration `long:"poll-interval" env:"LIVE_CACHE_POLL_INTERVAL" description:"head polling interval for transports without subscriptions" default:"12s"`
	RedisURL         string        `long:"redis-url" env:"LIVE_CACHE_REDIS_URL" description:"Redis URL" default:"redis://127.0.0.1:6379/0"`
	RedisPrefix      string        `long:"redis-prefix" env:"LIVE_CACHE_REDIS_PREFIX" description:"Redis key prefix" default:"live-cache"`
	ClickhouseDSN    string        `long:"clickhouse-dsn" env:"LIVE_CACHE_CLICKHOUSE_DSN" description:"ClickHouse DSN of the optional event archive"`
	Network          model.Network `long:"network" env:"LIVE_CACHE_NETWORK" description:"network name, checked against the node chain id" required:"true"`
	StartBlock       uint64        `long:"start-block" env:"LIVE_CACHE_START_BLOCK" description:"first block to scan when no checkpoint exists, defaults to the network deployment block"`
	BatchSize        uint64        `long:"batch-size" env:"LIVE_CACHE_BATCH_SIZE" description:"max blocks per ingestion batch" default:"500"`
	BlockTimeout     time.Duration `long:"block-timeout" env:"LIVE_CACHE_BLOCK_TIMEOUT" description:"exit when no new block arrives within this window" default:"30s"`
	Registry         string        `long:"registry" env:"LIVE_CACHE_REGISTRY" description:"registry contract address" required:"true"`
	PublicResolver   string        `long:"public-resolver" env:"LIVE_CACHE_PUBLIC_RESOLVER" description:"public resolver contract address" required:"true"`
	ReverseResolver  string        `long:"reverse-resolver" env:"LIVE_CACHE_REVERSE_RESOLVER" description:"default reverse resolver contract address" required:"true"`
	Addr             string        `long:"addr" env:"LIVE_CACHE_ADDR" description:"API listen address" default:":3000"`
	MetricsAddr      string        `long:"metrics-addr" env:"LIVE_CACHE_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	BatchConcurrency int           `long:"batch-concurrency" env:"LIVE_CACHE_BATCH_CONCURRENCY" description:"items of one batch request resolved concurrently" default:"10"`
	LogLevel         string        `long:"log-level" env:"LOG_LEVEL" description:"debug, info, warn or error" default:"info"`
	LogEncoding      string        `long:"log-encoding" env:"LOG_ENCODING" description:"json or console" default:"json"`
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

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("live cache failed", zap.Error(err))
	}
	logger.Info("live cache stopped")
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	contracts, err := parseContracts(cfg)
	if err != nil {
		return err
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	defer func() {
		_ = redisClient.Close()
	}()
	store, err := redis.NewStore(redisClient, cfg.RedisPrefix, metrics.NewRedisStore())
	if err != nil {
		return err
	}

	eth, err := ledger.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return err
	}
	defer eth.Close()

	chain, err := ledger.NewClient(eth, contracts, metrics.NewRPCClient(cfg.Network), ledger.Options{
		RPS:          cfg.RPCRPS,
		PollInterval: cfg.PollInterval,
	}, logger)
	if err != nil {
		return err
	}
	detected, err := chain.DetectNetwork(ctx)
	if err != nil {
		return err
	}
	if detected != cfg.Network {
		return fmt.Errorf("rpc node serves %s, configured network is %s", detected, cfg.Network)
	}

	var (
		archive indexer.EventArchive
		history transport.EventHistory
	)
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Network, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init event archive: %w", err)
		}
		defer func() {
			_ = repo.Close()
		}()
		if err := repo.Ping(ctx); err != nil {
			return fmt.Errorf("ping event archive: %w", err)
		}
		archive = repo
		history = repo
	}

	idx, err := indexer.New(chain, store, store, archive, metrics.NewIndexer(cfg.Network), indexer.Config{
		Network:      cfg.Network,
		StartBlock:   cfg.StartBlock,
		BatchSize:    cfg.BatchSize,
		BlockTimeout: cfg.BlockTimeout,
	}, logger)
	if err != nil {
		return err
	}
	if err := idx.Start(ctx); err != nil {
		return err
	}

	blocks, err := chain.SubscribeNewBlocks(ctx)
	if err != nil {
		return err
	}

	svc, err := resolver.New(store, chain, metrics.NewResolver(), logger)
	if err != nil {
		return err
	}
	controller, err := transport.NewController(svc, idx, metrics.NewHTTP(), transport.Options{
		BatchConcurrency: cfg.BatchConcurrency,
		MetricsHandler:   promhttp.Handler(),
		History:          history,
	}, logger)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return idx.Run(ctx, blocks)
	})
	g.Go(func() error {
		return serveAPI(ctx, cfg.Addr, cors.Default().Handler(controller.NewRouter()), logger)
	})
	return g.Wait()
}

func parseContracts(cfg config) (ledger.Contracts, error) {
	parse := func(flag, value string) (common.Address, error) {
		if !common.IsHexAddress(value) {
			return common.Address{}, fmt.Errorf("--%s: %q is not an address", flag, value)
		}
		return common.HexToAddress(value), nil
	}

	var (
		c   ledger.Contracts
		err error
	)
	if c.Registry, err = parse("registry", cfg.Registry); err != nil {
		return ledger.Contracts{}, err
	}
	if c.PublicResolver, err = parse("public-resolver", cfg.PublicResolver); err != nil {
		return ledger.Contracts{}, err
	}
	if c.ReverseResolver, err = parse("reverse-resolver", cfg.ReverseResolver); err != nil {
		return ledger.Contracts{}, err
	}
	return c, c.Validate()
}

func serveAPI(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("starting http server", zap.String("addr", addr))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return ctx.Err()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
