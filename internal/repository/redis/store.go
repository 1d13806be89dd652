// Package redis implements the record and checkpoint stores on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation, namespace string, err error, started time.Time)
	}
)

const (
	keyScope         = "dweb"
	forwardNamespace = "addr"
	reverseNamespace = "reverse"
	checkpointName   = "lastKnownBlock"

	scanCount = 500
)

// Store keeps forward and reverse records plus the ingestion checkpoint
// under a single key prefix.
type Store struct {
	client  *redis.Client
	scope   string
	metrics Metrics

	forward *Namespace[model.ForwardRecord]
	reverse *Namespace[model.ReverseRecord]
}

// NewClient connects to the Redis server at rawURL and verifies the connection.
func NewClient(ctx context.Context, rawURL string, logger *zap.Logger) (*redis.Client, error) {
	if rawURL == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	logger.Info("connected to redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return client, nil
}

// NewStore builds a Store keeping every key under "<prefix>:dweb".
func NewStore(client *redis.Client, prefix string, metrics Metrics) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if prefix == "" {
		return nil, errors.New("redis key prefix is required")
	}
	if metrics == nil {
		return nil, errors.New("redis store metrics is required")
	}
	scope := prefix + ":" + keyScope
	return &Store{
		client:  client,
		scope:   scope,
		metrics: metrics,
		forward: newNamespace[model.ForwardRecord](client, scope, forwardNamespace, metrics),
		reverse: newNamespace[model.ReverseRecord](client, scope, reverseNamespace, metrics),
	}, nil
}

// GetForward returns the forward record stored under node.
func (s *Store) GetForward(ctx context.Context, node string) (model.ForwardRecord, bool, error) {
	return s.forward.Get(ctx, node)
}

// SetForward stores a single forward record.
func (s *Store) SetForward(ctx context.Context, node string, record model.ForwardRecord) error {
	return s.forward.Set(ctx, node, record)
}

// SetForwardRecords stores forward records atomically.
func (s *Store) SetForwardRecords(ctx context.Context, entries []model.Entry[model.ForwardRecord]) error {
	return s.forward.SetMultiple(ctx, entries)
}

// GetReverse returns the reverse record stored under node.
func (s *Store) GetReverse(ctx context.Context, node string) (model.ReverseRecord, bool, error) {
	return s.reverse.Get(ctx, node)
}

// SetReverse stores a single reverse record.
func (s *Store) SetReverse(ctx context.Context, node string, record model.ReverseRecord) error {
	return s.reverse.Set(ctx, node, record)
}

// SetReverseRecords stores reverse records atomically.
func (s *Store) SetReverseRecords(ctx context.Context, entries []model.Entry[model.ReverseRecord]) error {
	return s.reverse.SetMultiple(ctx, entries)
}

// ScanForward calls fn for every forward record.
func (s *Store) ScanForward(ctx context.Context, fn func(model.Entry[model.ForwardRecord]) error) error {
	return s.forward.Scan(ctx, fn)
}

// ScanReverse calls fn for every reverse record.
func (s *Store) ScanReverse(ctx context.Context, fn func(model.Entry[model.ReverseRecord]) error) error {
	return s.reverse.Scan(ctx, fn)
}

// Checkpoint returns the last fully processed block height.
func (s *Store) Checkpoint(ctx context.Context) (height uint64, found bool, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("get_checkpoint", checkpointName, err, started)
	}()

	raw, err := s.client.Get(ctx, s.checkpointKey()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get checkpoint: %w", err)
	}
	height, err = strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse checkpoint %q: %w", raw, err)
	}
	return height, true, nil
}

// SetCheckpoint persists the last fully processed block height.
func (s *Store) SetCheckpoint(ctx context.Context, height uint64) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("set_checkpoint", checkpointName, err, started)
	}()

	if err = s.client.Set(ctx, s.checkpointKey(), strconv.FormatUint(height, 10), 0).Err(); err != nil {
		return fmt.Errorf("set checkpoint: %w", err)
	}
	return nil
}

// Flush removes every record namespace and the checkpoint. It returns the
// number of deleted keys.
func (s *Store) Flush(ctx context.Context) (deleted int64, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("flush", "all", err, started)
	}()

	iter := s.client.Scan(ctx, 0, s.scope+":*", scanCount).Iterator()
	keys := make([]string, 0, scanCount)
	drain := func() error {
		if len(keys) == 0 {
			return nil
		}
		n, err := s.client.Del(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("delete keys: %w", err)
		}
		deleted += n
		keys = keys[:0]
		return nil
	}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= scanCount {
			if err = drain(); err != nil {
				return deleted, err
			}
		}
	}
	if err = iter.Err(); err != nil {
		return deleted, fmt.Errorf("scan keys: %w", err)
	}
	if err = drain(); err != nil {
		return deleted, err
	}
	return deleted, nil
}

// Ping checks that Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) checkpointKey() string {
	return s.scope + ":" + checkpointName
}
