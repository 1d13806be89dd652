package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

// Namespace stores JSON records of type T under "<scope>:<name>:<key>".
type Namespace[T any] struct {
	client  *redis.Client
	name    string
	prefix  string
	metrics Metrics
}

func newNamespace[T any](client *redis.Client, scope, name string, metrics Metrics) *Namespace[T] {
	return &Namespace[T]{
		client:  client,
		name:    name,
		prefix:  scope + ":" + name + ":",
		metrics: metrics,
	}
}

// Get returns the record stored under key. found is false when the key is absent.
func (n *Namespace[T]) Get(ctx context.Context, key string) (record T, found bool, err error) {
	started := time.Now()
	defer func() {
		n.metrics.Observe("get", n.name, err, started)
	}()

	data, err := n.client.Get(ctx, n.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return record, false, nil
	}
	if err != nil {
		return record, false, fmt.Errorf("get %s record: %w", n.name, err)
	}
	if err = json.Unmarshal(data, &record); err != nil {
		return record, false, fmt.Errorf("decode %s record %s: %w", n.name, key, err)
	}
	return record, true, nil
}

// Set stores a single record under key.
func (n *Namespace[T]) Set(ctx context.Context, key string, record T) (err error) {
	started := time.Now()
	defer func() {
		n.metrics.Observe("set", n.name, err, started)
	}()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s record %s: %w", n.name, key, err)
	}
	if err = n.client.Set(ctx, n.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s record: %w", n.name, err)
	}
	return nil
}

// SetMultiple stores all entries in one MULTI/EXEC transaction. Entries are
// applied in order, so a later entry for the same key wins.
func (n *Namespace[T]) SetMultiple(ctx context.Context, entries []model.Entry[T]) (err error) {
	if len(entries) == 0 {
		return nil
	}
	started := time.Now()
	defer func() {
		n.metrics.Observe("set_multiple", n.name, err, started)
	}()

	payloads := make([][]byte, len(entries))
	for i, e := range entries {
		if payloads[i], err = json.Marshal(e.Record); err != nil {
			return fmt.Errorf("encode %s record %s: %w", n.name, e.Key, err)
		}
	}

	_, err = n.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, e := range entries {
			pipe.Set(ctx, n.prefix+e.Key, payloads[i], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %d %s records: %w", len(entries), n.name, err)
	}
	return nil
}

// Scan calls fn for every record in the namespace. Keys may be visited more
// than once if the keyspace changes during the scan.
func (n *Namespace[T]) Scan(ctx context.Context, fn func(model.Entry[T]) error) (err error) {
	started := time.Now()
	defer func() {
		n.metrics.Observe("scan", n.name, err, started)
	}()

	iter := n.client.Scan(ctx, 0, n.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, getErr := n.client.Get(ctx, key).Bytes()
		if errors.Is(getErr, redis.Nil) {
			continue
		}
		if getErr != nil {
			return fmt.Errorf("get %s record: %w", n.name, getErr)
		}
		var record T
		if err = json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("decode %s record %s: %w", n.name, key, err)
		}
		if err = fn(model.Entry[T]{Key: strings.TrimPrefix(key, n.prefix), Record: record}); err != nil {
			return err
		}
	}
	if err = iter.Err(); err != nil {
		return fmt.Errorf("scan %s records: %w", n.name, err)
	}
	return nil
}
