// Package catalog is the persistent catalog store collaborator: paged access
// to authoritative records and batch deletion of merged duplicates. The
// engine itself never touches it; the composition roots do.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/triporama/placedex/internal/domain/place"
)

// Config holds connection parameters for the catalog store.
type Config struct {
	Addrs     []string
	Password  string
	KeyPrefix string
}

// Repo stores place records as hashes under {prefix}:place:{id}.
type Repo struct {
	client rueidis.Client
	prefix string
}

// New connects to the catalog store.
func New(cfg Config) (*Repo, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return newRepo(client, cfg.KeyPrefix), nil
}

// NewWithClient wraps an existing client (tests use rueidis/mock here).
func NewWithClient(client rueidis.Client, keyPrefix string) *Repo {
	return newRepo(client, keyPrefix)
}

func newRepo(client rueidis.Client, prefix string) *Repo {
	if prefix == "" {
		prefix = "placedex"
	}
	return &Repo{client: client, prefix: prefix}
}

// Close shuts down the client.
func (r *Repo) Close() {
	r.client.Close()
}

// Ping checks connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	cmd := r.client.B().Ping().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (r *Repo) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for catalog store: %w", ctx.Err())
		case <-ticker.C:
			if err := r.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Upsert writes one record hash.
func (r *Repo) Upsert(ctx context.Context, rec place.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record ID is required")
	}
	cmd := r.client.B().Hset().Key(r.key(rec.ID)).FieldValue()
	for k, v := range recordToFields(rec) {
		cmd = cmd.FieldValue(k, v)
	}
	if err := r.client.Do(ctx, cmd.Build()).Error(); err != nil {
		return fmt.Errorf("hset %s: %w", r.key(rec.ID), err)
	}
	return nil
}

// ListAll returns every stored record, in stable key order. A dedupe sweep
// operates on the full catalog snapshot; at current catalog scale this fits
// in memory without cursors surfacing to the caller.
func (r *Repo) ListAll(ctx context.Context) ([]place.Record, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}
	// SCAN order is arbitrary; sort for a deterministic snapshot.
	sort.Strings(keys)

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = r.client.B().Hgetall().Key(key).Build()
	}

	results := r.client.DoMulti(ctx, cmds...)
	records := make([]place.Record, 0, len(results))
	for i, res := range results {
		fields, err := res.AsStrMap()
		if err != nil {
			return nil, fmt.Errorf("hgetall %s: %w", keys[i], err)
		}
		if len(fields) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		rec := recordFromFields(fields)
		rec.ID = strings.TrimPrefix(keys[i], r.prefix+":place:")
		records = append(records, rec)
	}
	return records, nil
}

// BatchDelete removes the given record IDs in one DEL call. Callers chunk
// the merge plan to a storage-appropriate batch size before invoking this.
func (r *Repo) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	cmd := r.client.B().Del().Key(keys...).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("del %d keys: %w", len(keys), err)
	}
	return nil
}

func (r *Repo) key(id string) string {
	return r.prefix + ":place:" + id
}

func (r *Repo) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	var cursor uint64
	pattern := r.prefix + ":place:*"

	for {
		cmd := r.client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := r.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", pattern, err)
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}
