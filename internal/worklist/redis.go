// Package worklist keeps the derived moderation views in Redis:
// pending-entity worklists as sets, derived counters as hashes. Both
// are recomputable artifacts — the recount job rebuilds them from the
// entity tables, so a missed delta drifts at most until the next
// rebuild.
package worklist

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KishoreKammela/JobBoardly-sub000/internal/moderation"
)

// Store applies worklist and counter deltas to Redis.
type Store struct {
	rdb *redis.Client
}

// NewStore returns a configured Store.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// SetKey returns the Redis set key backing a named worklist.
func SetKey(worklist string) string { return "worklist:" + worklist }

// HashKey returns the Redis hash key backing a named counter, with one
// field per scope.
func HashKey(counter string) string { return "counters:" + counter }

// Apply executes worklist membership deltas. Set semantics make the
// deltas idempotent: re-adding or re-removing a member is a no-op.
func (s *Store) Apply(ctx context.Context, deltas []moderation.WorklistDelta) error {
	for _, d := range deltas {
		var err error
		switch d.Op {
		case moderation.WorklistAdd:
			err = s.rdb.SAdd(ctx, SetKey(d.Worklist), d.EntityID).Err()
		case moderation.WorklistRemove:
			err = s.rdb.SRem(ctx, SetKey(d.Worklist), d.EntityID).Err()
		default:
			err = fmt.Errorf("unknown worklist op %q", d.Op)
		}
		if err != nil {
			return fmt.Errorf("worklist %s %s: %w", d.Op, d.Worklist, err)
		}
	}
	return nil
}

// Adjust applies counter deltas.
func (s *Store) Adjust(ctx context.Context, deltas []moderation.CounterDelta) error {
	for _, d := range deltas {
		if d.Scope == "" {
			continue
		}
		if err := s.rdb.HIncrBy(ctx, HashKey(d.Counter), d.Scope, int64(d.Delta)).Err(); err != nil {
			return fmt.Errorf("counter %s/%s: %w", d.Counter, d.Scope, err)
		}
	}
	return nil
}

// Rebuild replaces a worklist and its companion counter hash with
// freshly computed contents. Used by the recount job.
func (s *Store) Rebuild(ctx context.Context, worklist string, members []string, counter string, counts map[string]int64) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, SetKey(worklist))
	if len(members) > 0 {
		ids := make([]any, len(members))
		for i, m := range members {
			ids[i] = m
		}
		pipe.SAdd(ctx, SetKey(worklist), ids...)
	}
	if counter != "" {
		pipe.Del(ctx, HashKey(counter))
		for scope, n := range counts {
			pipe.HSet(ctx, HashKey(counter), scope, n)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rebuild %s: %w", worklist, err)
	}
	return nil
}
