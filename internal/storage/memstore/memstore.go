// Package memstore is a process-local document store used for memory:// endpoints
// and as the backing store of test doubles. Like the real backends it enforces no
// uniqueness on stable ids: deduplication is the indexing service's job.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	apperrors "github.com/lueurxax/video-index-bot/internal/core/errors"
	"github.com/lueurxax/video-index-bot/internal/core/ports"
)

// Scheme is the endpoint scheme served by this backend.
const Scheme = "memory"

// Store holds collections keyed by storage target. Data outlives individual
// gateways but not the process.
type Store struct {
	mu          sync.RWMutex
	collections map[domain.StorageTarget][]domain.VideoRecord
}

var _ ports.GatewayOpener = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		collections: make(map[domain.StorageTarget][]domain.VideoRecord),
	}
}

// Open returns a gateway on the target's collection. It never fails.
func (s *Store) Open(_ context.Context, target domain.StorageTarget) (ports.StorageGateway, error) {
	return &Gateway{store: s, target: target}, nil
}

// Records returns a copy of the target's collection.
func (s *Store) Records(target domain.StorageTarget) []domain.VideoRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.VideoRecord, len(s.collections[target]))
	copy(out, s.collections[target])

	return out
}

// Gateway is a handle on one collection of a Store.
type Gateway struct {
	store  *Store
	target domain.StorageTarget

	mu     sync.Mutex
	closed bool
}

func (g *Gateway) checkOpen() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return fmt.Errorf("memstore %s: %w", g.target, apperrors.ErrGatewayClosed)
	}

	return nil
}

// FindByStableID returns the first record with the given stable id.
func (g *Gateway) FindByStableID(_ context.Context, stableID string) (domain.VideoRecord, bool, error) {
	if err := g.checkOpen(); err != nil {
		return domain.VideoRecord{}, false, err
	}

	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	for _, rec := range g.store.collections[g.target] {
		if rec.StableID == stableID {
			return rec, true, nil
		}
	}

	return domain.VideoRecord{}, false, nil
}

// Insert appends the record.
func (g *Gateway) Insert(_ context.Context, record domain.VideoRecord) error {
	if err := g.checkOpen(); err != nil {
		return err
	}

	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	g.store.collections[g.target] = append(g.store.collections[g.target], record)

	return nil
}

// FindAll returns all records in insertion order.
func (g *Gateway) FindAll(_ context.Context) ([]domain.VideoRecord, error) {
	if err := g.checkOpen(); err != nil {
		return nil, err
	}

	return g.store.Records(g.target), nil
}

// Count returns the number of records.
func (g *Gateway) Count(_ context.Context) (int64, error) {
	if err := g.checkOpen(); err != nil {
		return 0, err
	}

	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	return int64(len(g.store.collections[g.target])), nil
}

// Close marks the gateway closed. Closing twice is a no-op.
func (g *Gateway) Close(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true

	return nil
}
