package mocks

import (
	"context"
	"sync"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	"github.com/lueurxax/video-index-bot/internal/core/ports"
	"github.com/lueurxax/video-index-bot/internal/storage/memstore"
)

// GatewayOpener is a thread-safe implementation of ports.GatewayOpener backed by memstore.
type GatewayOpener struct {
	Store *memstore.Store

	mu     sync.Mutex
	opened int
	closed int

	// OpenFn allows overriding Open behavior.
	OpenFn func(ctx context.Context, target domain.StorageTarget) (ports.StorageGateway, error)

	// FindByStableIDFn allows overriding FindByStableID on every opened gateway.
	FindByStableIDFn func(ctx context.Context, stableID string) (domain.VideoRecord, bool, error)

	// InsertFn allows overriding Insert on every opened gateway.
	InsertFn func(ctx context.Context, record domain.VideoRecord) error

	// FindAllFn allows overriding FindAll on every opened gateway.
	FindAllFn func(ctx context.Context) ([]domain.VideoRecord, error)

	// CountFn allows overriding Count on every opened gateway.
	CountFn func(ctx context.Context) (int64, error)
}

var _ ports.GatewayOpener = (*GatewayOpener)(nil)

// NewGatewayOpener creates a mock opener with an empty store.
func NewGatewayOpener() *GatewayOpener {
	return &GatewayOpener{Store: memstore.New()}
}

// Open opens a counting gateway over the in-memory store.
func (o *GatewayOpener) Open(ctx context.Context, target domain.StorageTarget) (ports.StorageGateway, error) {
	if o.OpenFn != nil {
		return o.OpenFn(ctx, target)
	}

	inner, err := o.Store.Open(ctx, target)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.opened++
	o.mu.Unlock()

	return &gateway{inner: inner, opener: o}, nil
}

// Opened returns how many gateways were opened.
func (o *GatewayOpener) Opened() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.opened
}

// Closed returns how many gateways were closed.
func (o *GatewayOpener) Closed() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.closed
}

// Records returns the stored records of a target.
func (o *GatewayOpener) Records(target domain.StorageTarget) []domain.VideoRecord {
	return o.Store.Records(target)
}

type gateway struct {
	inner  ports.StorageGateway
	opener *GatewayOpener
}

func (g *gateway) FindByStableID(ctx context.Context, stableID string) (domain.VideoRecord, bool, error) {
	if g.opener.FindByStableIDFn != nil {
		return g.opener.FindByStableIDFn(ctx, stableID)
	}

	return g.inner.FindByStableID(ctx, stableID)
}

func (g *gateway) Insert(ctx context.Context, record domain.VideoRecord) error {
	if g.opener.InsertFn != nil {
		return g.opener.InsertFn(ctx, record)
	}

	return g.inner.Insert(ctx, record)
}

func (g *gateway) FindAll(ctx context.Context) ([]domain.VideoRecord, error) {
	if g.opener.FindAllFn != nil {
		return g.opener.FindAllFn(ctx)
	}

	return g.inner.FindAll(ctx)
}

func (g *gateway) Count(ctx context.Context) (int64, error) {
	if g.opener.CountFn != nil {
		return g.opener.CountFn(ctx)
	}

	return g.inner.Count(ctx)
}

func (g *gateway) Close(ctx context.Context) error {
	g.opener.mu.Lock()
	g.opener.closed++
	g.opener.mu.Unlock()

	return g.inner.Close(ctx)
}
