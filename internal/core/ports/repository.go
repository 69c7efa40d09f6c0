// Package ports provides domain-centric interfaces for external dependencies.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern,
// allowing business logic to remain independent of infrastructure concerns.
package ports

import (
	"context"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
)

// StorageGateway is an open handle on one user's document collection.
// Every method that reaches the store may fail; callers own the handle
// and must Close it on every exit path.
type StorageGateway interface {
	// FindByStableID looks up a record by its dedup key. The bool is false when absent.
	FindByStableID(ctx context.Context, stableID string) (domain.VideoRecord, bool, error)

	// Insert persists a new record. Backends that detect a duplicate key at the
	// store level return an error wrapping errors.ErrDuplicateRecord.
	Insert(ctx context.Context, record domain.VideoRecord) error

	// FindAll returns every record in storage-defined order.
	FindAll(ctx context.Context) ([]domain.VideoRecord, error)

	// Count returns the number of records in the collection.
	Count(ctx context.Context) (int64, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// GatewayOpener opens a StorageGateway for a storage target.
type GatewayOpener interface {
	Open(ctx context.Context, target domain.StorageTarget) (StorageGateway, error)
}

// BindingReader resolves a user's binding. It returns errors.ErrNotConfigured
// when the user has not set a storage target.
type BindingReader interface {
	Binding(userID int64) (domain.UserBinding, error)
}

// BindingStore adds the mutating operations of the binding registry.
type BindingStore interface {
	BindingReader
	SetStorageTarget(userID int64, target domain.StorageTarget) error
	SetChannel(userID int64, channelID string) error
}
