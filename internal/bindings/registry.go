// Package bindings keeps each user's storage target and channel binding in
// process memory. Bindings are lost on restart.
package bindings

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	apperrors "github.com/lueurxax/video-index-bot/internal/core/errors"
	"github.com/lueurxax/video-index-bot/internal/core/ports"
	"github.com/lueurxax/video-index-bot/internal/platform/observability"
)

// Registry maps user identities to bindings. All mutations replace the
// binding under a single lock, so concurrent commands for one user never lose updates.
type Registry struct {
	mu       sync.RWMutex
	bindings map[int64]domain.UserBinding
}

var _ ports.BindingStore = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[int64]domain.UserBinding),
	}
}

// SetStorageTarget binds the user to a storage target, keeping an existing channel.
func (r *Registry) SetStorageTarget(userID int64, target domain.StorageTarget) error {
	target = domain.StorageTarget{
		Endpoint:   strings.TrimSpace(target.Endpoint),
		Database:   strings.TrimSpace(target.Database),
		Collection: strings.TrimSpace(target.Collection),
	}

	if err := target.Validate(); err != nil {
		return fmt.Errorf("set storage target: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	binding := r.bindings[userID]
	binding.UserID = userID
	binding.Storage = target
	r.bindings[userID] = binding

	observability.Bindings.Set(float64(len(r.bindings)))

	return nil
}

// SetChannel attaches a channel to an existing binding.
func (r *Registry) SetChannel(userID int64, channelID string) error {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return fmt.Errorf("set channel: %w", apperrors.ErrBadUsage)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	binding, ok := r.bindings[userID]
	if !ok {
		return fmt.Errorf("set channel for user %d: %w", userID, apperrors.ErrNotConfigured)
	}

	binding.ChannelID = channelID
	r.bindings[userID] = binding

	return nil
}

// Binding returns a copy of the user's binding.
func (r *Registry) Binding(userID int64) (domain.UserBinding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	binding, ok := r.bindings[userID]
	if !ok {
		return domain.UserBinding{}, fmt.Errorf("binding for user %d: %w", userID, apperrors.ErrNotConfigured)
	}

	return binding, nil
}

// Len returns the number of configured users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.bindings)
}
