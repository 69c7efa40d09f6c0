// Package storage picks the document-store backend for a storage target by
// its endpoint scheme.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	apperrors "github.com/lueurxax/video-index-bot/internal/core/errors"
	"github.com/lueurxax/video-index-bot/internal/core/ports"
	"github.com/lueurxax/video-index-bot/internal/storage/memstore"
	"github.com/lueurxax/video-index-bot/internal/storage/mongostore"
	"github.com/lueurxax/video-index-bot/internal/storage/pgstore"
)

// Log field names.
const (
	logFieldBackend = "backend"
	logFieldTarget  = "target"
)

// Opener routes Open calls to the backend registered for the endpoint scheme.
type Opener struct {
	backends map[string]ports.GatewayOpener
	logger   *zerolog.Logger
}

var _ ports.GatewayOpener = (*Opener)(nil)

// Options configures the default backends.
type Options struct {
	// MongoSelectionTimeout bounds server selection for MongoDB endpoints.
	MongoSelectionTimeout time.Duration
}

// NewOpener registers the MongoDB, Postgres and in-memory backends.
func NewOpener(opts Options, logger *zerolog.Logger) *Opener {
	o := &Opener{
		backends: make(map[string]ports.GatewayOpener),
		logger:   logger,
	}

	mongo := mongostore.NewOpener(opts.MongoSelectionTimeout)
	for _, scheme := range mongostore.Schemes {
		o.Register(scheme, mongo)
	}

	pg := pgstore.NewOpener(logger)
	for _, scheme := range pgstore.Schemes {
		o.Register(scheme, pg)
	}

	o.Register(memstore.Scheme, memstore.New())

	return o
}

// Register binds a scheme to a backend, replacing any previous one.
func (o *Opener) Register(scheme string, backend ports.GatewayOpener) {
	o.backends[strings.ToLower(scheme)] = backend
}

// Schemes returns the registered schemes, sorted.
func (o *Opener) Schemes() []string {
	out := make([]string, 0, len(o.backends))
	for scheme := range o.backends {
		out = append(out, scheme)
	}

	sort.Strings(out)

	return out
}

// Open validates the target and delegates to its backend.
func (o *Opener) Open(ctx context.Context, target domain.StorageTarget) (ports.StorageGateway, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	scheme := target.Scheme()

	backend, ok := o.backends[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", apperrors.ErrUnsupportedEndpoint, scheme, strings.Join(o.Schemes(), ", "))
	}

	o.logger.Debug().Str(logFieldBackend, scheme).Str(logFieldTarget, target.String()).Msg("opening storage gateway")

	gw, err := backend.Open(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", scheme, err)
	}

	return gw, nil
}
