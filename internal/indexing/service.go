// Package indexing implements the catalog workflow on top of a user's binding:
// duplicate-aware ingestion, full catalog retrieval and progress reporting.
//
// Every operation opens its own storage gateway and closes it before
// returning, on success and on every error path.
package indexing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	apperrors "github.com/lueurxax/video-index-bot/internal/core/errors"
	"github.com/lueurxax/video-index-bot/internal/core/ports"
	"github.com/lueurxax/video-index-bot/internal/platform/observability"
	"github.com/lueurxax/video-index-bot/internal/platform/worker"
)

// Log field names.
const (
	logFieldUserID   = "user_id"
	logFieldStableID = "stable_id"
	logFieldTarget   = "target"
	logFieldOp       = "op"
)

// Storage operation labels.
const (
	opIngest   = "ingest"
	opListAll  = "list_all"
	opProgress = "progress"
	opOpen     = "open"
	opClose    = "close"
)

const closeTimeout = 5 * time.Second

// Config tunes the services.
type Config struct {
	// StorageTimeout bounds one gateway session (open, work, close).
	StorageTimeout time.Duration

	// ProgressStepDelay is the pause after each progress update.
	ProgressStepDelay time.Duration
}

// Service resolves bindings and runs catalog operations against the bound store.
type Service struct {
	bindings ports.BindingReader
	opener   ports.GatewayOpener
	cfg      Config
	locks    *keyedMutex
	now      func() time.Time
	logger   *zerolog.Logger
}

// NewService creates the indexing service.
func NewService(bindings ports.BindingReader, opener ports.GatewayOpener, cfg Config, logger *zerolog.Logger) *Service {
	return &Service{
		bindings: bindings,
		opener:   opener,
		cfg:      cfg,
		locks:    newKeyedMutex(),
		now:      time.Now,
		logger:   logger,
	}
}

// withGateway runs fn against a freshly opened gateway for the binding and
// always closes it. Errors from the store come back wrapped in ErrStorageFailure,
// except when the caller canceled ctx: that error is returned as is.
func (s *Service) withGateway(ctx context.Context, binding domain.UserBinding, op string, fn func(ctx context.Context, gw ports.StorageGateway) error) error {
	start := s.now()

	defer func() {
		observability.StorageOpDuration.WithLabelValues(op).Observe(s.now().Sub(start).Seconds())
	}()

	return worker.RunWithTimeout(ctx, s.cfg.StorageTimeout, func(opCtx context.Context) error {
		gw, err := s.opener.Open(opCtx, binding.Storage)
		if err != nil {
			return s.gatewayError(ctx, binding, opOpen, err)
		}

		defer s.closeGateway(opCtx, binding, gw)

		if err := fn(opCtx, gw); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateRecord) {
				return err
			}

			return s.gatewayError(ctx, binding, op, err)
		}

		return nil
	})
}

// gatewayError classifies err from a store call made under parent. A storage
// timeout is a failure; a canceled caller is not.
func (s *Service) gatewayError(parent context.Context, binding domain.UserBinding, op string, err error) error {
	if parent.Err() != nil && errors.Is(err, context.Canceled) {
		s.logger.Debug().Err(err).Int64(logFieldUserID, binding.UserID).Str(logFieldOp, op).Msg("storage operation canceled")

		return fmt.Errorf("%s: %w", op, context.Canceled)
	}

	return s.storageFailure(binding, op, err)
}

func (s *Service) closeGateway(ctx context.Context, binding domain.UserBinding, gw ports.StorageGateway) {
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()

	if err := gw.Close(closeCtx); err != nil {
		observability.StorageErrors.WithLabelValues(opClose).Inc()
		s.logger.Warn().Err(err).Int64(logFieldUserID, binding.UserID).Str(logFieldTarget, binding.Storage.String()).Msg("failed to close storage gateway")
	}
}

func (s *Service) storageFailure(binding domain.UserBinding, op string, err error) error {
	observability.StorageErrors.WithLabelValues(op).Inc()

	s.logger.Error().Err(err).
		Int64(logFieldUserID, binding.UserID).
		Str(logFieldTarget, binding.Storage.String()).
		Str(logFieldOp, op).
		Msg("storage operation failed")

	if errors.Is(err, apperrors.ErrStorageFailure) {
		return err
	}

	return fmt.Errorf("%w: %s: %w", apperrors.ErrStorageFailure, op, err)
}
