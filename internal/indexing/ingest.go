package indexing

import (
	"context"
	"errors"
	"fmt"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	apperrors "github.com/lueurxax/video-index-bot/internal/core/errors"
	"github.com/lueurxax/video-index-bot/internal/core/ports"
	"github.com/lueurxax/video-index-bot/internal/platform/observability"
)

// Ingest metric labels beyond the outcome names.
const (
	outcomeError    = "error"
	outcomeCanceled = "canceled"
)

// Ingest records a video in the user's collection unless a record with the
// same stable id already exists.
//
// The lookup and the insert are two separate store calls. Within this process
// they run under a per (user, stable id) lock; two processes ingesting the
// same file at once can still both insert unless the store has a unique index
// on the stable id, in which case the loser is reported as a duplicate.
func (s *Service) Ingest(ctx context.Context, event domain.VideoEvent) (domain.IngestResult, error) {
	binding, err := s.bindings.Binding(event.UserID)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("ingest: %w", err)
	}

	if event.Video == nil {
		return domain.IngestResult{}, fmt.Errorf("ingest for user %d: %w", event.UserID, apperrors.ErrNoVideoPayload)
	}

	video := *event.Video
	duplicate := domain.IngestResult{Outcome: domain.OutcomeDuplicateSkipped, DisplayName: video.DisplayName}

	unlock, err := s.locks.Lock(ctx, fmt.Sprintf("%d:%s", event.UserID, video.StableID))
	if err != nil {
		observability.IngestTotal.WithLabelValues(outcomeCanceled).Inc()
		return domain.IngestResult{}, fmt.Errorf("ingest %s: waiting for lock: %w", video.StableID, err)
	}
	defer unlock()

	var result domain.IngestResult

	err = s.withGateway(ctx, binding, opIngest, func(ctx context.Context, gw ports.StorageGateway) error {
		_, found, err := gw.FindByStableID(ctx, video.StableID)
		if err != nil {
			return err
		}

		if found {
			result = duplicate
			return nil
		}

		if err := gw.Insert(ctx, domain.NewVideoRecord(video, binding)); err != nil {
			return err
		}

		result = domain.IngestResult{Outcome: domain.OutcomeIndexed, ExternalID: video.ExternalID}

		return nil
	})

	if errors.Is(err, apperrors.ErrDuplicateRecord) {
		result, err = duplicate, nil
	}

	if err != nil {
		label := outcomeError
		if errors.Is(err, context.Canceled) {
			label = outcomeCanceled
		}

		observability.IngestTotal.WithLabelValues(label).Inc()
		return domain.IngestResult{}, fmt.Errorf("ingest %s: %w", video.StableID, err)
	}

	observability.IngestTotal.WithLabelValues(result.Outcome.String()).Inc()

	s.logger.Info().
		Int64(logFieldUserID, event.UserID).
		Str(logFieldStableID, video.StableID).
		Str("outcome", result.Outcome.String()).
		Msg("video ingested")

	return result, nil
}
