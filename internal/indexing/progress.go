package indexing

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"
	"time"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	"github.com/lueurxax/video-index-bot/internal/core/ports"
	"github.com/lueurxax/video-index-bot/internal/platform/worker"
)

// Report counts the user's catalog once and returns a lazy sequence of
// progress events over that count.
//
// The sequence is a countdown over a static total, not a measurement of work
// in flight. It yields ProgressEmpty alone for an empty catalog; otherwise one
// update per item, each followed by the configured delay, and then
// ProgressComplete. Canceling ctx during a delay ends the sequence with
// ProgressCancelled; a consumer may also stop pulling at any point. The
// sequence can be ranged over once; later ranges yield nothing.
func (s *Service) Report(ctx context.Context, userID int64) (iter.Seq[domain.ProgressEvent], error) {
	binding, err := s.bindings.Binding(userID)
	if err != nil {
		return nil, fmt.Errorf("report progress: %w", err)
	}

	var total int64

	err = s.withGateway(ctx, binding, opProgress, func(ctx context.Context, gw ports.StorageGateway) error {
		var err error

		total, err = gw.Count(ctx)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("report progress: %w", err)
	}

	return s.progressSequence(ctx, int(total)), nil
}

func (s *Service) progressSequence(ctx context.Context, total int) iter.Seq[domain.ProgressEvent] {
	var consumed atomic.Bool

	return func(yield func(domain.ProgressEvent) bool) {
		if consumed.Swap(true) {
			return
		}

		if total <= 0 {
			yield(domain.ProgressEvent{Kind: domain.ProgressEmpty})
			return
		}

		var start time.Time

		for i := 1; i <= total; i++ {
			now := s.now()
			if i == 1 {
				start = now
			}

			event := domain.ProgressEvent{
				Kind:   domain.ProgressUpdateKind,
				Update: newProgressUpdate(i, total, now.Sub(start)),
			}

			if !yield(event) {
				return
			}

			if err := worker.Wait(ctx, s.cfg.ProgressStepDelay); err != nil {
				yield(domain.ProgressEvent{Kind: domain.ProgressCancelled})
				return
			}
		}

		yield(domain.ProgressEvent{Kind: domain.ProgressComplete})
	}
}

// newProgressUpdate extrapolates the remaining time from the average time per
// item so far.
func newProgressUpdate(processed, total int, elapsed time.Duration) domain.ProgressUpdate {
	perItem := elapsed / time.Duration(processed)

	return domain.ProgressUpdate{
		Processed:          processed,
		Total:              total,
		PercentComplete:    float64(processed) * 100 / float64(total),
		EstimatedRemaining: perItem * time.Duration(total-processed),
	}
}
