package indexing

import (
	"context"
	"fmt"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	"github.com/lueurxax/video-index-bot/internal/core/ports"
)

// ListAll returns the user's whole catalog without pagination. An empty,
// non-nil slice with a nil error means the catalog exists but has no records.
func (s *Service) ListAll(ctx context.Context, userID int64) ([]domain.VideoRecord, error) {
	binding, err := s.bindings.Binding(userID)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	var records []domain.VideoRecord

	err = s.withGateway(ctx, binding, opListAll, func(ctx context.Context, gw ports.StorageGateway) error {
		var err error

		records, err = gw.FindAll(ctx)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	if records == nil {
		records = []domain.VideoRecord{}
	}

	return records, nil
}
