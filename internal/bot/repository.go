package bot

import (
	"context"
	"iter"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
)

// Catalog defines the catalog operations required by the Bot.
type Catalog interface {
	Ingest(ctx context.Context, event domain.VideoEvent) (domain.IngestResult, error)
	ListAll(ctx context.Context, userID int64) ([]domain.VideoRecord, error)
	Report(ctx context.Context, userID int64) (iter.Seq[domain.ProgressEvent], error)
}
