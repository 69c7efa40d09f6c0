package bot

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	"github.com/lueurxax/video-index-bot/internal/platform/observability"
)

// handleShowProgress starts the user's progress report in the background,
// replacing any report already running for that user.
func (b *Bot) handleShowProgress(ctx context.Context, msg *tgbotapi.Message, _ []string) {
	b.progress.Start(ctx, msg.From.ID, "progress report", func(ctx context.Context) {
		b.runProgress(ctx, msg)
	})
}

func (b *Bot) handleCancel(ctx context.Context, msg *tgbotapi.Message, _ []string) {
	if !b.progress.Cancel(msg.From.ID) {
		b.reply(ctx, msg, msgNothingToCancel)
	}
}

// runProgress relays the progress sequence as one message per update. Closing
// messages are sent even when ctx is already canceled.
func (b *Bot) runProgress(ctx context.Context, msg *tgbotapi.Message) {
	observability.ProgressActive.Inc()
	defer observability.ProgressActive.Dec()

	final := context.WithoutCancel(ctx)

	seq, err := b.catalog.Report(ctx, msg.From.ID)
	if errors.Is(err, context.Canceled) {
		b.reply(final, msg, msgProgressCancelled)
		return
	}

	if err != nil {
		b.replyError(final, msg, err)
		return
	}

	limit := b.cfg.ProgressMaxUpdates
	sent := 0

	for event := range seq {
		switch event.Kind {
		case domain.ProgressEmpty:
			b.reply(final, msg, msgNothingToIndex)
		case domain.ProgressUpdateKind:
			if limit > 0 && sent >= limit {
				b.reply(final, msg, formatCappedCompletion(sent, event.Update.Total))
				return
			}

			b.reply(ctx, msg, formatProgress(event.Update))
			sent++
		case domain.ProgressComplete:
			b.reply(final, msg, msgIndexingComplete)
		case domain.ProgressCancelled:
			b.reply(final, msg, msgProgressCancelled)
		}
	}
}
