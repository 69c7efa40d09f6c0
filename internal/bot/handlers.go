package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	apperrors "github.com/lueurxax/video-index-bot/internal/core/errors"
	"github.com/lueurxax/video-index-bot/internal/platform/observability"
)

const (
	setStorageArgs = 3
	setChannelArgs = 1
)

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message, _ []string) {
	b.reply(ctx, msg, helpMessage())
}

func (b *Bot) handleSetStorage(ctx context.Context, msg *tgbotapi.Message, args []string) {
	if len(args) != setStorageArgs {
		b.reply(ctx, msg, msgSetStorageUsage)
		return
	}

	target := domain.StorageTarget{Endpoint: args[0], Database: args[1], Collection: args[2]}

	if err := b.bindings.SetStorageTarget(msg.From.ID, target); err != nil {
		b.logger.Warn().Err(err).Int64(LogFieldUserID, msg.From.ID).Msg("rejected storage target")
		b.reply(ctx, msg, msgSetStorageUsage)

		return
	}

	b.logger.Info().Int64(LogFieldUserID, msg.From.ID).Str(logFieldTarget, target.String()).Msg("storage target bound")
	b.reply(ctx, msg, msgStorageSaved)
}

func (b *Bot) handleSetChannel(ctx context.Context, msg *tgbotapi.Message, args []string) {
	if len(args) != setChannelArgs {
		b.reply(ctx, msg, msgSetChannelUsage)
		return
	}

	err := b.bindings.SetChannel(msg.From.ID, args[0])

	switch {
	case err == nil:
		b.reply(ctx, msg, msgChannelSaved)
	case errors.Is(err, apperrors.ErrNotConfigured):
		b.reply(ctx, msg, msgSetStorageFirst)
	case errors.Is(err, apperrors.ErrBadUsage):
		b.reply(ctx, msg, msgSetChannelUsage)
	default:
		b.replyError(ctx, msg, err)
	}
}

func (b *Bot) handleBinding(ctx context.Context, msg *tgbotapi.Message, _ []string) {
	binding, err := b.bindings.Binding(msg.From.ID)
	if err != nil {
		b.replyError(ctx, msg, err)
		return
	}

	b.reply(ctx, msg, formatBinding(binding))
}

func (b *Bot) handleListCatalog(ctx context.Context, msg *tgbotapi.Message, _ []string) {
	records, err := b.catalog.ListAll(ctx, msg.From.ID)
	if err != nil {
		b.replyError(ctx, msg, err)
		return
	}

	if len(records) == 0 {
		b.reply(ctx, msg, msgNoVideos)
		return
	}

	b.sendParts(ctx, msg.Chat.ID, formatCatalog(records, MaxMessageSize))
}

func (b *Bot) handleVideo(ctx context.Context, msg *tgbotapi.Message) {
	event := domain.VideoEvent{UserID: msg.From.ID, Video: videoFromMessage(msg)}

	result, err := b.catalog.Ingest(ctx, event)
	if err != nil {
		b.replyError(ctx, msg, err)
		return
	}

	observability.CommandsTotal.WithLabelValues(cmdVideo).Inc()

	switch result.Outcome {
	case domain.OutcomeIndexed:
		b.reply(ctx, msg, fmt.Sprintf(msgIndexedFmt, result.ExternalID))
	case domain.OutcomeDuplicateSkipped:
		b.reply(ctx, msg, fmt.Sprintf(msgDuplicateFmt, orDefault(result.DisplayName, unnamedVideo)))
	}
}

// replyError turns a service error into the reply the user sees. A canceled
// request gets no reply.
func (b *Bot) replyError(ctx context.Context, msg *tgbotapi.Message, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		b.logger.Debug().Err(err).Int64(LogFieldUserID, msg.From.ID).Msg("request canceled")
	case errors.Is(err, apperrors.ErrNotConfigured):
		b.reply(ctx, msg, msgNotConfigured)
	case errors.Is(err, apperrors.ErrNoVideoPayload):
		b.reply(ctx, msg, msgSendVideo)
	case errors.Is(err, apperrors.ErrUnsupportedEndpoint):
		b.reply(ctx, msg, msgUnsupportedEndpoint)
	case errors.Is(err, apperrors.ErrStorageFailure):
		b.reply(ctx, msg, msgStorageFailure)
	default:
		b.logger.Error().Err(err).Int64(LogFieldUserID, msg.From.ID).Msg("request failed")
		b.reply(ctx, msg, msgInternalError)
	}
}

// videoFromMessage extracts the video payload. Videos sent uncompressed
// arrive as documents and are accepted when their MIME type is video/*.
func videoFromMessage(msg *tgbotapi.Message) *domain.VideoFile {
	if v := msg.Video; v != nil {
		return &domain.VideoFile{
			ExternalID:  v.FileID,
			StableID:    v.FileUniqueID,
			DisplayName: v.FileName,
			MimeType:    v.MimeType,
			SizeBytes:   int64(v.FileSize),
		}
	}

	if d := msg.Document; d != nil && strings.HasPrefix(strings.ToLower(d.MimeType), "video/") {
		return &domain.VideoFile{
			ExternalID:  d.FileID,
			StableID:    d.FileUniqueID,
			DisplayName: d.FileName,
			MimeType:    d.MimeType,
			SizeBytes:   int64(d.FileSize),
		}
	}

	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
