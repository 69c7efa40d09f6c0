package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/lueurxax/video-index-bot/internal/core/ports"
	"github.com/lueurxax/video-index-bot/internal/platform/config"
	"github.com/lueurxax/video-index-bot/internal/platform/worker"
)

var errUpdatesClosed = errors.New("telegram updates channel closed")

// sender is the part of the Bot API used for replies.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	cfg      *config.Config
	bindings ports.BindingStore
	catalog  Catalog
	api      *tgbotapi.BotAPI
	sender   sender
	limiter  *rate.Limiter
	commands *commandRegistry
	progress *worker.Tasks[int64]
	inflight sync.WaitGroup
	ready    atomic.Bool
	logger   *zerolog.Logger
}

func New(cfg *config.Config, bindings ports.BindingStore, catalog Catalog, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("creating bot API: %w", err)
	}

	b := newBot(cfg, bindings, catalog, api, logger)
	b.api = api

	return b, nil
}

func newBot(cfg *config.Config, bindings ports.BindingStore, catalog Catalog, s sender, logger *zerolog.Logger) *Bot {
	b := &Bot{
		cfg:      cfg,
		bindings: bindings,
		catalog:  catalog,
		sender:   s,
		limiter:  rate.NewLimiter(rate.Limit(cfg.ReplyRPS), cfg.ReplyBurst),
		progress: worker.NewTasks[int64](logger),
		logger:   logger,
	}
	b.commands = b.newCommandRegistry()

	return b
}

// Ready reports whether the update loop is running.
func (b *Bot) Ready() bool {
	return b.ready.Load()
}

// Run long-polls Telegram until ctx is canceled. Each update is handled in its
// own goroutine so a slow store for one user does not hold up the others.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)

	b.ready.Store(true)
	b.logger.Info().Str(LogFieldUsername, b.api.Self.UserName).Msg("Bot started")

	defer func() {
		b.ready.Store(false)
		b.api.StopReceivingUpdates()
		b.inflight.Wait()
		b.progress.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("bot run context canceled: %w", ctx.Err())
		case update, ok := <-updates:
			if !ok {
				return errUpdatesClosed
			}

			b.inflight.Add(1)

			go func() {
				defer b.inflight.Done()
				defer worker.RecoverPanic(b.logger, "handle update")

				b.handleUpdate(ctx, update)
			}()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	if msg.From == nil {
		b.reply(ctx, msg, msgUserNotIdentified)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	b.handleVideo(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	b.logger.Info().Str(LogFieldCommand, msg.Command()).Int64(LogFieldUserID, msg.From.ID).Msg("Handling command")

	if !b.commands.route(ctx, msg) {
		b.logger.Debug().Str(LogFieldCommand, msg.Command()).Msg("Unknown command")
		b.reply(ctx, msg, msgUnknownCommand)
	}
}

func (b *Bot) reply(ctx context.Context, msg *tgbotapi.Message, text string) {
	b.sendMessage(ctx, msg.Chat.ID, text)
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) {
	b.sendParts(ctx, chatID, SplitMessage(text, MaxMessageSize))
}

// sendParts sends each part as its own message, throttled by the reply limiter.
func (b *Bot) sendParts(ctx context.Context, chatID int64, parts []string) {
	for _, part := range parts {
		if err := b.limiter.Wait(ctx); err != nil {
			b.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("reply dropped")
			return
		}

		reply := tgbotapi.NewMessage(chatID, part)
		reply.DisableWebPagePreview = true

		if _, err := b.sender.Send(reply); err != nil {
			b.logger.Error().Err(err).Msg("failed to send reply")
		}
	}
}
