package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lueurxax/video-index-bot/internal/platform/observability"
)

// commandHandler is a function that handles a specific bot command.
type commandHandler func(ctx context.Context, msg *tgbotapi.Message, args []string)

type command struct {
	name    string // canonical name, used as the metric label
	handler commandHandler
}

// commandRegistry holds the mapping of command names and aliases to their handlers.
type commandRegistry struct {
	commands map[string]command
}

// newCommandRegistry creates a new command registry for the bot.
func (b *Bot) newCommandRegistry() *commandRegistry {
	r := &commandRegistry{commands: make(map[string]command)}

	r.register(b.handleStart, CmdStart, CmdHelp)
	r.register(b.handleSetStorage, CmdSetStorage, CmdSetStorageAlt)
	r.register(b.handleSetChannel, CmdSetChannel)
	r.register(b.handleListCatalog, CmdListCatalog, CmdListCatalogAlt)
	r.register(b.handleShowProgress, CmdShowProgress, CmdShowProgressAlt)
	r.register(b.handleBinding, CmdBinding)
	r.register(b.handleCancel, CmdCancel)

	return r
}

// register binds handler to name and every alias.
func (r *commandRegistry) register(handler commandHandler, name string, aliases ...string) {
	cmd := command{name: name, handler: handler}

	r.commands[name] = cmd
	for _, alias := range aliases {
		r.commands[alias] = cmd
	}
}

// route handles the command routing for a message.
func (r *commandRegistry) route(ctx context.Context, msg *tgbotapi.Message) bool {
	cmd, ok := r.commands[strings.ToLower(msg.Command())]
	if !ok {
		observability.CommandsTotal.WithLabelValues(cmdUnknown).Inc()
		return false
	}

	observability.CommandsTotal.WithLabelValues(cmd.name).Inc()
	cmd.handler(ctx, msg, commandArgs(msg))

	return true
}

// commandArgs splits the text after the command on whitespace.
func commandArgs(msg *tgbotapi.Message) []string {
	return strings.Fields(msg.CommandArguments())
}
