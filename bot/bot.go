package bot

import (
	"time"

	"github.com/Brawl345/doggobot/logger"
	"github.com/Brawl345/doggobot/plugin"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

var log = logger.New("bot")

func New(token string) (*gotgbot.Bot, error) {
	return gotgbot.NewBot(token, &gotgbot.BotOpts{
		BotClient: &gotgbot.BaseBotClient{
			DefaultRequestOpts: &gotgbot.RequestOpts{
				Timeout: 30 * time.Second,
			},
		},
	})
}

// RegisterCommands publishes the commands of all plugins in the menu button.
func RegisterCommands(b *gotgbot.Bot, plugins []plugin.Plugin) error {
	var commands []gotgbot.BotCommand
	for _, plg := range plugins {
		commands = append(commands, plg.Commands()...)
	}

	_, err := b.SetMyCommands(commands, nil)
	return err
}

// Run starts long polling and blocks until the process is stopped.
func Run(b *gotgbot.Bot, processor *Processor) error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Processor: processor,
		UnhandledErrFunc: func(err error) {
			log.Err(err).Msg("Unhandled dispatcher error")
		},
	})

	updater := ext.NewUpdater(dispatcher, &ext.UpdaterOpts{
		UnhandledErrFunc: func(err error) {
			log.Err(err).Msg("Unhandled updater error")
		},
	})

	err := updater.StartPolling(b, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			AllowedUpdates: []string{"message", "edited_message", "callback_query", "inline_query"},
			Timeout:        10,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: 11 * time.Second,
			},
		},
	})
	if err != nil {
		return err
	}

	log.Info().Msgf("Logged in as @%s (%d)", b.User.Username, b.User.Id)

	updater.Idle()
	return nil
}
