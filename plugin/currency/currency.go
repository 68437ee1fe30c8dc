package currency

import (
	"fmt"
	"regexp"

	"github.com/Brawl345/doggobot/logger"
	"github.com/Brawl345/doggobot/plugin"
	"github.com/Brawl345/doggobot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
)

var log = logger.New("currency")

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return "currency"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return []gotgbot.BotCommand{
		{
			Command:     "euro",
			Description: "Current Euro exchange rate in US-Dollar",
		},
	}
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/euro(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: onEuro,
		},
	}
}

// onEuro replies with the current EUR/USD rate. Failures are only
// logged, the user gets no message.
func onEuro(b *gotgbot.Bot, c plugin.Context) error {
	_, _ = c.EffectiveChat.SendAction(b, gotgbot.ChatActionTyping, nil)

	response, err := getEuroRate()
	if err != nil {
		log.Err(err).
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Failed to fetch Euro rate")
		return nil
	}

	rate, ok := response.EuroRate()
	if !ok {
		log.Error().
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Euro rate missing from response")
		return nil
	}

	_, err = c.EffectiveMessage.Reply(b, formatRate(rate), utils.DefaultSendOptions())
	return err
}

func formatRate(rate float64) string {
	return fmt.Sprintf("$%v", rate)
}
