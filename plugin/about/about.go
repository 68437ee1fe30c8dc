package about

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Brawl345/doggobot/logger"
	"github.com/Brawl345/doggobot/plugin"
	"github.com/Brawl345/doggobot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
)

var log = logger.New("about")

type Plugin struct {
	text string
}

func New() *Plugin {
	var sb strings.Builder
	sb.WriteString("<b>Doggobot</b>\n")
	sb.WriteString("Dog pictures and the Euro rate, right in your chat.\n\n")

	versionInfo, err := utils.ReadVersionInfo()
	if err != nil {
		log.Err(err).Msg("Failed to read version info")
	} else {
		if versionInfo.Revision != "" {
			sb.WriteString(fmt.Sprintf("<code>%s</code>", versionInfo.Revision))
			if versionInfo.DirtyBuild {
				sb.WriteString(" (dirty)")
			}
			if !versionInfo.LastCommit.IsZero() {
				sb.WriteString(fmt.Sprintf("\n<i>Committed on %s</i>", versionInfo.LastCommit.Format("2006-01-02 15:04:05")))
			}
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Built with %s (%s/%s)", versionInfo.GoVersion, versionInfo.GoOS, versionInfo.GoArch))
	}

	return &Plugin{text: sb.String()}
}

func (p *Plugin) Name() string {
	return "about"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return []gotgbot.BotCommand{
		{
			Command:     "about",
			Description: "About this bot",
		},
	}
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/(?:about|start)(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onAbout,
		},
	}
}

func (p *Plugin) onAbout(b *gotgbot.Bot, c plugin.Context) error {
	_, err := c.EffectiveMessage.Reply(b, p.text, utils.DefaultSendOptions())
	return err
}
