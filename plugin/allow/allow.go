package allow

import (
	"fmt"
	"regexp"

	"github.com/Brawl345/doggobot/logger"
	"github.com/Brawl345/doggobot/model"
	"github.com/Brawl345/doggobot/plugin"
	"github.com/Brawl345/doggobot/utils"
	"github.com/Brawl345/doggobot/utils/tgUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/xid"
)

var log = logger.New("allow")

type Plugin struct {
	allowService model.AllowService
}

func New(allowService model.AllowService) *Plugin {
	return &Plugin{
		allowService: allowService,
	}
}

func (p *Plugin) Name() string {
	return "allow"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return nil // Because it's a superuser plugin
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/allow(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onAllow,
			AdminOnly:   true,
			GroupOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/deny(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onDeny,
			AdminOnly:   true,
			GroupOnly:   true,
		},
	}
}

func (p *Plugin) onAllow(b *gotgbot.Bot, c plugin.Context) error {
	if tgUtils.IsReply(c.EffectiveMessage) { // Allow user
		user := c.EffectiveMessage.ReplyToMessage.From
		if user.IsBot {
			_, err := c.EffectiveMessage.Reply(b, "🤖🤖🤖", utils.DefaultSendOptions())
			return err
		}

		if p.allowService.IsUserAllowed(user) {
			return tgUtils.AddReactionWithFallback(b, c.EffectiveMessage, "👍",
				&tgUtils.ReactionFallbackOpts{
					Fallback: fmt.Sprintf("✅ <b>%s</b> can already use the bot everywhere.",
						utils.Escape(user.FirstName)),
				},
			)
		}

		err := p.allowService.AllowUser(user)
		if err != nil {
			guid := xid.New().String()
			log.Err(err).
				Str("guid", guid).
				Int64("user_id", user.Id).
				Msg("Failed to allow user")
			_, err = c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Failed to allow the user.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
			return err
		}

		return tgUtils.AddReactionWithFallback(b, c.EffectiveMessage, "👍",
			&tgUtils.ReactionFallbackOpts{
				Fallback: fmt.Sprintf("✅ <b>%s</b> can now use the bot everywhere.",
					utils.Escape(user.FirstName)),
			},
		)
	}

	// Allow group
	if p.allowService.IsChatAllowed(c.EffectiveChat) {
		return tgUtils.AddReactionWithFallback(b, c.EffectiveMessage, "👍",
			&tgUtils.ReactionFallbackOpts{
				Fallback: "✅ This chat can already use the bot.",
			},
		)
	}

	err := p.allowService.AllowChat(c.EffectiveChat)
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Failed to allow chat")
		_, err = c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Failed to allow the chat.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	return tgUtils.AddReactionWithFallback(b, c.EffectiveMessage, "👍",
		&tgUtils.ReactionFallbackOpts{
			Fallback: "✅ This chat can now use the bot.",
		},
	)
}

func (p *Plugin) onDeny(b *gotgbot.Bot, c plugin.Context) error {
	if tgUtils.IsReply(c.EffectiveMessage) { // Deny user
		user := c.EffectiveMessage.ReplyToMessage.From
		if user.IsBot {
			_, err := c.EffectiveMessage.Reply(b, "🤖🤖🤖", utils.DefaultSendOptions())
			return err
		}

		if !p.allowService.IsUserAllowed(user) {
			return tgUtils.AddReactionWithFallback(b, c.EffectiveMessage, "👍",
				&tgUtils.ReactionFallbackOpts{
					Fallback: fmt.Sprintf("✅ <b>%s</b> can't use the bot everywhere.",
						utils.Escape(user.FirstName)),
				},
			)
		}

		err := p.allowService.DenyUser(user)
		if err != nil {
			guid := xid.New().String()
			log.Err(err).
				Str("guid", guid).
				Int64("user_id", user.Id).
				Msg("Failed to deny user")
			_, err = c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Failed to deny the user.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
			return err
		}

		return tgUtils.AddReactionWithFallback(b, c.EffectiveMessage, "👍",
			&tgUtils.ReactionFallbackOpts{
				Fallback: fmt.Sprintf("✅ <b>%s</b> can no longer use the bot everywhere.",
					utils.Escape(user.FirstName)),
			},
		)
	}

	// Deny group
	if !p.allowService.IsChatAllowed(c.EffectiveChat) {
		return tgUtils.AddReactionWithFallback(b, c.EffectiveMessage, "👍",
			&tgUtils.ReactionFallbackOpts{
				Fallback: "✅ This chat can't use the bot.",
			},
		)
	}

	err := p.allowService.DenyChat(c.EffectiveChat)
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Failed to deny chat")
		_, err = c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Failed to deny the chat.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	return tgUtils.AddReactionWithFallback(b, c.EffectiveMessage, "👍",
		&tgUtils.ReactionFallbackOpts{
			Fallback: "✅ This chat can no longer use the bot.",
		},
	)
}
