package manager

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Brawl345/doggobot/logger"
	"github.com/Brawl345/doggobot/model"
	"github.com/Brawl345/doggobot/plugin"
	"github.com/Brawl345/doggobot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/xid"
)

var log = logger.New("manager")

type Plugin struct {
	managerService model.ManagerService
}

func New(managerService model.ManagerService) *Plugin {
	return &Plugin{
		managerService: managerService,
	}
}

func (p *Plugin) Name() string {
	return "manager"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return nil // Because it's a superuser plugin
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/enable(?:@%s)? (.+)$`, botInfo.Username)),
			HandlerFunc: p.onEnable,
			AdminOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/disable(?:@%s)? (.+)$`, botInfo.Username)),
			HandlerFunc: p.onDisable,
			AdminOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/enable_chat(?:@%s)? (.+)$`, botInfo.Username)),
			HandlerFunc: p.onEnableInChat,
			AdminOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/disable_chat(?:@%s)? (.+)$`, botInfo.Username)),
			HandlerFunc: p.onDisableInChat,
			AdminOnly:   true,
		},
	}
}

func (p *Plugin) onEnable(b *gotgbot.Bot, c plugin.Context) error {
	pluginName := c.Matches[1]

	if p.managerService.IsPluginEnabled(pluginName) {
		_, err := c.EffectiveMessage.Reply(b, "💡 Plugin is already enabled", utils.DefaultSendOptions())
		return err
	}

	err := p.managerService.EnablePlugin(pluginName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			_, err := c.EffectiveMessage.Reply(b, "❌ Plugin doesn't exist", utils.DefaultSendOptions())
			return err
		}

		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Str("plugin", pluginName).
			Msg("Failed to enable plugin")
		_, err := c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ An error occurred.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	_, err = c.EffectiveMessage.Reply(b, "✅ Plugin enabled", utils.DefaultSendOptions())
	return err
}

func (p *Plugin) onEnableInChat(b *gotgbot.Bot, c plugin.Context) error {
	pluginName := c.Matches[1]

	if !p.managerService.IsPluginDisabledForChat(c.EffectiveChat, pluginName) {
		_, err := c.EffectiveMessage.Reply(b, "💡 Plugin is already enabled in this chat", utils.DefaultSendOptions())
		return err
	}

	err := p.managerService.EnablePluginForChat(c.EffectiveChat, pluginName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			_, err := c.EffectiveMessage.Reply(b, "❌ Plugin doesn't exist", utils.DefaultSendOptions())
			return err
		}

		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Str("plugin", pluginName).
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Failed to enable plugin in chat")
		_, err := c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ An error occurred.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	_, err = c.EffectiveMessage.Reply(b, "✅ Plugin enabled again in this chat", utils.DefaultSendOptions())
	return err
}

func (p *Plugin) onDisable(b *gotgbot.Bot, c plugin.Context) error {
	pluginName := c.Matches[1]

	if pluginName == p.Name() {
		_, err := c.EffectiveMessage.Reply(b, "❌ The manager can't be disabled.", utils.DefaultSendOptions())
		return err
	}

	if !p.managerService.IsPluginEnabled(pluginName) {
		_, err := c.EffectiveMessage.Reply(b, "💡 Plugin is not enabled", utils.DefaultSendOptions())
		return err
	}

	err := p.managerService.DisablePlugin(pluginName)
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Str("plugin", pluginName).
			Msg("Failed to disable plugin")
		_, err := c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ An error occurred.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	_, err = c.EffectiveMessage.Reply(b, "✅ Plugin disabled", utils.DefaultSendOptions())
	return err
}

func (p *Plugin) onDisableInChat(b *gotgbot.Bot, c plugin.Context) error {
	pluginName := c.Matches[1]

	if pluginName == p.Name() {
		_, err := c.EffectiveMessage.Reply(b, "❌ The manager can't be disabled.", utils.DefaultSendOptions())
		return err
	}

	if p.managerService.IsPluginDisabledForChat(c.EffectiveChat, pluginName) {
		_, err := c.EffectiveMessage.Reply(b, "💡 Plugin is already disabled in this chat", utils.DefaultSendOptions())
		return err
	}

	err := p.managerService.DisablePluginForChat(c.EffectiveChat, pluginName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			_, err := c.EffectiveMessage.Reply(b, "❌ Plugin doesn't exist", utils.DefaultSendOptions())
			return err
		}

		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Str("plugin", pluginName).
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Failed to disable plugin in chat")
		_, err := c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ An error occurred.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	_, err = c.EffectiveMessage.Reply(b, "✅ Plugin disabled in this chat", utils.DefaultSendOptions())
	return err
}
