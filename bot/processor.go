package bot

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/Brawl345/doggobot/model"
	"github.com/Brawl345/doggobot/plugin"
	"github.com/Brawl345/doggobot/utils"
	"github.com/Brawl345/doggobot/utils/tgUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/rs/xid"
)

type Processor struct {
	allowService      model.AllowService
	chatsUsersService model.ChatsUsersService
	managerService    model.ManagerService
	userService       model.UserService
	printMessages     bool
}

func NewProcessor(
	allowService model.AllowService,
	chatsUsersService model.ChatsUsersService,
	managerService model.ManagerService,
	userService model.UserService,
) *Processor {
	_, printMessages := os.LookupEnv("PRINT_MSGS")
	return &Processor{
		allowService:      allowService,
		chatsUsersService: chatsUsersService,
		managerService:    managerService,
		userService:       userService,
		printMessages:     printMessages,
	}
}

func (p *Processor) ProcessUpdate(d *ext.Dispatcher, b *gotgbot.Bot, ctx *ext.Context) error {
	if p.printMessages {
		PrintUpdate(ctx)
	}

	if ctx.Message != nil {
		if ctx.Message.LeftChatMember != nil {
			return p.onUserLeft(ctx)
		}

		if ctx.Message.NewChatMembers != nil {
			return p.onUserJoined(ctx)
		}

		return p.onMessage(b, ctx)
	}

	if ctx.EditedMessage != nil {
		return p.onMessage(b, ctx)
	}

	if ctx.CallbackQuery != nil {
		return p.onCallback(b, ctx)
	}

	if ctx.InlineQuery != nil {
		return p.onInlineQuery(b, ctx)
	}

	return nil
}

// pluginAvailable reports whether a plugin may run. The manager plugin is
// exempt from the enablement check so it can never lock itself out.
func (p *Processor) pluginAvailable(chat *gotgbot.Chat, fromGroup bool, pluginName string) bool {
	if pluginName != "manager" {
		if !p.managerService.IsPluginEnabled(pluginName) {
			log.Debug().Msgf("Plugin %s is disabled globally", pluginName)
			return false
		}

		if fromGroup && p.managerService.IsPluginDisabledForChat(chat, pluginName) {
			log.Debug().Msgf("Plugin %s is disabled for this chat", pluginName)
			return false
		}
	}

	return true
}

func (p *Processor) onMessage(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := ctx.EffectiveMessage
	isEdited := msg.EditDate != 0

	isAllowed := p.allowService.IsUserAllowed(ctx.EffectiveUser)
	if tgUtils.FromGroup(msg) && !isAllowed {
		isAllowed = p.allowService.IsChatAllowed(ctx.EffectiveChat)
	}

	if !isAllowed {
		log.Debug().Int64("chat_id", ctx.EffectiveChat.Id).Msg("User/Chat is not allowed")
		return nil
	}

	var err error

	if !isEdited {
		if tgUtils.IsPrivate(msg) {
			err = p.userService.Create(ctx.EffectiveUser)
		} else {
			err = p.chatsUsersService.Create(ctx.EffectiveChat, ctx.EffectiveUser)
		}
		if err != nil {
			return err
		}
	}

	text := tgUtils.AnyText(msg)

	for _, plg := range p.managerService.Plugins() {
		plg := plg
		for _, h := range plg.Handlers(&b.User) {
			h := h

			handler, ok := h.(*plugin.CommandHandler)
			if !ok {
				continue
			}

			if isEdited && !handler.HandleEdits {
				continue
			}

			if !tgUtils.FromGroup(msg) && handler.GroupOnly {
				continue
			}

			command, ok := handler.Command().(*regexp.Regexp)
			if !ok {
				panic("Unsupported command handler type!! Must be regexp.Regexp!")
			}

			matches := command.FindStringSubmatch(text)
			if len(matches) == 0 {
				continue
			}

			namedMatches := make(map[string]string)
			for i, name := range matches {
				namedMatches[command.SubexpNames()[i]] = name
			}

			log.Debug().Msgf("Matched plugin '%s': %s", plg.Name(), handler.Trigger)

			if !p.pluginAvailable(ctx.EffectiveChat, tgUtils.FromGroup(msg), plg.Name()) {
				continue
			}

			if handler.AdminOnly && !tgUtils.IsAdmin(ctx.EffectiveUser) {
				log.Debug().Msg("User is not an admin.")
				continue
			}

			go func() {
				defer func() {
					if r := recover(); r != nil {
						guid := xid.New().String()
						log.Err(errors.New("panic")).
							Str("guid", guid).
							Int64("chat_id", ctx.EffectiveChat.Id).
							Int64("user_id", ctx.EffectiveUser.Id).
							Str("text", ctx.EffectiveMessage.Text).
							Str("component", plg.Name()).
							Msgf("%s", r)
						_, _ = ctx.EffectiveMessage.Reply(b, fmt.Sprintf("❌ An error occurred.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
					}
				}()
				err := handler.Run(b, plugin.Context{
					Context:      ctx,
					Matches:      matches,
					NamedMatches: namedMatches,
				})
				if err != nil {
					if isSendBlocked(err) {
						log.Debug().
							Int64("chat_id", ctx.EffectiveChat.Id).
							Str("component", plg.Name()).
							Msg("Could not deliver message")
						return
					}
					guid := xid.New().String()
					log.Err(err).
						Str("guid", guid).
						Int64("chat_id", ctx.EffectiveChat.Id).
						Int64("user_id", ctx.EffectiveUser.Id).
						Str("text", ctx.EffectiveMessage.Text).
						Str("component", plg.Name()).
						Send()
					_, _ = ctx.EffectiveMessage.Reply(b, fmt.Sprintf("❌ An error occurred.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
				}
			}()
		}
	}

	return nil
}

func (p *Processor) onCallback(b *gotgbot.Bot, ctx *ext.Context) error {
	callback := ctx.CallbackQuery
	msg := callback.Message

	if callback.Data == "" {
		_, err := callback.Answer(b, nil)
		return err
	}

	isAllowed := p.allowService.IsUserAllowed(&ctx.CallbackQuery.From)
	if msg != nil && tgUtils.FromGroup(msg) && !isAllowed {
		isAllowed = p.allowService.IsChatAllowed(ctx.EffectiveChat)
	}

	if !isAllowed {
		_, err := callback.Answer(b, &gotgbot.AnswerCallbackQueryOpts{
			Text:      "You are not allowed to use this bot.",
			ShowAlert: true,
		})
		return err
	}

	for _, plg := range p.managerService.Plugins() {
		plg := plg
		for _, h := range plg.Handlers(&b.User) {
			h := h

			handler, ok := h.(*plugin.CallbackHandler)
			if !ok {
				continue
			}

			matches := handler.Trigger.FindStringSubmatch(callback.Data)
			if len(matches) == 0 {
				continue
			}

			log.Debug().Msgf("Matched plugin '%s': %s", plg.Name(), handler.Trigger)

			fromGroup := msg != nil && tgUtils.FromGroup(msg)
			if !p.pluginAvailable(ctx.EffectiveChat, fromGroup, plg.Name()) {
				_, err := ctx.CallbackQuery.Answer(b, &gotgbot.AnswerCallbackQueryOpts{
					Text:      "This command is not available.",
					ShowAlert: true,
				})
				return err
			}

			if handler.AdminOnly && !tgUtils.IsAdmin(ctx.EffectiveUser) {
				_, err := ctx.CallbackQuery.Answer(b, &gotgbot.AnswerCallbackQueryOpts{
					Text:      "You are not a bot administrator.",
					ShowAlert: true,
				})
				return err
			}

			if handler.Cooldown > 0 && msg != nil {
				messageTime := utils.TimestampToTime(msg.GetDate())
				waitTime := handler.Cooldown - time.Since(messageTime)

				if waitTime > 0 {
					_, err := ctx.CallbackQuery.Answer(b, &gotgbot.AnswerCallbackQueryOpts{
						Text:      fmt.Sprintf("🕒 Please wait %.1f more seconds.", waitTime.Seconds()),
						ShowAlert: true,
					})
					return err
				}
			}

			if handler.DeleteButton && ctx.EffectiveMessage != nil {
				go func() {
					_, _, err := ctx.EffectiveMessage.EditReplyMarkup(b, nil)
					if err != nil {
						log.Err(err).
							Int64("chat_id", ctx.EffectiveChat.Id).
							Msg("Error removing inline keyboard")
					}
				}()
			}

			namedMatches := make(map[string]string)
			for i, name := range matches {
				namedMatches[handler.Trigger.SubexpNames()[i]] = name
			}

			go func() {
				defer func() {
					if r := recover(); r != nil {
						log.Err(errors.New("panic")).
							Int64("chat_id", ctx.EffectiveChat.Id).
							Str("callback_data", callback.Data).
							Str("component", plg.Name()).
							Msgf("%s", r)
					}
				}()
				err := handler.Run(b, plugin.Context{
					Context:      ctx,
					Matches:      matches,
					NamedMatches: namedMatches,
				})
				if err != nil {
					log.Err(err).
						Int64("chat_id", ctx.EffectiveChat.Id).
						Str("callback_data", callback.Data).
						Str("component", plg.Name()).
						Send()
				}
			}()
		}
	}

	return nil
}

func (p *Processor) onInlineQuery(b *gotgbot.Bot, ctx *ext.Context) error {
	inlineQuery := ctx.InlineQuery

	if inlineQuery.Query == "" {
		_, err := ctx.InlineQuery.Answer(b,
			nil,
			&gotgbot.AnswerInlineQueryOpts{
				CacheTime:  tgUtils.InlineQueryFailureCacheTime,
				IsPersonal: true,
			})
		return err
	}

	for _, plg := range p.managerService.Plugins() {
		plg := plg
		for _, h := range plg.Handlers(&b.User) {
			h := h

			handler, ok := h.(*plugin.InlineHandler)
			if !ok {
				continue
			}

			matches := handler.Trigger.FindStringSubmatch(inlineQuery.Query)
			if len(matches) == 0 {
				continue
			}

			log.Debug().Msgf("Matched plugin '%s': %s", plg.Name(), handler.Trigger)

			if !p.managerService.IsPluginEnabled(plg.Name()) {
				log.Debug().Msgf("Plugin %s is disabled globally", plg.Name())
				_, err := ctx.InlineQuery.Answer(b, nil, &gotgbot.AnswerInlineQueryOpts{
					CacheTime:  tgUtils.InlineQueryFailureCacheTime,
					IsPersonal: true,
				})
				return err
			}

			if handler.AdminOnly && !tgUtils.IsAdmin(ctx.EffectiveUser) {
				_, err := ctx.InlineQuery.Answer(b, nil, &gotgbot.AnswerInlineQueryOpts{
					CacheTime:  tgUtils.InlineQueryFailureCacheTime,
					IsPersonal: true,
				})
				return err
			}

			if !handler.CanBeUsedByEveryone && !p.allowService.IsUserAllowed(ctx.EffectiveUser) {
				_, err := ctx.InlineQuery.Answer(b, nil, &gotgbot.AnswerInlineQueryOpts{
					CacheTime:  tgUtils.InlineQueryFailureCacheTime,
					IsPersonal: true,
				})
				return err
			}

			namedMatches := make(map[string]string)
			for i, name := range matches {
				namedMatches[handler.Trigger.SubexpNames()[i]] = name
			}

			go func() {
				defer func() {
					if r := recover(); r != nil {
						log.Err(errors.New("panic")).
							Int64("user_id", ctx.EffectiveUser.Id).
							Str("query", ctx.InlineQuery.Query).
							Str("component", plg.Name()).
							Msgf("%s", r)
					}
				}()
				err := handler.Run(b, plugin.Context{
					Context:      ctx,
					Matches:      matches,
					NamedMatches: namedMatches,
				})
				if err != nil {
					log.Err(err).
						Int64("user_id", ctx.EffectiveUser.Id).
						Str("query", ctx.InlineQuery.Query).
						Str("component", plg.Name()).
						Send()
				}
			}()
		}
	}

	return nil
}

func (p *Processor) onUserJoined(ctx *ext.Context) error {
	return p.chatsUsersService.CreateBatch(ctx.EffectiveChat, &ctx.Message.NewChatMembers)
}

func (p *Processor) onUserLeft(ctx *ext.Context) error {
	if ctx.Message.LeftChatMember.IsBot {
		return nil
	}
	return p.chatsUsersService.Leave(ctx.EffectiveChat, ctx.Message.LeftChatMember)
}

func isSendBlocked(err error) bool {
	var telegramErr *gotgbot.TelegramError
	if !errors.As(err, &telegramErr) {
		return false
	}
	return strings.HasPrefix(telegramErr.Description, tgUtils.ErrBlockedByUser) ||
		strings.HasPrefix(telegramErr.Description, tgUtils.ErrNotStartedByUser)
}
