package dog

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Brawl345/doggobot/logger"
	"github.com/Brawl345/doggobot/plugin"
	"github.com/Brawl345/doggobot/utils"
	"github.com/Brawl345/doggobot/utils/tgUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/xid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var log = logger.New("dog")

const randomCallbackData = "dog:random"

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return "dog"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return []gotgbot.BotCommand{
		{
			Command:     "doggo",
			Description: "Random dog picture",
		},
		{
			Command:     "breed",
			Description: "<breed> - Random dog picture of the given breed",
		},
		{
			Command:     "breeds",
			Description: "List all dog breeds",
		},
	}
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/doggo(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: onRandomImage,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/breed(?:@%s)? (?P<breed>.+)$`, botInfo.Username)),
			HandlerFunc: onBreedImage,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/breeds(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: onBreedList,
		},
		&plugin.CallbackHandler{
			Trigger:      regexp.MustCompile(`^dog:random$`),
			HandlerFunc:  onRandomImageCallback,
			DeleteButton: true,
			Cooldown:     3 * time.Second,
		},
		&plugin.InlineHandler{
			Trigger:             regexp.MustCompile(`(?i)^doggo$`),
			CanBeUsedByEveryone: true,
			HandlerFunc:         onRandomImageInline,
		},
	}
}

func randomImageKeyboard() gotgbot.InlineKeyboardMarkup {
	return gotgbot.InlineKeyboardMarkup{
		InlineKeyboard: [][]gotgbot.InlineKeyboardButton{
			{
				{
					Text:         "🐶 Another one",
					CallbackData: randomCallbackData,
				},
			},
		},
	}
}

func onRandomImage(b *gotgbot.Bot, c plugin.Context) error {
	_, _ = c.EffectiveChat.SendAction(b, gotgbot.ChatActionUploadPhoto, nil)

	response, err := getRandomImage()
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Failed to fetch random dog")
		_, err = c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Couldn't fetch a dog picture.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	if !response.Ok() {
		log.Error().
			Str("status", response.Status).
			Msg("Dog API did not return a picture")
		_, err = c.EffectiveMessage.Reply(b, "❌ Couldn't find a dog.", utils.DefaultSendOptions())
		return err
	}

	return sendDogPhoto(b, c, response.Message, randomImageKeyboard())
}

func onRandomImageCallback(b *gotgbot.Bot, c plugin.Context) error {
	response, err := getRandomImage()
	if err != nil {
		log.Err(err).
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Failed to fetch random dog from callback")
		_, err := c.CallbackQuery.Answer(b, &gotgbot.AnswerCallbackQueryOpts{
			Text:      "❌ Couldn't fetch a dog picture.",
			ShowAlert: true,
		})
		return err
	}

	if !response.Ok() {
		log.Error().
			Str("status", response.Status).
			Msg("Dog API did not return a picture")
		_, err := c.CallbackQuery.Answer(b, &gotgbot.AnswerCallbackQueryOpts{
			Text:      "❌ Couldn't find a dog.",
			ShowAlert: true,
		})
		return err
	}

	_, _ = c.CallbackQuery.Answer(b, nil)

	return sendDogPhoto(b, c, response.Message, randomImageKeyboard())
}

func onBreedImage(b *gotgbot.Bot, c plugin.Context) error {
	_, _ = c.EffectiveChat.SendAction(b, gotgbot.ChatActionUploadPhoto, nil)

	breed := c.NamedMatches["breed"]
	response, err := getBreedImage(BreedPath(breed))
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Str("breed", breed).
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Failed to fetch dog of breed")
		_, err = c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Couldn't fetch a dog picture.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	if !response.Ok() {
		log.Error().
			Str("status", response.Status).
			Str("breed", breed).
			Msg("Dog API does not know this breed")
		_, err = c.EffectiveMessage.Reply(b,
			fmt.Sprintf("🐶 Breed '%s' doesn't exist.", utils.Escape(breed)),
			utils.DefaultSendOptions(),
		)
		return err
	}

	return sendDogPhoto(b, c, response.Message, nil)
}

func onBreedList(b *gotgbot.Bot, c plugin.Context) error {
	_, _ = c.EffectiveChat.SendAction(b, gotgbot.ChatActionTyping, nil)

	response, err := getAllBreeds()
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Failed to fetch breed list")
		_, err = c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Couldn't fetch the breed list.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	if !response.Ok() {
		log.Error().
			Str("status", response.Status).
			Msg("Dog API did not return the breed list")
		_, err = c.EffectiveMessage.Reply(b, "❌ Couldn't fetch the breed list.", utils.DefaultSendOptions())
		return err
	}

	for _, text := range formatBreedList(response.Message) {
		_, err = c.EffectiveMessage.Reply(b, text, utils.DefaultSendOptions())
		if err != nil {
			return err
		}
	}

	return nil
}

func onRandomImageInline(b *gotgbot.Bot, c plugin.Context) error {
	response, err := getRandomImage()
	if err != nil {
		log.Err(err).
			Msg("Failed to fetch random dog (inline mode)")
		return answerInlineEmpty(b, c)
	}

	if !response.Ok() {
		log.Error().
			Str("status", response.Status).
			Msg("Dog API did not return a picture (inline mode)")
		return answerInlineEmpty(b, c)
	}

	_, err = c.InlineQuery.Answer(
		b,
		[]gotgbot.InlineQueryResult{
			gotgbot.InlineQueryResultPhoto{
				Id:           strconv.Itoa(rand.Int()),
				PhotoUrl:     response.Message,
				ThumbnailUrl: response.Message,
			},
		},
		nil,
	)
	return err
}

func answerInlineEmpty(b *gotgbot.Bot, c plugin.Context) error {
	_, err := c.InlineQuery.Answer(b, nil, &gotgbot.AnswerInlineQueryOpts{
		CacheTime:  tgUtils.InlineQueryFailureCacheTime,
		IsPersonal: true,
	})
	return err
}

func sendDogPhoto(b *gotgbot.Bot, c plugin.Context, url string, replyMarkup gotgbot.ReplyMarkup) error {
	_, err := b.SendPhoto(c.EffectiveChat.Id, gotgbot.InputFileByURL(url), &gotgbot.SendPhotoOpts{
		ReplyParameters: &gotgbot.ReplyParameters{
			AllowSendingWithoutReply: true,
			MessageId:                c.EffectiveMessage.MessageId,
		},
		DisableNotification: true,
		ReplyMarkup:         replyMarkup,
	})
	if err != nil {
		return err
	}

	log.Debug().
		Str("url", url).
		Int64("chat_id", c.EffectiveChat.Id).
		Msg("Dog sent")
	return nil
}

// formatBreedList renders the catalog as one header line per breed with its
// sub-breeds indented below, sorted by breed name. The output is split into
// chunks that fit into a single Telegram message.
func formatBreedList(breeds map[string][]string) []string {
	keys := maps.Keys(breeds)
	slices.Sort(keys)

	var messages []string
	var sb strings.Builder

	for _, breed := range keys {
		var block strings.Builder
		block.WriteString(fmt.Sprintf("<b>%s</b>\n", utils.Escape(breed)))
		for _, subBreed := range breeds[breed] {
			block.WriteString(fmt.Sprintf("  ↳ %s\n", utils.Escape(subBreed)))
		}

		if sb.Len() > 0 && sb.Len()+block.Len() > tgUtils.MaxMessageLength {
			messages = append(messages, sb.String())
			sb.Reset()
		}
		sb.WriteString(block.String())
	}

	if sb.Len() > 0 {
		messages = append(messages, sb.String())
	}

	return messages
}
