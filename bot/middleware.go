package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/Brawl345/doggobot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// https://twin.sh/articles/35/how-to-add-colors-to-your-console-terminal-output-in-go
var (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	purple = "\033[35m"
	cyan   = "\033[36m"
)

func printUser(user *gotgbot.User) string {
	var sb strings.Builder
	sb.WriteString(
		fmt.Sprintf(
			"%s%s%s",
			bold,
			red,
			user.FirstName,
		),
	)

	if user.LastName != "" {
		sb.WriteString(" ")
		sb.WriteString(user.LastName)
	}

	sb.WriteString(reset)

	if user.Username != "" {
		sb.WriteString(
			fmt.Sprintf(
				" %s(@%s)%s",
				red,
				user.Username,
				reset,
			),
		)
	}

	return sb.String()
}

func printMessage(msg *gotgbot.Message) string {
	var sb strings.Builder

	var msgTime string
	if msg.EditDate != 0 {
		msgTime = utils.TimestampToTime(msg.EditDate).Format("15:04:05")
	} else {
		msgTime = utils.TimestampToTime(msg.Date).Format("15:04:05")
	}

	sb.WriteString(
		fmt.Sprintf(
			"%s[%v]",
			cyan,
			msgTime,
		),
	)

	if msg.Chat.Title != "" {
		sb.WriteString(
			fmt.Sprintf(
				" %s:",
				msg.Chat.Title,
			),
		)
	}

	sb.WriteString(reset)

	if msg.From != nil {
		sb.WriteString(
			fmt.Sprintf(
				" %s",
				printUser(msg.From),
			),
		)
	}

	sb.WriteString(
		fmt.Sprintf(
			"%s >>> %s",
			cyan,
			reset,
		),
	)

	if msg.EditDate != 0 {
		sb.WriteString(
			fmt.Sprintf(
				"%s(edited) %s",
				green,
				reset,
			),
		)
	}

	if msg.Text != "" {
		sb.WriteString(msg.Text)
	}
	if msg.Caption != "" {
		sb.WriteString(msg.Caption)
	}

	return sb.String()
}

func printCallback(callback *gotgbot.CallbackQuery) string {
	var sb strings.Builder

	sb.WriteString(printUser(&callback.From))

	sb.WriteString(
		fmt.Sprintf(
			"%s >>> %s%s(CallbackQuery)%s ",
			cyan,
			reset,
			green,
			reset,
		),
	)

	if callback.Data != "" {
		sb.WriteString(
			fmt.Sprintf(
				"%s%s%s",
				purple,
				callback.Data,
				reset,
			),
		)
	}

	return sb.String()
}

func printInlineQuery(query *gotgbot.InlineQuery) string {
	var sb strings.Builder

	sb.WriteString(
		fmt.Sprintf(
			"%s[%v]%s ",
			cyan,
			time.Now().Format("15:04:05"),
			reset,
		),
	)

	sb.WriteString(printUser(&query.From))

	sb.WriteString(
		fmt.Sprintf(
			"%s >>> %s%s(InlineQuery)%s ",
			cyan,
			reset,
			green,
			reset,
		),
	)

	if query.Query != "" {
		sb.WriteString(
			fmt.Sprintf(
				"%s%s%s",
				purple,
				query.Query,
				reset,
			),
		)
	}

	return sb.String()
}

// PrintUpdate pretty-prints an incoming update to the console.
func PrintUpdate(c *ext.Context) {
	var text string
	if c.Message != nil {
		text = printMessage(c.Message)
	} else if c.EditedMessage != nil {
		text = printMessage(c.EditedMessage)
	} else if c.CallbackQuery != nil {
		text = printCallback(c.CallbackQuery)
	} else if c.InlineQuery != nil {
		text = printInlineQuery(c.InlineQuery)
	} else {
		text = fmt.Sprintf(
			"%s>>> %s%sUnknown update type%s",
			cyan,
			reset,
			red,
			reset,
		)
	}

	println(text)
}
