package main

import (
	"os"

	"github.com/Brawl345/doggobot/bot"
	"github.com/Brawl345/doggobot/logger"
	"github.com/Brawl345/doggobot/model/sql"
	"github.com/Brawl345/doggobot/plugin"
	"github.com/Brawl345/doggobot/plugin/about"
	"github.com/Brawl345/doggobot/plugin/allow"
	"github.com/Brawl345/doggobot/plugin/currency"
	"github.com/Brawl345/doggobot/plugin/dog"
	"github.com/Brawl345/doggobot/plugin/manager"
	"github.com/Brawl345/doggobot/utils"
	_ "github.com/joho/godotenv/autoload"
)

var log = logger.New("main")

func main() {
	versionInfo, err := utils.ReadVersionInfo()
	if err != nil {
		log.Err(err).Msg("Failed to read version info")
	} else {
		log.Info().Msgf("Doggobot-%s, %v", versionInfo.Revision, versionInfo.LastCommit)
	}

	db, err := sql.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	pluginService := sql.NewPluginService(db)
	chatService := sql.NewChatService(db)
	userService := sql.NewUserService(db)
	chatsUsersService := sql.NewChatsUsersService(db, chatService, userService)

	chatsPluginsService := sql.NewChatsPluginsService(db, chatService, pluginService)

	allowService, err := sql.NewAllowService(chatService, userService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize allow service")
	}

	managerService, err := sql.NewManagerService(chatsPluginsService, pluginService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize manager service")
	}

	b, err := bot.New(os.Getenv("BOT_TOKEN"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	plugins := []plugin.Plugin{
		about.New(),
		allow.New(allowService),
		currency.New(),
		dog.New(),
		manager.New(managerService),
	}
	managerService.SetPlugins(plugins)

	for i, plg := range plugins {
		log.Info().Msgf("Registered plugin (%d/%d): %s", i+1, len(plugins), plg.Name())
	}

	err = bot.RegisterCommands(b, plugins)
	if err != nil {
		log.Err(err).Msg("Failed to set bot commands")
	}

	processor := bot.NewProcessor(allowService, chatsUsersService, managerService, userService)

	if err := bot.Run(b, processor); err != nil {
		log.Fatal().Err(err).Msg("Bot stopped")
	}
}
