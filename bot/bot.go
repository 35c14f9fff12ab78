package bot

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/ARKTEEK/purrislav/dal"
)

type commandHandler = func(*discordgo.InteractionCreate)

// Birthday datetime format used by the set command.
const (
	birthdayFormat        = "2006-01-02"
	birthdayFormatDisplay = "YYYY-MM-DD"
	birthdayFormatExample = "2001-12-15"
)

var manageChannelsPermission int64 = discordgo.PermissionManageChannels

var botCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "birthday",
		Description: "Store and look up birthdays.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Saves a birthday.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type: discordgo.ApplicationCommandOptionString,
						Name: "date",
						Description: fmt.Sprintf(
							"The birthday (format: %v)",
							birthdayFormatDisplay,
						),
						Required: true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "The user to set the birthday for. Defaults to you.",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "info",
				Description: "Looks up a saved birthday.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "The user to look up. Defaults to you.",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "delete",
				Description: "Removes a saved birthday.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "The user to remove. Defaults to you.",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Lists all birthdays saved for this guild.",
			},
		},
	}, {
		Name:                     "settings",
		Description:              "Guild configuration.",
		DefaultMemberPermissions: &manageChannelsPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "announcements",
				Description: "Sets the channel to use for birthday announcements.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "channel",
						Description: "The channel to use.",
						Required:    true,
					},
				},
			},
		},
	}, {
		Name:        "color",
		Description: "Gives you a role in the color of your choosing.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "code",
				Description: "Hex color code, like #ff7700 or #f70.",
				Required:    true,
			},
		},
	},
}

// Bot is the discord-facing layer: slash commands in, embeds out.
type Bot struct {
	session            *discordgo.Session
	store              *dal.Store
	log                *zap.Logger
	registeredCommands []*discordgo.ApplicationCommand
	commandHandlers    map[string]commandHandler

	mu           sync.Mutex
	listSessions map[string]*listSession // keyed by list message id
}

// New initialises the bot, opens the gateway session and registers the
// slash commands.
func New(token, guildID string, store *dal.Store, log *zap.Logger) (*Bot, error) {
	bot := &Bot{
		store:        store,
		log:          log,
		listSessions: make(map[string]*listSession),
	}

	bot.commandHandlers = map[string]commandHandler{
		"birthday": bot.Birthday,
		"settings": bot.Settings,
		"color":    bot.Color,
	}

	if err := bot.initSession(token); err != nil {
		return nil, err
	}
	if err := bot.registerCommands(guildID); err != nil {
		bot.session.Close()
		return nil, err
	}

	return bot, nil
}

func (bot *Bot) initSession(token string) error {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsAllWithoutPrivileged | discordgo.IntentGuildMembers

	session.AddHandler(func(s *discordgo.Session, _ *discordgo.Ready) {
		bot.log.Info("logged in",
			zap.String("user", s.State.User.Username))
	})

	session.AddHandler(func(
		_ *discordgo.Session,
		i *discordgo.InteractionCreate,
	) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			if handler, ok := bot.commandHandlers[i.ApplicationCommandData().Name]; ok {
				handler(i)
			}
		case discordgo.InteractionMessageComponent:
			bot.handleListPageFlip(i)
		}
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	bot.session = session
	return nil
}

func (bot *Bot) registerCommands(guildID string) error {
	for _, command := range botCommands {
		newCommand, err := bot.session.ApplicationCommandCreate(
			bot.session.State.User.ID,
			guildID,
			command,
		)
		if err != nil {
			return fmt.Errorf("create %v command: %w", command.Name, err)
		}
		bot.registeredCommands = append(bot.registeredCommands, newCommand)
		bot.log.Info("created command", zap.String("command", command.Name))
	}
	return nil
}

// Shutdown removes the registered commands and closes the session.
func (bot *Bot) Shutdown(guildID string) {
	bot.log.Info("shutting down")

	for _, command := range bot.registeredCommands {
		err := bot.session.ApplicationCommandDelete(
			bot.session.State.User.ID,
			guildID,
			command.ID,
		)
		if err != nil {
			bot.log.Warn("failed to delete command",
				zap.String("command", command.Name), zap.Error(err))
		}
	}

	bot.session.Close()
}
