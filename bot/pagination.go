package bot

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/ARKTEEK/purrislav/discordutils"
)

const (
	listPrevID = "birthday_list_prev"
	listNextID = "birthday_list_next"
)

// listSession tracks which page of a birthday list a message is showing.
type listSession struct {
	pages []string
	page  int
}

func listButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: listPrevID,
					Style:    discordgo.SecondaryButton,
					Emoji:    discordgo.ComponentEmoji{Name: "◀"},
				},
				discordgo.Button{
					CustomID: listNextID,
					Style:    discordgo.SecondaryButton,
					Emoji:    discordgo.ComponentEmoji{Name: "▶"},
				},
			},
		},
	}
}

func (bot *Bot) startListSession(i *discordgo.InteractionCreate, pages []string) {
	embed := birthdayListEmbed(pages[0], 1, len(pages))

	if len(pages) == 1 {
		bot.replyEmbed(i, embed)
		return
	}

	message, err := discordutils.SendFollowupEmbedWithComponents(
		embed,
		listButtons(),
		i.Interaction,
		bot.session,
	)
	if err != nil {
		bot.log.Warn("failed to send birthday list", zap.Error(err))
		return
	}

	bot.mu.Lock()
	bot.listSessions[message.ID] = &listSession{pages: pages}
	bot.mu.Unlock()
}

func (bot *Bot) handleListPageFlip(i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if customID != listPrevID && customID != listNextID {
		return
	}

	var (
		page       string
		pageNum    int
		totalPages int
	)

	bot.mu.Lock()
	session, ok := bot.listSessions[i.Message.ID]
	if ok {
		switch customID {
		case listNextID:
			session.page = (session.page + 1) % len(session.pages)
		case listPrevID:
			session.page = (session.page + len(session.pages) - 1) % len(session.pages)
		}
		page = session.pages[session.page]
		pageNum = session.page + 1
		totalPages = len(session.pages)
	}
	bot.mu.Unlock()

	if !ok {
		// List from before a restart; there is nothing to flip to.
		err := bot.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		if err != nil {
			bot.log.Warn("failed to ack stale list interaction", zap.Error(err))
		}
		return
	}

	err := bot.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				birthdayListEmbed(page, pageNum, totalPages),
			},
			Components: listButtons(),
		},
	})
	if err != nil {
		bot.log.Warn("failed to flip birthday list page", zap.Error(err))
	}
}
