package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ARKTEEK/purrislav/announce"
)

const (
	colorGold   = 0xF1C40F
	colorGreen  = 0x57F287
	colorRed    = 0xED4245
	colorOrange = 0xE67E22
	colorBlue   = 0x3498DB
)

func birthdayEmbed(entries []announce.Entry) *discordgo.MessageEmbed {
	mentions := make([]string, len(entries))
	for i, entry := range entries {
		mentions[i] = fmt.Sprintf("<@%s> (%d years old)", entry.UserID, entry.Age)
	}

	return &discordgo.MessageEmbed{
		Title: "🎉 **Happy Birthday**!",
		Color: colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "📅 Birthdays Today:",
				Value: strings.Join(mentions, ", "),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Don't forget to set your birthdays!",
		},
	}
}

func birthdayInfoEmbed(formattedBirthday, nextCelebration string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎂 Birthday Information",
		Description: "Here's the birthday info you requested!",
		Color:       colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎉 Birthday:", Value: formattedBirthday},
			{Name: "📅 Next Celebration:", Value: nextCelebration},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "We're excited for the upcoming celebration!",
		},
	}
}

func birthdaySetEmbed(userID, date string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎉 Birthday Set Successfully!",
		Description: fmt.Sprintf("Birthday for <@%s> has been set to **%s**.", userID, date),
		Color:       colorGreen,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "We're excited for the celebration!",
		},
	}
}

func birthdayDeleteEmbed(userID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎉 Birthday Deleted Successfully!",
		Description: fmt.Sprintf("Birthday for <@%s> has been deleted.", userID),
		Color:       colorGreen,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "You can always set your birthday again!",
		},
	}
}

func errorEmbed(description, footer string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❗ Error Occurred",
		Description: description,
		Color:       colorRed,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footer,
		},
	}
}

func settingsEmbed(channelID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🗣 Announcements Channel Set!",
		Description: fmt.Sprintf("Announcements channel has been set to **<#%s>**.", channelID),
		Color:       colorGreen,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Announcements are going to be sent there!",
		},
	}
}

func emptyBirthdayListEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎉 No Birthdays Set!",
		Description: "It looks like there are no birthdays set for this guild yet.",
		Color:       colorOrange,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Set your birthdays and make the guild special!",
		},
	}
}

func birthdayListEmbed(page string, pageNum, totalPages int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎂 Birthday List",
		Description: page,
		Color:       colorBlue,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d", pageNum, totalPages),
		},
	}
}
