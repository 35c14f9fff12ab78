package bot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ARKTEEK/purrislav/colors"
	"github.com/ARKTEEK/purrislav/dates"
	"github.com/ARKTEEK/purrislav/discordutils"
	"github.com/ARKTEEK/purrislav/models"
)

const listPageSize = 5

// Birthday dispatches the birthday subcommands.
func (bot *Bot) Birthday(i *discordgo.InteractionCreate) {
	if err := discordutils.AckInteraction(i.Interaction, bot.session); err != nil {
		bot.log.Warn("failed to ack interaction", zap.Error(err))
		return
	}

	sub := i.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "set":
		bot.birthdaySet(i, sub)
	case "info":
		bot.birthdayInfo(i, sub)
	case "delete":
		bot.birthdayDelete(i, sub)
	case "list":
		bot.birthdayList(i)
	}
}

func (bot *Bot) birthdaySet(
	i *discordgo.InteractionCreate,
	sub *discordgo.ApplicationCommandInteractionDataOption,
) {
	options := subOptionMap(sub)

	rawDate := options["date"].StringValue()
	date, err := time.Parse(birthdayFormat, rawDate)
	if err != nil {
		bot.replyEmbed(i, errorEmbed(
			fmt.Sprintf(
				"%v is not a valid date. Please use the format **%v**.",
				rawDate,
				birthdayFormatDisplay,
			),
			"Example: "+birthdayFormatExample,
		))
		return
	}

	user := targetUser(i, options)

	if err := bot.store.UpsertBirthday(user.ID, i.GuildID, date); err != nil {
		bot.log.Error("failed to save birthday",
			zap.String("guild", i.GuildID),
			zap.String("user", user.ID),
			zap.Error(err))
		bot.replyEmbed(i, errorEmbed(
			"Error while setting the birthday.",
			"Please try again later.",
		))
		return
	}

	bot.replyEmbed(i, birthdaySetEmbed(user.ID, rawDate))
}

func (bot *Bot) birthdayInfo(
	i *discordgo.InteractionCreate,
	sub *discordgo.ApplicationCommandInteractionDataOption,
) {
	user := targetUser(i, subOptionMap(sub))

	birthday, err := bot.store.GetBirthday(user.ID, i.GuildID)
	if err != nil {
		bot.log.Error("failed to look up birthday",
			zap.String("guild", i.GuildID),
			zap.String("user", user.ID),
			zap.Error(err))
		bot.replyEmbed(i, errorEmbed(
			"Error retrieving birthday.",
			"Please try again later.",
		))
		return
	}
	if birthday == nil {
		bot.replyEmbed(i, errorEmbed(
			fmt.Sprintf("No birthday set for <@%s>.", user.ID),
			"You can set a birthday with /birthday set",
		))
		return
	}

	today := time.Now().UTC()
	daysUntil := dates.DaysUntilNext(dates.MonthDayOf(birthday.Date()), today)

	var nextCelebration string
	if daysUntil == 0 {
		nextCelebration = "Today! 🎉"
	} else {
		nextCelebration = fmt.Sprintf(
			"In %d days (%s)!",
			daysUntil,
			humanize.Time(today.AddDate(0, 0, daysUntil)),
		)
	}

	bot.replyEmbed(i, birthdayInfoEmbed(
		dates.FormatLong(birthday.Date()),
		nextCelebration,
	))
}

func (bot *Bot) birthdayDelete(
	i *discordgo.InteractionCreate,
	sub *discordgo.ApplicationCommandInteractionDataOption,
) {
	user := targetUser(i, subOptionMap(sub))

	deleted, err := bot.store.DeleteBirthday(user.ID, i.GuildID)
	if err != nil {
		bot.log.Error("failed to delete birthday",
			zap.String("guild", i.GuildID),
			zap.String("user", user.ID),
			zap.Error(err))
		bot.replyEmbed(i, errorEmbed(
			"Error while deleting the birthday.",
			"Please try again later.",
		))
		return
	}
	if !deleted {
		bot.replyEmbed(i, errorEmbed(
			fmt.Sprintf("No birthday found for <@%s>.", user.ID),
			"Birthday was not set.",
		))
		return
	}

	bot.replyEmbed(i, birthdayDeleteEmbed(user.ID))
}

func (bot *Bot) birthdayList(i *discordgo.InteractionCreate) {
	birthdays, err := bot.store.ListBirthdays(i.GuildID)
	if err != nil {
		bot.log.Error("failed to list birthdays",
			zap.String("guild", i.GuildID), zap.Error(err))
		bot.replyEmbed(i, errorEmbed(
			"Error while getting the birthdays.",
			"Please try again later.",
		))
		return
	}
	if len(birthdays) == 0 {
		bot.replyEmbed(i, emptyBirthdayListEmbed())
		return
	}

	today := time.Now().UTC()
	sort.Slice(birthdays, func(a, b int) bool {
		return dates.DaysUntilNext(dates.MonthDayOf(birthdays[a].Date()), today) <
			dates.DaysUntilNext(dates.MonthDayOf(birthdays[b].Date()), today)
	})

	pages := birthdayListPages(birthdays, today)
	bot.startListSession(i, pages)
}

func birthdayListPages(birthdays []models.Birthday, today time.Time) []string {
	var pages []string
	for start := 0; start < len(birthdays); start += listPageSize {
		end := start + listPageSize
		if end > len(birthdays) {
			end = len(birthdays)
		}

		var page strings.Builder
		for _, birthday := range birthdays[start:end] {
			page.WriteString(fmt.Sprintf(
				"<@%s>: %s (%d years old)\n",
				birthday.UserID,
				dates.FormatLong(birthday.Date()),
				dates.Age(birthday.Date(), today),
			))
		}
		pages = append(pages, page.String())
	}
	return pages
}

// Settings handles guild configuration subcommands.
func (bot *Bot) Settings(i *discordgo.InteractionCreate) {
	if err := discordutils.AckInteraction(i.Interaction, bot.session); err != nil {
		bot.log.Warn("failed to ack interaction", zap.Error(err))
		return
	}

	guild, err := bot.session.State.Guild(i.GuildID)
	if err != nil {
		bot.log.Error("interaction from unknown guild",
			zap.String("guild", i.GuildID), zap.Error(err))
		return
	}

	if !discordutils.MemberHasPermission(guild, i.Member, discordgo.PermissionManageChannels) {
		bot.reply(i, "Nice try.")
		return
	}

	sub := i.ApplicationCommandData().Options[0]
	if sub.Name != "announcements" {
		return
	}

	channel := sub.Options[0].ChannelValue(nil)

	if err := bot.store.UpsertAnnouncementChannel(i.GuildID, channel.ID); err != nil {
		bot.log.Error("failed to set announcement channel",
			zap.String("guild", i.GuildID),
			zap.String("channel", channel.ID),
			zap.Error(err))
		bot.replyEmbed(i, errorEmbed(
			"Error while setting the announcements channel.",
			"Please try again later.",
		))
		return
	}

	bot.replyEmbed(i, settingsEmbed(channel.ID))
}

// Color creates or recolors the caller's personal color role.
func (bot *Bot) Color(i *discordgo.InteractionCreate) {
	if err := discordutils.AckInteraction(i.Interaction, bot.session); err != nil {
		bot.log.Warn("failed to ack interaction", zap.Error(err))
		return
	}

	code := i.ApplicationCommandData().Options[0].StringValue()

	r, g, b, err := colors.Parse(code)
	if err != nil {
		bot.reply(i, fmt.Sprintf("❌ Error: %v", err))
		return
	}

	userID := i.Member.User.ID
	hexCode := colors.Normalize(r, g, b)
	decimal := colors.Decimal(r, g, b)

	role, err := bot.findColorRole(i.GuildID, userID)
	if err != nil {
		bot.log.Error("failed to look up color role",
			zap.String("guild", i.GuildID),
			zap.String("user", userID),
			zap.Error(err))
		bot.reply(i, "❌ Error: could not look up your role, please try again later.")
		return
	}

	if role != nil {
		_, err = bot.session.GuildRoleEdit(i.GuildID, role.ID, &discordgo.RoleParams{
			Name:  role.Name,
			Color: &decimal,
		})
		if err != nil {
			bot.log.Error("failed to recolor role",
				zap.String("guild", i.GuildID),
				zap.String("role", role.ID),
				zap.Error(err))
			bot.reply(i, "❌ Error: could not update your role, please try again later.")
			return
		}

		bot.reply(i, fmt.Sprintf(
			"✅ Successfully updated the color of your role to '#%s'.",
			hexCode,
		))
		return
	}

	mentionable := false
	newRole, err := bot.session.GuildRoleCreate(i.GuildID, &discordgo.RoleParams{
		Name:        userID,
		Color:       &decimal,
		Mentionable: &mentionable,
	})
	if err == nil {
		err = bot.session.GuildMemberRoleAdd(i.GuildID, userID, newRole.ID)
	}
	if err != nil {
		bot.log.Error("failed to create color role",
			zap.String("guild", i.GuildID),
			zap.String("user", userID),
			zap.Error(err))
		bot.reply(i, "❌ Error: could not create your role, please try again later.")
		return
	}

	bot.reply(i, fmt.Sprintf(
		"✅ Created a new role with color '#%s' and assigned it to you.",
		hexCode,
	))
}

// findColorRole returns the member's personal color role, named after their
// user id, or nil if they don't have one yet.
func (bot *Bot) findColorRole(guildID, userID string) (*discordgo.Role, error) {
	roles, err := bot.session.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}

	member, err := bot.session.GuildMember(guildID, userID)
	if err != nil {
		return nil, err
	}

	memberRoles := make(map[string]bool, len(member.Roles))
	for _, roleID := range member.Roles {
		memberRoles[roleID] = true
	}

	for _, role := range roles {
		if role.Name == userID && memberRoles[role.ID] {
			return role, nil
		}
	}

	return nil, nil
}

func (bot *Bot) reply(i *discordgo.InteractionCreate, content string) {
	if err := discordutils.SendFollowup(content, i.Interaction, bot.session); err != nil {
		bot.log.Warn("failed to send followup", zap.Error(err))
	}
}

func (bot *Bot) replyEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := discordutils.SendFollowupEmbed(embed, i.Interaction, bot.session); err != nil {
		bot.log.Warn("failed to send followup", zap.Error(err))
	}
}

func subOptionMap(
	sub *discordgo.ApplicationCommandInteractionDataOption,
) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := make(
		map[string]*discordgo.ApplicationCommandInteractionDataOption,
		len(sub.Options),
	)
	for _, opt := range sub.Options {
		options[opt.Name] = opt
	}
	return options
}

func targetUser(
	i *discordgo.InteractionCreate,
	options map[string]*discordgo.ApplicationCommandInteractionDataOption,
) *discordgo.User {
	if option, ok := options["user"]; ok {
		return option.UserValue(nil)
	}
	return i.Member.User
}
