package discordutils

import (
	"github.com/bwmarrin/discordgo"
)

// MemberHasPermission returns true if the given member holds the permission
// through any of their roles. Administrator implies every permission.
func MemberHasPermission(guild *discordgo.Guild, member *discordgo.Member, permission int64) bool {
	guildRoles := make(map[string]*discordgo.Role)
	for _, role := range guild.Roles {
		guildRoles[role.ID] = role
	}

	for _, roleID := range member.Roles {
		if role, ok := guildRoles[roleID]; ok {
			if RoleAllowsPermission(role, permission) {
				return true
			}
		}
	}

	return guild.OwnerID == member.User.ID
}

// RoleAllowsPermission returns true if the given role grants the permission.
func RoleAllowsPermission(role *discordgo.Role, permission int64) bool {
	if role.Permissions&discordgo.PermissionAdministrator > 0 {
		return true
	}
	return role.Permissions&permission > 0
}

// AckInteraction sends a deferred response for the given interaction.
func AckInteraction(
	interaction *discordgo.Interaction,
	session *discordgo.Session,
) error {
	return session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// SendFollowup creates a followup message with the given content.
func SendFollowup(
	content string,
	interaction *discordgo.Interaction,
	session *discordgo.Session,
) error {
	_, err := session.FollowupMessageCreate(
		interaction,
		true,
		&discordgo.WebhookParams{
			Content: content,
		},
	)
	return err
}

// SendFollowupEmbed creates a followup message carrying a single embed and
// returns it so callers can attach component state to the message id.
func SendFollowupEmbed(
	embed *discordgo.MessageEmbed,
	interaction *discordgo.Interaction,
	session *discordgo.Session,
) (*discordgo.Message, error) {
	return session.FollowupMessageCreate(
		interaction,
		true,
		&discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	)
}

// SendFollowupEmbedWithComponents is SendFollowupEmbed plus action rows.
func SendFollowupEmbedWithComponents(
	embed *discordgo.MessageEmbed,
	components []discordgo.MessageComponent,
	interaction *discordgo.Interaction,
	session *discordgo.Session,
) (*discordgo.Message, error) {
	return session.FollowupMessageCreate(
		interaction,
		true,
		&discordgo.WebhookParams{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	)
}
