package bot

import (
	"github.com/ARKTEEK/purrislav/announce"
)

// Bot doubles as the announcement engine's messenger.

// ResolveChannel checks that the channel exists and is reachable.
func (bot *Bot) ResolveChannel(channelID string) error {
	if _, err := bot.session.State.Channel(channelID); err == nil {
		return nil
	}

	_, err := bot.session.Channel(channelID)
	return err
}

// SendBirthdays posts one consolidated announcement embed to the channel.
func (bot *Bot) SendBirthdays(channelID string, entries []announce.Entry) error {
	_, err := bot.session.ChannelMessageSendEmbed(channelID, birthdayEmbed(entries))
	return err
}
