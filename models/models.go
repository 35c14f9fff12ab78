package models

import (
	"time"

	"gorm.io/gorm"
)

// Birthday represents a member's stored birth date within one guild.
// At most one row exists per (guild, user) pair.
type Birthday struct {
	gorm.Model
	UserID    string `gorm:"uniqueIndex:idx_guild_user"`
	GuildID   string `gorm:"uniqueIndex:idx_guild_user"`
	Year      int
	Month     uint
	Day       uint
	Announced bool
}

// Date reconstructs the stored birth date at midnight UTC.
func (b Birthday) Date() time.Time {
	return time.Date(b.Year, time.Month(b.Month), int(b.Day), 0, 0, 0, 0, time.UTC)
}

// GuildSettings holds per-guild configuration.
// An empty AnnounceChannelID means no announcement channel is set.
type GuildSettings struct {
	gorm.Model
	GuildID           string `gorm:"uniqueIndex"`
	AnnounceChannelID string
}
