// Package dal is the storage layer for birthdays and guild settings.
//
// All access goes through Store, which serializes individual statements
// behind a mutex. The lock is scoped to a single call so it is never held
// across discord I/O.
package dal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ARKTEEK/purrislav/models"
)

// Store wraps the database handle. Callers never obtain the raw connection.
type Store struct {
	mu sync.Mutex
	db *gorm.DB
}

// Open connects to the SQLite database at path and migrates the schema.
func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	log.Info("connected to database", zap.String("path", path))

	if err := db.AutoMigrate(&models.Birthday{}, &models.GuildSettings{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	log.Info("migrated database")

	return &Store{db: db}, nil
}

// UpsertBirthday inserts or overwrites the birthday for (guild, user).
// Overwriting always clears the announced flag so a re-set birthday is
// eligible for announcement again.
func (s *Store) UpsertBirthday(userID, guildID string, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"year", "month", "day", "announced"}),
	}).Create(&models.Birthday{
		UserID:    userID,
		GuildID:   guildID,
		Year:      date.Year(),
		Month:     uint(date.Month()),
		Day:       uint(date.Day()),
		Announced: false,
	}).Error
}

// GetBirthday returns the birthday for (guild, user), or nil when none is set.
func (s *Store) GetBirthday(userID, guildID string) (*models.Birthday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var birthday models.Birthday
	err := s.db.Where(&models.Birthday{
		UserID:  userID,
		GuildID: guildID,
	}).Take(&birthday).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &birthday, nil
}

// DeleteBirthday removes the birthday for (guild, user). The returned bool
// reports whether a row existed.
func (s *Store) DeleteBirthday(userID, guildID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.Unscoped().Where(&models.Birthday{
		UserID:  userID,
		GuildID: guildID,
	}).Delete(&models.Birthday{})

	return result.RowsAffected > 0, result.Error
}

// ListBirthdays returns every birthday stored for the guild.
func (s *Store) ListBirthdays(guildID string) ([]models.Birthday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var birthdays []models.Birthday
	err := s.db.Where(&models.Birthday{GuildID: guildID}).Find(&birthdays).Error
	return birthdays, err
}

// TodaysUnannounced returns every birthday falling on today's month and day
// that has not been announced yet this year.
func (s *Store) TodaysUnannounced(today time.Time) ([]models.Birthday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var birthdays []models.Birthday
	err := s.db.
		Where("month = ? AND day = ? AND announced = ?",
			uint(today.Month()), uint(today.Day()), false).
		Find(&birthdays).Error
	return birthdays, err
}

// MarkAnnounced sets the announced flag on the given rows. An empty id set
// is a no-op.
func (s *Store) MarkAnnounced(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Birthday{}).
		Where("id IN ?", ids).
		Update("announced", true).Error
}

// StaleAnnounced returns rows still flagged announced whose month/day no
// longer matches today, i.e. announced in a prior cycle and due for reset.
func (s *Store) StaleAnnounced(today time.Time) ([]models.Birthday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var birthdays []models.Birthday
	err := s.db.
		Where("announced = ? AND NOT (month = ? AND day = ?)",
			true, uint(today.Month()), uint(today.Day())).
		Find(&birthdays).Error
	return birthdays, err
}

// ResetAnnounced clears the announced flag on the given rows. An empty id
// set is a no-op.
func (s *Store) ResetAnnounced(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&models.Birthday{}).
		Where("id IN ?", ids).
		Update("announced", false).Error
}

// UpsertAnnouncementChannel inserts or updates the guild's announcement channel.
func (s *Store) UpsertAnnouncementChannel(guildID, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"announce_channel_id"}),
	}).Create(&models.GuildSettings{
		GuildID:           guildID,
		AnnounceChannelID: channelID,
	}).Error
}

// AnnouncementChannel returns the guild's announcement channel id. The bool
// is false when the guild has no channel configured.
func (s *Store) AnnouncementChannel(guildID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings models.GuildSettings
	err := s.db.Where(&models.GuildSettings{GuildID: guildID}).Take(&settings).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if settings.AnnounceChannelID == "" {
		return "", false, nil
	}

	return settings.AnnounceChannelID, true, nil
}
