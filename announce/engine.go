// Package announce implements the birthday announcement engine and its
// recurring schedule.
//
// Each stored birthday cycles through two states per year: armed (not yet
// announced) and fired (announced). The engine announces today's armed
// birthdays, one message per guild, and lazily re-arms fired rows once the
// calendar has moved past their date.
package announce

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ARKTEEK/purrislav/dates"
	"github.com/ARKTEEK/purrislav/models"
)

// Store is the storage contract the engine consumes.
type Store interface {
	TodaysUnannounced(today time.Time) ([]models.Birthday, error)
	MarkAnnounced(ids []uint) error
	StaleAnnounced(today time.Time) ([]models.Birthday, error)
	ResetAnnounced(ids []uint) error
	AnnouncementChannel(guildID string) (channelID string, ok bool, err error)
}

// Messenger is the messaging-platform contract the engine consumes.
type Messenger interface {
	ResolveChannel(channelID string) error
	SendBirthdays(channelID string, entries []Entry) error
}

// Entry is one member named in a guild's announcement.
type Entry struct {
	UserID string
	Age    int
}

// GuildResult records the outcome of one guild's announcement attempt.
type GuildResult struct {
	GuildID   string
	Announced int
	Skipped   bool // no channel configured
	Err       error
}

// Report aggregates the outcome of one engine run. Failures are collected
// here rather than propagated, so one guild never blocks another.
type Report struct {
	Guilds []GuildResult
	Reset  int
}

// Engine performs one announcement pass per invocation.
type Engine struct {
	store Store
	msgr  Messenger
	log   *zap.Logger
}

// New creates an Engine over the given collaborators.
func New(store Store, msgr Messenger, log *zap.Logger) *Engine {
	return &Engine{store: store, msgr: msgr, log: log}
}

// Run executes one announcement pass for the given day: announce today's
// unannounced birthdays grouped by guild, then reset stale announced flags.
// The stale reset always runs, even when the initial scan fails. The
// returned error reports storage failures only; per-guild delivery failures
// are logged, recorded in the Report and retried on the next run.
func (e *Engine) Run(today time.Time) (Report, error) {
	var report Report

	due, scanErr := e.store.TodaysUnannounced(today)
	if scanErr != nil {
		e.log.Error("birthday scan failed", zap.Error(scanErr))
	}

	grouped := groupByGuild(due)
	for _, guildID := range sortedGuildIDs(grouped) {
		result := e.announceGuild(guildID, grouped[guildID], today)
		report.Guilds = append(report.Guilds, result)
	}

	reset, resetErr := e.resetStale(today)
	report.Reset = reset

	if scanErr != nil {
		return report, fmt.Errorf("scan birthdays: %w", scanErr)
	}
	if resetErr != nil {
		return report, fmt.Errorf("reset stale flags: %w", resetErr)
	}
	return report, nil
}

// announceGuild sends one consolidated message for the guild's birthdays
// and marks them announced only after a confirmed send. Any failure leaves
// the rows armed so the next run retries them.
func (e *Engine) announceGuild(guildID string, birthdays []models.Birthday, today time.Time) GuildResult {
	result := GuildResult{GuildID: guildID}

	channelID, ok, err := e.store.AnnouncementChannel(guildID)
	if err != nil {
		e.log.Error("channel lookup failed",
			zap.String("guild", guildID), zap.Error(err))
		result.Err = err
		return result
	}
	if !ok {
		e.log.Info("no announcement channel configured, skipping guild",
			zap.String("guild", guildID))
		result.Skipped = true
		return result
	}

	if err := e.msgr.ResolveChannel(channelID); err != nil {
		e.log.Error("announcement channel not resolvable",
			zap.String("guild", guildID),
			zap.String("channel", channelID),
			zap.Error(err))
		result.Err = err
		return result
	}

	entries := make([]Entry, len(birthdays))
	ids := make([]uint, len(birthdays))
	for i, birthday := range birthdays {
		entries[i] = Entry{
			UserID: birthday.UserID,
			Age:    dates.Age(birthday.Date(), today),
		}
		ids[i] = birthday.ID
	}

	if err := e.msgr.SendBirthdays(channelID, entries); err != nil {
		e.log.Error("announcement send failed",
			zap.String("guild", guildID),
			zap.String("channel", channelID),
			zap.Error(err))
		result.Err = err
		return result
	}

	if err := e.store.MarkAnnounced(ids); err != nil {
		e.log.Error("marking birthdays announced failed",
			zap.String("guild", guildID), zap.Error(err))
		result.Err = err
		return result
	}

	e.log.Info("announced birthdays",
		zap.String("guild", guildID), zap.Int("count", len(entries)))
	result.Announced = len(entries)
	return result
}

// resetStale re-arms rows announced in a prior cycle whose date no longer
// matches today.
func (e *Engine) resetStale(today time.Time) (int, error) {
	stale, err := e.store.StaleAnnounced(today)
	if err != nil {
		e.log.Error("stale flag scan failed", zap.Error(err))
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]uint, len(stale))
	for i, birthday := range stale {
		ids[i] = birthday.ID
	}

	if err := e.store.ResetAnnounced(ids); err != nil {
		e.log.Error("stale flag reset failed", zap.Error(err))
		return 0, err
	}

	e.log.Info("reset stale announced flags", zap.Int("count", len(ids)))
	return len(ids), nil
}

func groupByGuild(birthdays []models.Birthday) map[string][]models.Birthday {
	grouped := make(map[string][]models.Birthday)
	for _, birthday := range birthdays {
		grouped[birthday.GuildID] = append(grouped[birthday.GuildID], birthday)
	}
	return grouped
}

// sortedGuildIDs gives the run a stable guild order.
func sortedGuildIDs(grouped map[string][]models.Birthday) []string {
	ids := make([]string, 0, len(grouped))
	for guildID := range grouped {
		ids = append(ids, guildID)
	}
	sort.Strings(ids)
	return ids
}
