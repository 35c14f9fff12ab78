package dal

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	store, err := Open(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUpsertBirthdayOverwritesAndRearms(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpsertBirthday("1", "9", date(2001, time.March, 5)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	birthday, err := store.GetBirthday("1", "9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if birthday == nil {
		t.Fatal("birthday not found after upsert")
	}

	if err := store.MarkAnnounced([]uint{birthday.ID}); err != nil {
		t.Fatalf("mark: %v", err)
	}

	// Re-setting the birthday must overwrite the date and clear the flag.
	if err := store.UpsertBirthday("1", "9", date(1999, time.June, 15)); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	birthday, err = store.GetBirthday("1", "9")
	if err != nil {
		t.Fatalf("get after re-set: %v", err)
	}
	if birthday.Year != 1999 || birthday.Month != 6 || birthday.Day != 15 {
		t.Fatalf("date not overwritten: %+v", birthday)
	}
	if birthday.Announced {
		t.Fatal("announced flag not cleared by re-set")
	}

	birthdays, err := store.ListBirthdays("9")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(birthdays) != 1 {
		t.Fatalf("want 1 row for the (guild, user) pair, got %d", len(birthdays))
	}
}

func TestSameUserInTwoGuilds(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpsertBirthday("1", "9", date(2001, time.March, 5)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.UpsertBirthday("1", "10", date(2001, time.March, 5)); err != nil {
		t.Fatalf("upsert in second guild: %v", err)
	}

	for _, guildID := range []string{"9", "10"} {
		birthday, err := store.GetBirthday("1", guildID)
		if err != nil {
			t.Fatalf("get in guild %s: %v", guildID, err)
		}
		if birthday == nil {
			t.Fatalf("birthday missing in guild %s", guildID)
		}
	}
}

func TestGetBirthdayNotFound(t *testing.T) {
	store := openTestStore(t)

	birthday, err := store.GetBirthday("1", "9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if birthday != nil {
		t.Fatalf("want nil, got %+v", birthday)
	}
}

func TestDeleteBirthday(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpsertBirthday("1", "9", date(2001, time.March, 5)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	deleted, err := store.DeleteBirthday("1", "9")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("want deleted = true")
	}

	deleted, err = store.DeleteBirthday("1", "9")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Fatal("second delete should report nothing removed")
	}

	// Setting again after a delete must work.
	if err := store.UpsertBirthday("1", "9", date(2001, time.March, 5)); err != nil {
		t.Fatalf("upsert after delete: %v", err)
	}
	birthday, err := store.GetBirthday("1", "9")
	if err != nil || birthday == nil {
		t.Fatalf("get after re-insert: %v, %+v", err, birthday)
	}
}

func TestTodaysUnannounced(t *testing.T) {
	store := openTestStore(t)
	today := date(2024, time.March, 5)

	if err := store.UpsertBirthday("1", "9", date(2001, time.March, 5)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.UpsertBirthday("2", "9", date(1999, time.March, 5)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.UpsertBirthday("3", "9", date(2000, time.June, 15)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	due, err := store.TodaysUnannounced(today)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("want 2 due birthdays, got %d", len(due))
	}

	// Announced rows disappear from the due set.
	if err := store.MarkAnnounced([]uint{due[0].ID}); err != nil {
		t.Fatalf("mark: %v", err)
	}

	due, err = store.TodaysUnannounced(today)
	if err != nil {
		t.Fatalf("query after mark: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("want 1 due birthday after mark, got %d", len(due))
	}
}

func TestMarkAnnouncedIdempotent(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpsertBirthday("1", "9", date(2001, time.March, 5)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	birthday, _ := store.GetBirthday("1", "9")
	ids := []uint{birthday.ID}

	if err := store.MarkAnnounced(ids); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := store.MarkAnnounced(ids); err != nil {
		t.Fatalf("second mark: %v", err)
	}

	birthday, _ = store.GetBirthday("1", "9")
	if !birthday.Announced {
		t.Fatal("want announced = true")
	}

	if err := store.MarkAnnounced(nil); err != nil {
		t.Fatalf("empty mark should be a no-op, got %v", err)
	}
}

func TestStaleAnnouncedAndReset(t *testing.T) {
	store := openTestStore(t)

	if err := store.UpsertBirthday("1", "9", date(2001, time.March, 5)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	birthday, _ := store.GetBirthday("1", "9")
	if err := store.MarkAnnounced([]uint{birthday.ID}); err != nil {
		t.Fatalf("mark: %v", err)
	}

	// Still today: not stale.
	stale, err := store.StaleAnnounced(date(2024, time.March, 5))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(stale) != 0 {
		t.Fatalf("want no stale rows on the birthday itself, got %d", len(stale))
	}

	// The day after: stale and due for reset.
	stale, err = store.StaleAnnounced(date(2024, time.March, 6))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(stale) != 1 {
		t.Fatalf("want 1 stale row, got %d", len(stale))
	}

	if err := store.ResetAnnounced([]uint{stale[0].ID}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := store.ResetAnnounced([]uint{stale[0].ID}); err != nil {
		t.Fatalf("second reset should be a no-op, got %v", err)
	}

	birthday, _ = store.GetBirthday("1", "9")
	if birthday.Announced {
		t.Fatal("want announced = false after reset")
	}
}

func TestAnnouncementChannel(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.AnnouncementChannel("9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("want no channel before configuration")
	}

	if err := store.UpsertAnnouncementChannel("9", "chan-1"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	channelID, ok, err := store.AnnouncementChannel("9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || channelID != "chan-1" {
		t.Fatalf("want chan-1, got %q (ok=%v)", channelID, ok)
	}

	// Overwrite keeps a single row per guild.
	if err := store.UpsertAnnouncementChannel("9", "chan-2"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	channelID, ok, err = store.AnnouncementChannel("9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || channelID != "chan-2" {
		t.Fatalf("want chan-2, got %q (ok=%v)", channelID, ok)
	}
}
