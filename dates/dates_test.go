package dates

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysUntilNext(t *testing.T) {
	today := day(2024, time.March, 5)

	cases := []struct {
		name string
		md   MonthDay
		want int
	}{
		{"same day", MonthDay{time.March, 5}, 0},
		{"tomorrow", MonthDay{time.March, 6}, 1},
		{"yesterday wraps to next year", MonthDay{time.March, 4}, 364},
		{"end of year", MonthDay{time.December, 31}, 301},
		{"start of next year", MonthDay{time.January, 1}, 302},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysUntilNext(tc.md, today); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestDaysUntilNextZeroOnlyToday(t *testing.T) {
	// Zero days iff the month/day matches today, on every day of a sample
	// year (crossing the leap day).
	md := MonthDay{time.June, 15}
	today := day(2024, time.January, 1)

	for i := 0; i < 366; i++ {
		got := DaysUntilNext(md, today)
		if (got == 0) != IsToday(md, today) {
			t.Fatalf("on %v: DaysUntilNext = %d, IsToday = %v",
				today.Format("2006-01-02"), got, IsToday(md, today))
		}
		today = today.AddDate(0, 0, 1)
	}
}

func TestAge(t *testing.T) {
	birth := day(2001, time.March, 5)

	cases := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"day before birthday", day(2024, time.March, 4), 22},
		{"on birthday", day(2024, time.March, 5), 23},
		{"day after birthday", day(2024, time.March, 6), 23},
		{"start of year", day(2024, time.January, 1), 22},
		{"end of year", day(2024, time.December, 31), 23},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Age(birth, tc.today); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestAgeIncrementsOncePerYear(t *testing.T) {
	birth := day(2001, time.March, 5)
	today := day(2023, time.March, 6)
	prev := Age(birth, today)
	increments := 0

	for i := 0; i < 365; i++ {
		today = today.AddDate(0, 0, 1)
		age := Age(birth, today)
		switch age - prev {
		case 0:
		case 1:
			increments++
			if !IsToday(MonthDayOf(birth), today) {
				t.Fatalf("age incremented on %v, not the birthday",
					today.Format("2006-01-02"))
			}
		default:
			t.Fatalf("age jumped from %d to %d on %v",
				prev, age, today.Format("2006-01-02"))
		}
		prev = age
	}

	if increments != 1 {
		t.Fatalf("want exactly one increment over the year, got %d", increments)
	}
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 31: "31st",
	}

	for n, want := range cases {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d): want %q, got %q", n, want, got)
		}
	}
}

func TestFormatLong(t *testing.T) {
	got := FormatLong(day(2001, time.March, 5))
	if got != "March 5th, 2001" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatMonthDay(t *testing.T) {
	got := FormatMonthDay(MonthDay{time.March, 5})
	if got != "03-05" {
		t.Fatalf("got %q", got)
	}
}
