// Package dates contains pure calendar helpers for recurring birthdays.
package dates

import (
	"fmt"
	"time"
)

// MonthDay is a recurring calendar day without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// MonthDayOf extracts the recurring month/day from a full date.
func MonthDayOf(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// IsToday reports whether md falls on the same month and day as today.
func IsToday(md MonthDay, today time.Time) bool {
	return today.Month() == md.Month && today.Day() == md.Day
}

// DaysUntilNext returns the number of days from today until the next
// occurrence of md. The result is 0 when today is the occurrence day.
func DaysUntilNext(md MonthDay, today time.Time) int {
	if IsToday(md, today) {
		return 0
	}

	day := midnight(today)
	next := time.Date(day.Year(), md.Month, md.Day, 0, 0, 0, 0, day.Location())
	if !next.After(day) {
		next = time.Date(day.Year()+1, md.Month, md.Day, 0, 0, 0, 0, day.Location())
	}

	return int(next.Sub(day) / (24 * time.Hour))
}

// Age returns the number of whole years between birth and today,
// accounting for whether this year's birthday has happened yet.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()

	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}

	return age
}

// Ordinal appends the English ordinal suffix to a day number.
func Ordinal(n int) string {
	suffix := "th"
	if n < 11 || n > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// FormatLong renders a date like "March 5th, 2001".
func FormatLong(t time.Time) string {
	return fmt.Sprintf("%s %s, %d", t.Month().String(), Ordinal(t.Day()), t.Year())
}

// FormatMonthDay renders md compactly as "03-05".
func FormatMonthDay(md MonthDay) string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
