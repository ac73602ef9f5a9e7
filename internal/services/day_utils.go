package services

import (
	"strings"
	"time"
	"unicode/utf8"
)

const calendarDateLayout = "2006-01-02"

// CalendarDate drops the time of day from value and returns its calendar date
// as midnight UTC. The Y/M/D are taken in value's own location.
func CalendarDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TodayAt returns the calendar date of now as observed in location.
func TodayAt(now time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return CalendarDate(now.In(location))
}

func ParseCalendarDate(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(calendarDateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

// ParseDateInput accepts a bare calendar date or an RFC 3339 timestamp and
// keeps only its calendar date, read in the timestamp's own offset.
func ParseDateInput(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := ParseCalendarDate(trimmed); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return CalendarDate(parsed), nil
}

func FormatCalendarDate(value time.Time) string {
	return CalendarDate(value).Format(calendarDateLayout)
}

func AddDays(value time.Time, days int) time.Time {
	return CalendarDate(value).AddDate(0, 0, days)
}

// DaysBetween returns to - from in whole calendar days.
func DaysBetween(from time.Time, to time.Time) int {
	return int(CalendarDate(to).Sub(CalendarDate(from)).Hours() / 24)
}

// TrimNotes caps value at MaxNotesLength characters.
func TrimNotes(value string) string {
	if utf8.RuneCountInString(value) <= MaxNotesLength {
		return value
	}
	return string([]rune(value)[:MaxNotesLength])
}
