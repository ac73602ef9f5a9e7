package services

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestCalendarDateUsesOwnLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	value := time.Date(2025, 3, 10, 1, 30, 0, 0, tokyo)

	day := CalendarDate(value)
	if got := day.Format(time.RFC3339); got != "2025-03-10T00:00:00Z" {
		t.Fatalf("expected 2025-03-10 midnight UTC, got %s", got)
	}
}

func TestTodayAtReadsDateInLocation(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*3600)

	assertDay(t, "today in tokyo", TodayAt(now, tokyo), "2025-03-11")
	assertDay(t, "today without location", TodayAt(now, nil), "2025-03-10")
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	from := time.Date(2025, 3, 29, 12, 0, 0, 0, berlin)
	to := time.Date(2025, 3, 31, 0, 30, 0, 0, berlin)
	if got := DaysBetween(from, to); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}
}

func TestParseDateInput(t *testing.T) {
	cases := map[string]string{
		"2025-03-10":                "2025-03-10",
		" 2025-03-10 ":              "2025-03-10",
		"2025-03-10T23:00:00Z":      "2025-03-10",
		"2025-03-10T01:00:00+09:00": "2025-03-10",
	}
	for raw, expected := range cases {
		parsed, err := ParseDateInput(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		assertDay(t, raw, parsed, expected)
	}

	for _, raw := range []string{"", "10/03/2025", "2025-02-30"} {
		if _, err := ParseDateInput(raw); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", raw, err)
		}
	}
}

func TestTrimNotesCapsLength(t *testing.T) {
	short := "fine"
	if TrimNotes(short) != short {
		t.Fatal("expected short notes to be unchanged")
	}
	long := make([]byte, MaxNotesLength+10)
	for index := range long {
		long[index] = 'a'
	}
	if got := len(TrimNotes(string(long))); got != MaxNotesLength {
		t.Fatalf("expected %d characters, got %d", MaxNotesLength, got)
	}
}

func TestTrimNotesKeepsMultibyteCharactersWhole(t *testing.T) {
	long := strings.Repeat("é", MaxNotesLength+1)
	trimmed := TrimNotes(long)
	if !utf8.ValidString(trimmed) {
		t.Fatal("expected truncated notes to stay valid UTF-8")
	}
	if got := utf8.RuneCountInString(trimmed); got != MaxNotesLength {
		t.Fatalf("expected %d characters, got %d", MaxNotesLength, got)
	}
}
