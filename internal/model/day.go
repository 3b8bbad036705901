package model

import (
	"fmt"
	"time"
)

// dayLayout is the canonical on-disk form. Lexicographic order of the
// string equals chronological order, which every range filter relies on.
const dayLayout = "2006-01-02"

// Day is a civil calendar day without time or zone.
type Day string

// ParseDay validates s as a YYYY-MM-DD calendar day.
func ParseDay(s string) (Day, error) {
	if _, err := time.Parse(dayLayout, s); err != nil {
		return "", fmt.Errorf("parse day %q: %w", s, err)
	}
	return Day(s), nil
}

// DayOf truncates t to its calendar day.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

func (d Day) String() string { return string(d) }

// IsZero reports whether the day is unset.
func (d Day) IsZero() bool { return d == "" }

// Valid reports whether the day is a well-formed YYYY-MM-DD date.
func (d Day) Valid() bool {
	_, err := time.Parse(dayLayout, string(d))
	return err == nil
}

// Time returns the day at midnight UTC.
func (d Day) Time() time.Time {
	t, _ := time.Parse(dayLayout, string(d))
	return t
}

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Label renders the day as DD/MM/YYYY for chart and history labels.
func (d Day) Label() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("02/01/2006")
}

// WeekBounds returns the Monday and Sunday of the week containing d.
// Weeks start on Monday; a Sunday belongs to the preceding Monday's week.
func (d Day) WeekBounds() (monday, sunday Day) {
	t := d.Time()
	diff := int(t.Weekday()) - int(time.Monday)
	if t.Weekday() == time.Sunday {
		diff = 6
	}
	monday = DayOf(t.AddDate(0, 0, -diff))
	sunday = monday.AddDays(6)
	return monday, sunday
}
