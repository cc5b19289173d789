package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/common"
)

const minutesPerDay = 24 * 60

// Class is a recurring timetable entry.
type Class struct {
	Name        string         `json:"name"`
	Days        []time.Weekday `json:"days"`
	StartMinute int            `json:"start_minute"`
	EndMinute   int            `json:"end_minute"`
	Building    string         `json:"building,omitempty"`
	Room        string         `json:"room,omitempty"`
	Notes       string         `json:"notes,omitempty"`
}

func (Class) Kind() Kind { return KindClasses }

func (c Class) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: class name is empty", common.ErrInvalidRecord)
	}
	if c.StartMinute < 0 || c.EndMinute > minutesPerDay || c.StartMinute >= c.EndMinute {
		return fmt.Errorf("%w: class time range %d-%d", common.ErrInvalidRecord, c.StartMinute, c.EndMinute)
	}
	for _, d := range c.Days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d", common.ErrInvalidRecord, d)
		}
	}
	return nil
}

// Location joins building and room, skipping blanks.
func (c Class) Location() string {
	return strings.TrimSpace(strings.Join([]string{c.Building, c.Room}, " "))
}

func (c Class) OccursOn(d time.Weekday) bool {
	return slices.Contains(c.Days, d)
}

// TimeRange renders "09:00-10:30".
func (c Class) TimeRange() string {
	return FormatClock(c.StartMinute) + "-" + FormatClock(c.EndMinute)
}

// FormatClock renders minutes from midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClock parses HH:MM into minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: time %q", common.ErrInvalidRecord, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// ParseDays reads a comma separated day list. Entries are either
// three-letter names ("mon") or numbers 1-7 with 1 meaning Sunday.
func ParseDays(s string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if len(part) > 3 {
			part = part[:3]
		}
		if d, ok := weekdayNames[part]; ok {
			days = append(days, d)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > 7 {
			return nil, fmt.Errorf("%w: day %q", common.ErrInvalidRecord, part)
		}
		days = append(days, time.Weekday(n-1))
	}
	slices.Sort(days)
	return slices.Compact(days), nil
}

// FormatDays renders days as "Mon, Wed".
func FormatDays(days []time.Weekday) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ", ")
}

// ClassesOn selects classes held on the given weekday.
func ClassesOn(d time.Weekday) Predicate[Class] {
	return func(r *Record[Class]) bool { return r.Payload.OccursOn(d) }
}

// SortClasses orders by start time.
func SortClasses(recs []*Record[Class]) {
	slices.SortStableFunc(recs, func(a, b *Record[Class]) int {
		return a.Payload.StartMinute - b.Payload.StartMinute
	})
}
