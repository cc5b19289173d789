package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/common"
)

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	}
	return "Unknown"
}

// ParsePriority accepts names or 0/1/2. Empty input means Medium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, nil
	case "low", "0":
		return PriorityLow, nil
	case "medium", "1":
		return PriorityMedium, nil
	case "high", "2":
		return PriorityHigh, nil
	}
	return PriorityMedium, fmt.Errorf("%w: priority %q", common.ErrInvalidRecord, s)
}

// Assignment is coursework with a due date.
type Assignment struct {
	Title            string   `json:"title"`
	Course           string   `json:"course,omitempty"`
	DueDate          int64    `json:"due_date"`
	Priority         Priority `json:"priority"`
	Notes            string   `json:"notes,omitempty"`
	Completed        bool     `json:"completed"`
	LastReminderSent int64    `json:"last_reminder_sent,omitempty"`
}

func (Assignment) Kind() Kind { return KindAssignments }

func (a Assignment) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: assignment title is empty", common.ErrInvalidRecord)
	}
	if a.Priority < PriorityLow || a.Priority > PriorityHigh {
		return fmt.Errorf("%w: priority %d", common.ErrInvalidRecord, a.Priority)
	}
	return nil
}

// IsOverdue reports an unfinished assignment whose due date has passed.
func (a Assignment) IsOverdue(now int64) bool {
	return !a.Completed && a.DueDate > 0 && a.DueDate < now
}

func IncompleteAssignments() Predicate[Assignment] {
	return func(r *Record[Assignment]) bool { return !r.Payload.Completed }
}

// AssignmentsDueBetween selects due dates in [start, end].
func AssignmentsDueBetween(start, end int64) Predicate[Assignment] {
	return func(r *Record[Assignment]) bool {
		return r.Payload.DueDate >= start && r.Payload.DueDate <= end
	}
}

// SortAssignments orders by due date.
func SortAssignments(recs []*Record[Assignment]) {
	slices.SortStableFunc(recs, func(a, b *Record[Assignment]) int {
		return cmp.Compare(a.Payload.DueDate, b.Payload.DueDate)
	})
}

// UpcomingWindow is how far ahead of now an assignment counts as upcoming.
const UpcomingWindow = 7 * 24 * time.Hour

// UpcomingAssignments returns at most limit open assignments due within
// UpcomingWindow of now, soonest first.
func UpcomingAssignments(recs []*Record[Assignment], now int64, limit int) []*Record[Assignment] {
	out := Filter(recs, IncompleteAssignments(), AssignmentsDueBetween(now, now+UpcomingWindow.Milliseconds()))
	SortAssignments(out)
	return Limit(out, limit)
}
