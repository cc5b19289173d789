package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/common"
)

// Task is a free-form to-do item.
type Task struct {
	Title     string   `json:"title"`
	DueDate   *int64   `json:"due_date,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Completed bool     `json:"completed"`
}

func (Task) Kind() Kind { return KindTasks }

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: task title is empty", common.ErrInvalidRecord)
	}
	return nil
}

func (t Task) HasDueDate() bool { return t.DueDate != nil }

// DueOn reports whether the task is due on day's calendar date in day's
// location.
func (t Task) DueOn(day time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	due := time.UnixMilli(*t.DueDate).In(day.Location())
	y1, m1, d1 := due.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ParseTags splits a comma separated tag list, dropping blanks.
func ParseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// TasksForDay selects tasks without a due date or due on day.
func TasksForDay(day time.Time) Predicate[Task] {
	return func(r *Record[Task]) bool {
		return !r.Payload.HasDueDate() || r.Payload.DueOn(day)
	}
}

func IncompleteTasks() Predicate[Task] {
	return func(r *Record[Task]) bool { return !r.Payload.Completed }
}

// SortTasks puts open tasks first, newest first within each group.
func SortTasks(recs []*Record[Task]) {
	slices.SortStableFunc(recs, func(a, b *Record[Task]) int {
		if a.Payload.Completed != b.Payload.Completed {
			if a.Payload.Completed {
				return 1
			}
			return -1
		}
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
}

// RecentTasks returns at most limit open tasks, newest first.
func RecentTasks(recs []*Record[Task], limit int) []*Record[Task] {
	out := Filter(recs, IncompleteTasks())
	SortTasks(out)
	return Limit(out, limit)
}
