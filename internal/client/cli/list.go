package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
)

const (
	week          = 7 * 24 * time.Hour
	upcomingLimit = 3
	recentLimit   = 5
)

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// List prints records. Without arguments it prints today's agenda: classes
// held today, open assignments due today and open tasks for today.
//
//	list [today]
//	list classes [<day>]
//	list assignments [open|week|upcoming]
//	list tasks [open|recent]
func (a *App) List(ctx context.Context, args []string) error {
	what, filter := "today", ""
	if len(args) > 0 {
		what = strings.ToLower(args[0])
	}
	if len(args) > 1 {
		filter = strings.ToLower(args[1])
	}

	now := a.now()
	if what == "today" {
		return a.listToday(ctx, now)
	}

	kind, err := models.ParseKind(what)
	if err != nil {
		return err
	}
	switch kind {
	case models.KindClasses:
		return a.listClasses(ctx, filter)
	case models.KindAssignments:
		return a.listAssignments(ctx, filter, now)
	default:
		return a.listTasks(ctx, filter, now)
	}
}

func (a *App) listToday(ctx context.Context, now time.Time) error {
	day := startOfDay(now)

	classes, err := a.classes.List(ctx, models.ClassesOn(now.Weekday()))
	if err != nil {
		return err
	}
	models.SortClasses(classes)

	assignments, err := a.assignments.List(ctx,
		models.IncompleteAssignments(),
		models.AssignmentsDueBetween(day.UnixMilli(), day.Add(24*time.Hour).UnixMilli()-1),
	)
	if err != nil {
		return err
	}
	models.SortAssignments(assignments)

	tasks, err := a.tasks.List(ctx, models.IncompleteTasks(), models.TasksForDay(now))
	if err != nil {
		return err
	}
	models.SortTasks(tasks)

	fmt.Fprintf(a.out, "Today, %s\n", now.Format("Monday, 02 Jan 2006"))
	printClasses(a.out, classes)
	printAssignments(a.out, assignments, now)
	printTasks(a.out, tasks, now)
	return nil
}

func (a *App) listClasses(ctx context.Context, filter string) error {
	var filters []models.Predicate[models.Class]
	if filter != "" {
		days, err := models.ParseDays(filter)
		if err != nil {
			return err
		}
		filters = append(filters, func(r *models.Record[models.Class]) bool {
			return slices.ContainsFunc(days, r.Payload.OccursOn)
		})
	}

	recs, err := a.classes.List(ctx, filters...)
	if err != nil {
		return err
	}
	models.SortClasses(recs)
	printClasses(a.out, recs)
	return nil
}

func (a *App) listAssignments(ctx context.Context, filter string, now time.Time) error {
	var filters []models.Predicate[models.Assignment]
	switch filter {
	case "", "all":
	case "open":
		filters = append(filters, models.IncompleteAssignments())
	case "week":
		day := startOfDay(now)
		filters = append(filters,
			models.IncompleteAssignments(),
			models.AssignmentsDueBetween(day.UnixMilli(), day.Add(week).UnixMilli()-1),
		)
	case "upcoming":
	default:
		return fmt.Errorf("unknown assignment filter %q", filter)
	}

	recs, err := a.assignments.List(ctx, filters...)
	if err != nil {
		return err
	}
	if filter == "upcoming" {
		recs = models.UpcomingAssignments(recs, now.UnixMilli(), upcomingLimit)
	}
	models.SortAssignments(recs)
	printAssignments(a.out, recs, now)
	return nil
}

func (a *App) listTasks(ctx context.Context, filter string, now time.Time) error {
	var filters []models.Predicate[models.Task]
	switch filter {
	case "", "all":
	case "open":
		filters = append(filters, models.IncompleteTasks())
	case "recent":
	default:
		return fmt.Errorf("unknown task filter %q", filter)
	}

	recs, err := a.tasks.List(ctx, filters...)
	if err != nil {
		return err
	}
	if filter == "recent" {
		recs = models.RecentTasks(recs, recentLimit)
	}
	models.SortTasks(recs)
	printTasks(a.out, recs, now)
	return nil
}
