package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/common"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// parseDue reads "YYYY-MM-DD" or "YYYY-MM-DD HH:MM" in loc. A bare date
// means the end of that day.
func parseDue(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateTimeLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q, expected %s [HH:MM]", common.ErrInvalidRecord, s, dateLayout)
	}
	return t.Add(23*time.Hour + 59*time.Minute), nil
}

// Add prompts for the fields of a new record of the kind named in args.
func (a *App) Add(ctx context.Context, args []string) error {
	var (
		kindName string
		err      error
	)
	if len(args) > 0 {
		kindName = args[0]
	} else if kindName, err = getSimpleText(a.reader, "What to add (class, assignment, task)", a.out); err != nil {
		return err
	}

	kind, err := models.ParseKind(kindName)
	if err != nil {
		return err
	}

	var id string
	switch kind {
	case models.KindClasses:
		id, err = a.addClass(ctx)
	case models.KindAssignments:
		id, err = a.addAssignment(ctx)
	case models.KindTasks:
		id, err = a.addTask(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %s %s\n", singular(kind), shortID(id))
	return nil
}

func (a *App) addClass(ctx context.Context) (string, error) {
	var c models.Class
	var err error

	if c.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return "", err
	}

	days, err := getSimpleText(a.reader, "Days (e.g. mon,wed or 2,4)", a.out)
	if err != nil {
		return "", err
	}
	if c.Days, err = models.ParseDays(days); err != nil {
		return "", err
	}

	start, err := getSimpleText(a.reader, "Start time (HH:MM)", a.out)
	if err != nil {
		return "", err
	}
	if c.StartMinute, err = models.ParseClock(start); err != nil {
		return "", err
	}

	end, err := getSimpleText(a.reader, "End time (HH:MM)", a.out)
	if err != nil {
		return "", err
	}
	if c.EndMinute, err = models.ParseClock(end); err != nil {
		return "", err
	}

	if c.Building, err = getSimpleText(a.reader, "Building (optional)", a.out); err != nil {
		return "", err
	}
	if c.Room, err = getSimpleText(a.reader, "Room (optional)", a.out); err != nil {
		return "", err
	}
	if c.Notes, err = GetMultiline(a.reader, "Notes (optional)", a.out); err != nil {
		return "", err
	}

	rec, err := a.classes.Create(ctx, c)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (a *App) addAssignment(ctx context.Context) (string, error) {
	var as models.Assignment
	var err error

	if as.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return "", err
	}
	if as.Course, err = getSimpleText(a.reader, "Course (optional)", a.out); err != nil {
		return "", err
	}

	due, err := getSimpleText(a.reader, "Due ("+dateLayout+" [HH:MM])", a.out)
	if err != nil {
		return "", err
	}
	dueAt, err := parseDue(due, a.now().Location())
	if err != nil {
		return "", err
	}
	as.DueDate = dueAt.UnixMilli()

	prio, err := getSimpleText(a.reader, "Priority (low, medium, high)", a.out)
	if err != nil {
		return "", err
	}
	if as.Priority, err = models.ParsePriority(prio); err != nil {
		return "", err
	}

	if as.Notes, err = GetMultiline(a.reader, "Notes (optional)", a.out); err != nil {
		return "", err
	}

	rec, err := a.assignments.Create(ctx, as)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (a *App) addTask(ctx context.Context) (string, error) {
	var t models.Task
	var err error

	if t.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return "", err
	}

	due, err := getSimpleText(a.reader, "Due (optional, "+dateLayout+" [HH:MM])", a.out)
	if err != nil {
		return "", err
	}
	if due != "" {
		dueAt, err := parseDue(due, a.now().Location())
		if err != nil {
			return "", err
		}
		ms := dueAt.UnixMilli()
		t.DueDate = &ms
	}

	tags, err := getSimpleText(a.reader, "Tags (comma separated, optional)", a.out)
	if err != nil {
		return "", err
	}
	t.Tags = models.ParseTags(tags)

	rec, err := a.tasks.Create(ctx, t)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
