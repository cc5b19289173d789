package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func singular(k models.Kind) string {
	switch k {
	case models.KindClasses:
		return "class"
	case models.KindAssignments:
		return "assignment"
	case models.KindTasks:
		return "task"
	}
	return k.String()
}

func formatMillis(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format(dateTimeLayout)
}

func pendingMark(synced bool) string {
	if synced {
		return ""
	}
	return " *"
}

func printClasses(w io.Writer, recs []*models.Record[models.Class]) {
	fmt.Fprintln(w, "Classes:")
	if len(recs) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, r := range recs {
		c := r.Payload
		line := fmt.Sprintf("  [%s] %s  %s  %s", shortID(r.ID), c.TimeRange(), models.FormatDays(c.Days), c.Name)
		if loc := c.Location(); loc != "" {
			line += " @ " + loc
		}
		fmt.Fprintln(w, line+pendingMark(r.Synced))
	}
}

func printAssignments(w io.Writer, recs []*models.Record[models.Assignment], now time.Time) {
	fmt.Fprintln(w, "Assignments:")
	if len(recs) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, r := range recs {
		as := r.Payload
		status := " "
		switch {
		case as.Completed:
			status = "x"
		case as.IsOverdue(now.UnixMilli()):
			status = "!"
		}
		line := fmt.Sprintf("  [%s] %s due %s  %s (%s)", shortID(r.ID), status, formatMillis(as.DueDate, now.Location()), as.Title, as.Priority)
		if as.Course != "" {
			line += "  " + as.Course
		}
		fmt.Fprintln(w, line+pendingMark(r.Synced))
	}
}

func printTasks(w io.Writer, recs []*models.Record[models.Task], now time.Time) {
	fmt.Fprintln(w, "Tasks:")
	if len(recs) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, r := range recs {
		t := r.Payload
		status := " "
		if t.Completed {
			status = "x"
		}
		line := fmt.Sprintf("  [%s] %s %s", shortID(r.ID), status, t.Title)
		if t.DueDate != nil {
			line += " due " + formatMillis(*t.DueDate, now.Location())
		}
		if len(t.Tags) > 0 {
			line += "  #" + strings.Join(t.Tags, " #")
		}
		fmt.Fprintln(w, line+pendingMark(r.Synced))
	}
}
