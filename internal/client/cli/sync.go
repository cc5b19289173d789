package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/common"
)

// Sync runs one sync cycle in the foreground.
func (a *App) Sync(ctx context.Context) error {
	if err := a.orchestrator.Run(ctx); err != nil {
		if errors.Is(err, common.ErrOffline) {
			return fmt.Errorf("server unreachable, changes stay queued locally")
		}
		return err
	}
	fmt.Fprintln(a.out, "Sync complete.")
	return nil
}

// Status prints the session state and the last sync time, then the record
// counts and the next assignment due.
func (a *App) Status(ctx context.Context) error {
	fmt.Fprintf(a.out, "Mode:        %s\n", a.mode())

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "User:        (not logged in)")
		return nil
	}
	fmt.Fprintf(a.out, "User:        %s\n", a.authService.Username())

	last, ok, err := a.engine.LastSyncedAt(ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(a.out, "Last synced: %s\n", time.UnixMilli(last).In(a.now().Location()).Format(time.DateTime))
	} else {
		fmt.Fprintln(a.out, "Last synced: never")
	}

	classes, err := a.classes.Pending(ctx)
	if err != nil {
		return err
	}
	assignments, err := a.assignments.Pending(ctx)
	if err != nil {
		return err
	}
	tasks, err := a.tasks.Pending(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Pending:     %d classes, %d assignments, %d tasks\n", classes, assignments, tasks)

	open, err := a.assignments.List(ctx, models.IncompleteAssignments())
	if err != nil {
		return err
	}
	openTasks, err := a.tasks.Count(ctx, models.IncompleteTasks())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Open:        %d assignments, %d tasks\n", len(open), openTasks)

	now := a.now()
	if next := models.UpcomingAssignments(open, now.UnixMilli(), 1); len(next) > 0 {
		as := next[0].Payload
		fmt.Fprintf(a.out, "Next due:    %s  %s\n", formatMillis(as.DueDate, now.Location()), as.Title)
	}
	return nil
}

// Export uploads a JSON snapshot of every local record to object storage.
func (a *App) Export(ctx context.Context) error {
	if !a.oracle.IsOnline() {
		return fmt.Errorf("export needs a connection to the server")
	}
	key, err := a.snapshots.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Snapshot uploaded as %s\n", key)
	return nil
}
