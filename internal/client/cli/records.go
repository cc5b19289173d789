package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/client/syncer"
	"github.com/dmitrijs2005/studenthub/internal/common"
)

var errAmbiguousID = errors.New("id prefix matches more than one record")

// resolve finds the live record whose id starts with prefix.
func resolve[P models.Payload](ctx context.Context, w *syncer.Writer[P], prefix string) (*models.Record[P], error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("record id is empty")
	}

	recs, err := w.List(ctx, func(r *models.Record[P]) bool {
		return strings.HasPrefix(r.ID, prefix)
	})
	if err != nil {
		return nil, err
	}

	switch len(recs) {
	case 0:
		return nil, fmt.Errorf("%q: %w", prefix, common.ErrorNotFound)
	case 1:
		return recs[0], nil
	}
	for _, r := range recs {
		if r.ID == prefix {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", prefix, errAmbiguousID)
}

func kindAndID(args []string, usage string) (models.Kind, string, error) {
	if len(args) < 2 {
		return "", "", fmt.Errorf("usage: %s", usage)
	}
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return "", "", err
	}
	return kind, args[1], nil
}

// Complete marks an assignment or a task as done.
func (a *App) Complete(ctx context.Context, args []string) error {
	kind, prefix, err := kindAndID(args, "complete assignment|task <id>")
	if err != nil {
		return err
	}

	switch kind {
	case models.KindAssignments:
		rec, err := resolve(ctx, a.assignments, prefix)
		if err != nil {
			return err
		}
		_, err = a.assignments.Update(ctx, rec.ID, func(p *models.Assignment) error {
			p.Completed = true
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Completed %q\n", rec.Payload.Title)
	case models.KindTasks:
		rec, err := resolve(ctx, a.tasks, prefix)
		if err != nil {
			return err
		}
		_, err = a.tasks.Update(ctx, rec.ID, func(p *models.Task) error {
			p.Completed = true
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Completed %q\n", rec.Payload.Title)
	default:
		return fmt.Errorf("%s cannot be completed", kind)
	}
	return nil
}

// Delete removes a record of any kind.
func (a *App) Delete(ctx context.Context, args []string) error {
	kind, prefix, err := kindAndID(args, "delete class|assignment|task <id>")
	if err != nil {
		return err
	}

	var id string
	switch kind {
	case models.KindClasses:
		id, err = deleteByPrefix(ctx, a.classes, prefix)
	case models.KindAssignments:
		id, err = deleteByPrefix(ctx, a.assignments, prefix)
	case models.KindTasks:
		id, err = deleteByPrefix(ctx, a.tasks, prefix)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted %s %s\n", singular(kind), shortID(id))
	return nil
}

func deleteByPrefix[P models.Payload](ctx context.Context, w *syncer.Writer[P], prefix string) (string, error) {
	rec, err := resolve(ctx, w, prefix)
	if err != nil {
		return "", err
	}
	return rec.ID, w.Delete(ctx, rec.ID)
}
