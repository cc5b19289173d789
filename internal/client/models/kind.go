package models

import (
	"fmt"
	"strings"
)

// Kind names a record collection, locally a table and remotely a
// per-owner document collection.
type Kind string

const (
	KindClasses     Kind = "classes"
	KindAssignments Kind = "assignments"
	KindTasks       Kind = "tasks"
)

// Kinds lists every synchronized kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindClasses, KindAssignments, KindTasks}
}

// ParseKind accepts the plural name or its singular form.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classes", "class":
		return KindClasses, nil
	case "assignments", "assignment":
		return KindAssignments, nil
	case "tasks", "task":
		return KindTasks, nil
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

func (k Kind) String() string { return string(k) }
