package models

import (
	"errors"
	"fmt"
	"strings"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending            TaskStatus = "Pending"
	StatusInProgress         TaskStatus = "In Progress"
	StatusWaitingForApproval TaskStatus = "Waiting for Approval"
	StatusBlocked            TaskStatus = "Blocked"
	StatusCompleted          TaskStatus = "Completed"
)

// ErrInvalidStatus is returned for values outside the enumeration.
var ErrInvalidStatus = errors.New("invalid task status")

var taskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusWaitingForApproval, StatusBlocked, StatusCompleted}

// statusAliases maps other spellings clients send to their canonical status.
var statusAliases = map[string]TaskStatus{
	"done": StatusCompleted,
}

// TaskStatuses lists every known status in workflow order.
func TaskStatuses() []TaskStatus {
	out := make([]TaskStatus, len(taskStatuses))
	copy(out, taskStatuses)
	return out
}

// ParseTaskStatus matches raw case-insensitively, treating '_' and '-' as spaces,
// so "in_progress" and "IN PROGRESS" both resolve to StatusInProgress.
// "Done" is accepted as Completed.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	norm := normalizeStatus(raw)
	if s, ok := statusAliases[norm]; ok {
		return s, nil
	}
	for _, s := range taskStatuses {
		if normalizeStatus(string(s)) == norm {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

func normalizeStatus(raw string) string {
	raw = strings.NewReplacer("_", " ", "-", " ").Replace(raw)
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// NotifiesAssignee reports whether entering this status should alert the task owner.
func (s TaskStatus) NotifiesAssignee() bool {
	switch s {
	case StatusInProgress:
		return true
	default:
		return false
	}
}

// Valid reports whether s is a member of the enumeration.
func (s TaskStatus) Valid() bool {
	for _, known := range taskStatuses {
		if s == known {
			return true
		}
	}
	return false
}
