package models

import (
	"errors"
	"testing"
)

func TestParseTaskStatus(t *testing.T) {
	cases := map[string]TaskStatus{
		"Pending":              StatusPending,
		"pending":              StatusPending,
		"In Progress":          StatusInProgress,
		"in_progress":          StatusInProgress,
		"IN-PROGRESS":          StatusInProgress,
		"Waiting for Approval": StatusWaitingForApproval,
		"waiting_for_approval": StatusWaitingForApproval,
		"Blocked":              StatusBlocked,
		" completed ":          StatusCompleted,
		"Done":                 StatusCompleted,
	}
	for raw, want := range cases {
		got, err := ParseTaskStatus(raw)
		if err != nil {
			t.Fatalf("ParseTaskStatus(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseTaskStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseTaskStatusRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "Finished", "inprogress"} {
		if _, err := ParseTaskStatus(raw); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("ParseTaskStatus(%q) error = %v, want ErrInvalidStatus", raw, err)
		}
	}
}

func TestNotifiesAssignee(t *testing.T) {
	for _, s := range TaskStatuses() {
		if got, want := s.NotifiesAssignee(), s == StatusInProgress; got != want {
			t.Fatalf("%q.NotifiesAssignee() = %v, want %v", s, got, want)
		}
	}
}

func TestTaskAssigned(t *testing.T) {
	id := int64(3)
	if (Task{}).Assigned() {
		t.Fatal("task without user reported as assigned")
	}
	if !(Task{UserID: &id}).Assigned() {
		t.Fatal("task with user reported as unassigned")
	}
}
