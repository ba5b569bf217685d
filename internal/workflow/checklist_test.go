package workflow

import (
	"testing"

	"dashboard/internal/models"
)

func TestChecklistShape(t *testing.T) {
	steps := Checklist()
	if len(steps) != 15 {
		t.Fatalf("expected 15 steps, got %d", len(steps))
	}
	if steps[0].Name != "Receive Order" || steps[0].Role != RoleProjectCoordinator {
		t.Fatalf("unexpected first step: %+v", steps[0])
	}
	if steps[14].Name != "Final Approvals" || steps[14].Role != RoleOperationHead {
		t.Fatalf("unexpected last step: %+v", steps[14])
	}
	for _, s := range steps {
		if s.Who == "" || s.What == "" || s.When == "" || s.How == "" {
			t.Fatalf("step %q is missing guidance: %+v", s.Name, s)
		}
	}

	steps[0].Name = "mutated"
	if Checklist()[0].Name != "Receive Order" {
		t.Fatal("Checklist must return a copy")
	}
}

func TestUnboundChecklist(t *testing.T) {
	drafts := UnboundChecklist(Checklist())
	if len(drafts) != 15 {
		t.Fatalf("expected 15 drafts, got %d", len(drafts))
	}
	for i, d := range drafts {
		if d.UserID != nil {
			t.Fatalf("draft %d unexpectedly assigned", i)
		}
		if d.Status != models.StatusPending {
			t.Fatalf("draft %d status = %q", i, d.Status)
		}
		if d.Position != int64(i) {
			t.Fatalf("draft %d position = %d", i, d.Position)
		}
	}
}

func TestBindChecklistKeepsOnlyStaffedRoles(t *testing.T) {
	drafts := BindChecklist(Checklist(), []RoleBinding{
		{Role: RolePurchaseCoordinator, UserID: 7},
		{Role: RoleDirector, UserID: 9},
	})

	// Raise PO, Upload RFQ, Vendor Follow-ups, Upload Invoice and Approve PO
	if len(drafts) != 5 {
		t.Fatalf("expected 5 drafts, got %d", len(drafts))
	}
	var prev int64 = -1
	for _, d := range drafts {
		if d.Position <= prev {
			t.Fatalf("positions out of template order: %d after %d", d.Position, prev)
		}
		prev = d.Position

		want := int64(7)
		if d.Role == RoleDirector {
			want = 9
		}
		if d.UserID == nil || *d.UserID != want {
			t.Fatalf("step %q assigned to %v, want %d", d.Name, d.UserID, want)
		}
	}
}

func TestBindChecklistLastBindingWins(t *testing.T) {
	drafts := BindChecklist(Checklist(), []RoleBinding{
		{Role: RoleDirector, UserID: 1},
		{Role: " " + RoleDirector + " ", UserID: 2},
	})
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	if *drafts[0].UserID != 2 {
		t.Fatalf("expected last binding to win, got user %d", *drafts[0].UserID)
	}
}

func TestBindChecklistNoBindings(t *testing.T) {
	if drafts := BindChecklist(Checklist(), nil); len(drafts) != 0 {
		t.Fatalf("expected no drafts, got %d", len(drafts))
	}
}

func TestRoleBindingValidate(t *testing.T) {
	if err := (RoleBinding{Role: RoleDirector, UserID: 1}).Validate(); err != nil {
		t.Fatalf("valid binding rejected: %v", err)
	}
	if err := (RoleBinding{Role: "", UserID: 1}).Validate(); err == nil {
		t.Fatal("binding without role accepted")
	}
	if err := (RoleBinding{Role: RoleDirector}).Validate(); err == nil {
		t.Fatal("binding without user accepted")
	}
}
