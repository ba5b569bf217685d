package workflow

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"dashboard/internal/models"
)

// Step is one entry of the standard project-delivery checklist.
type Step struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Who  string `json:"who"`
	What string `json:"what"`
	When string `json:"when"`
	How  string `json:"how"`
}

// Checklist roles.
const (
	RoleProjectCoordinator  = "Project Coordinator"
	RoleProjectEngineer     = "Project Engineer"
	RoleSupervisor          = "Supervisor"
	RoleMeasurementEngineer = "Measurement Engineer"
	RoleOperationHead       = "Operation Head"
	RolePurchaseCoordinator = "Purchase Coordinator"
	RoleDirector            = "Director"
	RoleStoreCoordinator    = "Store Coordinator"
)

var checklist = [...]Step{
	{
		Name: "Receive Order", Role: RoleProjectCoordinator,
		Who: "Project Coordinator", What: "Log the client purchase order and open the project file",
		When: "Day 0, on order receipt", How: "Record client details and order scope in the dashboard",
	},
	{
		Name: "Get Drawing Approved", Role: RoleProjectEngineer,
		Who: "Project Engineer", What: "Obtain client approval on the design drawing",
		When: "Within 3 days of order", How: "Share the drawing revision and collect written sign-off",
	},
	{
		Name: "Kick-off Meeting", Role: RoleSupervisor,
		Who: "Site Supervisor", What: "Hold the kick-off meeting with site and project teams",
		When: "After drawing approval", How: "Walk through scope, schedule and site access with all leads",
	},
	{
		Name: "Send Electrical Load", Role: RoleProjectEngineer,
		Who: "Project Engineer", What: "Hand the electrical load details to engineering",
		When: "After kick-off", How: "Send the load schedule derived from the approved drawing",
	},
	{
		Name: "Prepare Estimation", Role: RoleMeasurementEngineer,
		Who: "Measurement Engineer", What: "Prepare the bill of quantities and cost estimate",
		When: "Within 2 days of load handoff", How: "Take off quantities from the drawing and price them",
	},
	{
		Name: "Approve Estimation", Role: RoleOperationHead,
		Who: "Operation Head", What: "Review and approve the estimate",
		When: "On estimate submission", How: "Check quantities and margins, then approve or return",
	},
	{
		Name: "Raise PO", Role: RolePurchaseCoordinator,
		Who: "Purchase Coordinator", What: "Raise purchase orders for the estimated material",
		When: "After estimate approval", How: "Create POs against the approved estimate lines",
	},
	{
		Name: "Approve PO", Role: RoleDirector,
		Who: "Director", What: "Approve the purchase orders",
		When: "On PO submission", How: "Review vendor, value and terms, then sign off",
	},
	{
		Name: "Upload RFQ", Role: RolePurchaseCoordinator,
		Who: "Purchase Coordinator", What: "Upload the request for quotation to vendors",
		When: "After PO approval", How: "Publish the RFQ with specifications and delivery dates",
	},
	{
		Name: "Vendor Follow-ups", Role: RolePurchaseCoordinator,
		Who: "Purchase Coordinator", What: "Follow up vendors on quotes and dispatch",
		When: "Until material dispatch", How: "Call or mail vendors and record committed dates",
	},
	{
		Name: "Prepare Delivery Challan", Role: RoleStoreCoordinator,
		Who: "Store Coordinator", What: "Prepare the delivery challan for site dispatch",
		When: "Before material leaves the store", How: "List items and quantities against the PO",
	},
	{
		Name: "Receive Material", Role: RoleStoreCoordinator,
		Who: "Store Coordinator", What: "Receive and inspect delivered material",
		When: "On delivery", How: "Match the delivery against the challan and log shortages",
	},
	{
		Name: "Upload Invoice", Role: RolePurchaseCoordinator,
		Who: "Purchase Coordinator", What: "Upload vendor invoices",
		When: "After material receipt", How: "Attach invoices and reconcile them with the POs",
	},
	{
		Name: "Upload Measurement", Role: RoleMeasurementEngineer,
		Who: "Measurement Engineer", What: "Upload the final site measurement",
		When: "After installation", How: "Measure executed work on site and record it against the estimate",
	},
	{
		Name: "Final Approvals", Role: RoleOperationHead,
		Who: "Operation Head", What: "Give final approval and close the project",
		When: "After measurement upload", How: "Verify measurement, invoices and client sign-off",
	},
}

// Checklist returns a copy of the standard checklist in execution order.
func Checklist() []Step {
	out := make([]Step, len(checklist))
	copy(out, checklist[:])
	return out
}

// RoleBinding assigns a user to a named role on a project.
type RoleBinding struct {
	Role   string `json:"role"`
	UserID int64  `json:"userId"`
}

// Validate requires a role and a positive user id.
func (b RoleBinding) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Role, validation.Required),
		validation.Field(&b.UserID, validation.Required, validation.Min(int64(1))),
	)
}

// TaskDraft is a checklist step ready to be stored for a project.
type TaskDraft struct {
	Step
	Position int64
	Status   models.TaskStatus
	UserID   *int64
}

// Task converts the draft to a task of projectID.
func (d TaskDraft) Task(projectID int64) models.Task {
	return models.Task{
		ProjectID: projectID,
		Name:      d.Name,
		Role:      d.Role,
		Status:    d.Status,
		UserID:    d.UserID,
		Position:  d.Position,
		Who:       d.Who,
		What:      d.What,
		When:      d.When,
		How:       d.How,
	}
}

// UnboundChecklist turns every step into an unassigned Pending draft.
func UnboundChecklist(steps []Step) []TaskDraft {
	drafts := make([]TaskDraft, 0, len(steps))
	for i, step := range steps {
		drafts = append(drafts, TaskDraft{Step: step, Position: int64(i), Status: models.StatusPending})
	}
	return drafts
}

// BindChecklist keeps only the steps whose role has a bound user and assigns that user.
// When a role is bound more than once the last binding wins. Roles match exactly after
// trimming surrounding whitespace. Positions keep the template order.
func BindChecklist(steps []Step, bindings []RoleBinding) []TaskDraft {
	byRole := make(map[string]int64, len(bindings))
	for _, b := range bindings {
		byRole[strings.TrimSpace(b.Role)] = b.UserID
	}

	var drafts []TaskDraft
	for i, step := range steps {
		userID, ok := byRole[step.Role]
		if !ok {
			continue
		}
		drafts = append(drafts, TaskDraft{
			Step:     step,
			Position: int64(i),
			Status:   models.StatusPending,
			UserID:   &userID,
		})
	}
	return drafts
}
