// Package workflow creates projects with their checklist, moves tasks through their
// statuses and raises the notifications those moves imply.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"dashboard/internal/models"
	"dashboard/internal/storage/sqlstore"
)

var (
	ErrUnknownUser     = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
)

// Engine runs the project workflows. Every operation is a single transaction.
type Engine struct {
	store  *sqlstore.Store
	steps  []Step
	logger *slog.Logger
}

// NewEngine builds an engine over store using the standard checklist.
func NewEngine(store *sqlstore.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, steps: Checklist(), logger: logger}
}

// FullCreateRequest describes a project created together with its staffed roles.
type FullCreateRequest struct {
	Name          string        `json:"name"`
	ClientName    string        `json:"clientName"`
	ClientEmail   string        `json:"clientEmail"`
	ClientPhone   string        `json:"clientPhone"`
	Address       string        `json:"address"`
	DrawingNumber string        `json:"drawingNumber"`
	Roles         []RoleBinding `json:"roles"`
}

// Validate checks the request shape; user existence is checked inside the transaction.
func (r FullCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.ClientEmail, validation.Length(0, 254)),
		validation.Field(&r.Roles),
	)
}

// StatusChange is the result of a task status transition.
type StatusChange struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Status models.TaskStatus `json:"status"`
}

// CreateProject stores a project with the whole checklist, unassigned and Pending.
func (e *Engine) CreateProject(ctx context.Context, name string) (models.Project, error) {
	if err := validateName(name); err != nil {
		return models.Project{}, err
	}

	var project models.Project
	err := e.store.WithTx(ctx, func(tx *sqlstore.Store) error {
		var err error
		project, err = tx.CreateProject(ctx, models.Project{Name: name})
		if err != nil {
			return err
		}
		return insertDrafts(ctx, tx, project.ID, UnboundChecklist(e.steps))
	})
	if err != nil {
		return models.Project{}, err
	}

	e.logger.Info("project created", slog.Int64("id", project.ID), slog.String("name", project.Name), slog.Int("tasks", len(e.steps)))
	return project, nil
}

// CreateProjectFull stores the project, its role assignments and a task for every
// checklist step whose role is staffed. Steps for unstaffed roles are skipped.
// An unknown user id aborts the whole operation with ErrUnknownUser.
func (e *Engine) CreateProjectFull(ctx context.Context, req FullCreateRequest) (models.Project, error) {
	if err := req.Validate(); err != nil {
		return models.Project{}, err
	}

	drafts := BindChecklist(e.steps, req.Roles)

	var project models.Project
	err := e.store.WithTx(ctx, func(tx *sqlstore.Store) error {
		var err error
		project, err = tx.CreateProject(ctx, models.Project{
			Name:          req.Name,
			Address:       req.Address,
			ClientName:    req.ClientName,
			ClientEmail:   req.ClientEmail,
			ClientPhone:   req.ClientPhone,
			DrawingNumber: req.DrawingNumber,
		})
		if err != nil {
			return err
		}

		for _, b := range req.Roles {
			ok, err := tx.UserExists(ctx, b.UserID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: id %d for role %q", ErrUnknownUser, b.UserID, b.Role)
			}
			if _, err := tx.CreateRoleAssignment(ctx, models.RoleAssignment{ProjectID: project.ID, Role: b.Role, UserID: b.UserID}); err != nil {
				return err
			}
		}
		return insertDrafts(ctx, tx, project.ID, drafts)
	})
	if err != nil {
		return models.Project{}, err
	}

	e.logger.Info("project created with roles",
		slog.Int64("id", project.ID),
		slog.String("name", project.Name),
		slog.Int("roles", len(req.Roles)),
		slog.Int("tasks", len(drafts)),
	)
	return project, nil
}

// TransitionTaskStatus sets a task's status. Entering a status that notifies the
// assignee creates one notification for the task owner, if any.
func (e *Engine) TransitionTaskStatus(ctx context.Context, taskID int64, status models.TaskStatus) (StatusChange, error) {
	if !status.Valid() {
		return StatusChange{}, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}

	var task models.Task
	err := e.store.WithTx(ctx, func(tx *sqlstore.Store) error {
		var err error
		task, err = tx.GetTask(ctx, taskID)
		if errors.Is(err, sqlstore.ErrNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.SetTaskStatus(ctx, taskID, status); err != nil {
			return err
		}
		task.Status = status

		if !status.NotifiesAssignee() || !task.Assigned() {
			return nil
		}
		project, err := tx.GetProject(ctx, task.ProjectID)
		if err != nil {
			return err
		}
		_, err = tx.CreateNotification(ctx, models.Notification{
			UserID:  *task.UserID,
			Message: fmt.Sprintf("Task %q on project %q is now %s", task.Name, project.Name, status),
			TaskID:  &task.ID,
		})
		return err
	})
	if err != nil {
		return StatusChange{}, err
	}

	e.logger.Info("task status changed", slog.Int64("id", task.ID), slog.String("status", string(status)))
	return StatusChange{ID: task.ID, Name: task.Name, Status: task.Status}, nil
}

// UpdateDrawingVersion publishes a drawing revision, stored as given, and notifies every
// distinct user holding a task or a role on the project exactly once.
func (e *Engine) UpdateDrawingVersion(ctx context.Context, projectID int64, version string) (models.Project, error) {
	if strings.TrimSpace(version) == "" {
		return models.Project{}, validation.Errors{"version": validation.ErrRequired}
	}

	var (
		project  models.Project
		notified int
	)
	err := e.store.WithTx(ctx, func(tx *sqlstore.Store) error {
		err := tx.SetDrawingVersion(ctx, projectID, version)
		if errors.Is(err, sqlstore.ErrNotFound) {
			return ErrProjectNotFound
		}
		if err != nil {
			return err
		}
		if project, err = tx.GetProject(ctx, projectID); err != nil {
			return err
		}

		members, err := tx.ProjectMemberIDs(ctx, projectID)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("Drawing version %s published for project %q", version, project.Name)
		for _, userID := range members {
			if _, err := tx.CreateNotification(ctx, models.Notification{UserID: userID, Message: msg}); err != nil {
				return err
			}
		}
		notified = len(members)
		return nil
	})
	if err != nil {
		return models.Project{}, err
	}

	e.logger.Info("drawing version updated", slog.Int64("project_id", projectID), slog.String("version", version), slog.Int("notified", notified))
	return project, nil
}

// AddTask appends an ad-hoc Pending task to a project.
func (e *Engine) AddTask(ctx context.Context, projectID int64, name string) (models.Task, error) {
	if err := validateName(name); err != nil {
		return models.Task{}, err
	}

	var task models.Task
	err := e.store.WithTx(ctx, func(tx *sqlstore.Store) error {
		if _, err := tx.GetProject(ctx, projectID); errors.Is(err, sqlstore.ErrNotFound) {
			return ErrProjectNotFound
		} else if err != nil {
			return err
		}
		pos, err := tx.NextTaskPosition(ctx, projectID)
		if err != nil {
			return err
		}
		task, err = tx.CreateTask(ctx, models.Task{ProjectID: projectID, Name: name, Status: models.StatusPending, Position: pos})
		return err
	})
	return task, err
}

func validateName(name string) error {
	if err := validation.Validate(strings.TrimSpace(name), validation.Required, validation.Length(1, 200)); err != nil {
		return validation.Errors{"name": err}
	}
	return nil
}

func insertDrafts(ctx context.Context, tx *sqlstore.Store, projectID int64, drafts []TaskDraft) error {
	for _, d := range drafts {
		if _, err := tx.CreateTask(ctx, d.Task(projectID)); err != nil {
			return err
		}
	}
	return nil
}
