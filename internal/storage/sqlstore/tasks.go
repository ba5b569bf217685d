package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dashboard/internal/models"
)

const taskColumns = `id, project_id, name, role, status, user_id, position, who, what, "when", how, created_at, updated_at`

// CreateTask inserts a task for a project. An empty status defaults to Pending.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	if strings.TrimSpace(t.Name) == "" {
		return models.Task{}, fmt.Errorf("task name must not be empty")
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if !t.Status.Valid() {
		return models.Task{}, fmt.Errorf("%w: %q", models.ErrInvalidStatus, t.Status)
	}

	id, err := s.insert(ctx, `INSERT INTO tasks(project_id, name, role, status, user_id, position, who, what, "when", how)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProjectID, strings.TrimSpace(t.Name), t.Role, string(t.Status), nullInt64(t.UserID), t.Position, t.Who, t.What, t.When, t.How)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return s.GetTask(ctx, id)
}

// NextTaskPosition returns the position after the project's last task.
func (s *Store) NextTaskPosition(ctx context.Context, projectID int64) (int64, error) {
	var position sql.NullInt64
	err := s.queryRow(ctx, `SELECT MAX(position) FROM tasks WHERE project_id = ?`, projectID).Scan(&position)
	if err != nil {
		return 0, fmt.Errorf("select position: %w", err)
	}
	if position.Valid {
		return position.Int64 + 1, nil
	}
	return 0, nil
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	t, err := scanTask(s.queryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %w", ErrNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListTasks returns a project's tasks in checklist order.
func (s *Store) ListTasks(ctx context.Context, projectID int64) ([]models.Task, error) {
	return s.listTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY position, id`, projectID)
}

// ListTasksByProjects returns tasks for all projects keyed by project id.
func (s *Store) ListTasksByProjects(ctx context.Context) (map[int64][]models.Task, error) {
	tasks, err := s.listTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY project_id, position, id`)
	if err != nil {
		return nil, err
	}
	out := make(map[int64][]models.Task)
	for _, t := range tasks {
		out[t.ProjectID] = append(out[t.ProjectID], t)
	}
	return out, nil
}

// ListTasksForUser returns the tasks assigned to userID ordered by project and position.
func (s *Store) ListTasksForUser(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.listTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY project_id, position, id`, userID)
}

// SetTaskStatus overwrites a task's status.
func (s *Store) SetTaskStatus(ctx context.Context, id int64, status models.TaskStatus) error {
	res, err := s.exec(ctx, `UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return expectAffected(res, "task")
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "tasks", "task", id)
}

func (s *Store) listTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t      models.Task
		status string
		userID sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Role, &status, &userID, &t.Position, &t.Who, &t.What, &t.When, &t.How, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	t.Status = models.TaskStatus(status)
	t.UserID = int64Ptr(userID)
	return t, nil
}
