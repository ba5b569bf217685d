package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dashboard/internal/models"
)

const projectColumns = `id, name, address, client_name, client_email, client_phone, drawing_number, drawing_version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateProject persists a new project. Names are not unique.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return models.Project{}, fmt.Errorf("project name must not be empty")
	}

	id, err := s.insert(ctx, `INSERT INTO projects(name, address, client_name, client_email, client_phone, drawing_number, drawing_version)
        VALUES(?, ?, ?, ?, ?, ?, ?)`,
		name,
		nullString(strings.TrimSpace(p.Address)),
		nullString(strings.TrimSpace(p.ClientName)),
		nullString(strings.TrimSpace(p.ClientEmail)),
		nullString(strings.TrimSpace(p.ClientPhone)),
		nullString(strings.TrimSpace(p.DrawingNumber)),
		nullString(strings.TrimSpace(p.DrawingVersion)),
	)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return s.GetProject(ctx, id)
}

// ListProjects retrieves all projects in creation order.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject fetches a single project by id.
func (s *Store) GetProject(ctx context.Context, id int64) (models.Project, error) {
	p, err := scanProject(s.queryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %w", ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// FindProjectByName returns the oldest project whose name contains q, ignoring case.
// Several projects may match; only the first in insertion order is returned.
func (s *Store) FindProjectByName(ctx context.Context, q string) (models.Project, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return models.Project{}, fmt.Errorf("project %w", ErrNotFound)
	}
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	p, err := scanProject(s.queryRow(ctx, `SELECT `+projectColumns+` FROM projects
        WHERE LOWER(name) LIKE ? ESCAPE '\' ORDER BY id ASC LIMIT 1`, pattern))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %w", ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("find project: %w", err)
	}
	return p, nil
}

// SetDrawingVersion stores a new drawing revision label.
func (s *Store) SetDrawingVersion(ctx context.Context, id int64, version string) error {
	res, err := s.exec(ctx, `UPDATE projects SET drawing_version = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, version, id)
	if err != nil {
		return fmt.Errorf("update drawing version: %w", err)
	}
	return expectAffected(res, "project")
}

// DeleteProject removes a project along with its tasks and role assignments.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "projects", "project", id)
}

// ProjectMemberIDs returns the distinct users that are either a task assignee or a
// role holder on the project, in ascending id order.
func (s *Store) ProjectMemberIDs(ctx context.Context, projectID int64) ([]int64, error) {
	rows, err := s.query(ctx, `SELECT user_id FROM tasks WHERE project_id = ? AND user_id IS NOT NULL
        UNION
        SELECT user_id FROM role_assignments WHERE project_id = ?
        ORDER BY 1`, projectID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project members: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanProject(row rowScanner) (models.Project, error) {
	var (
		p                                             models.Project
		address, clientName, clientEmail, clientPhone sql.NullString
		drawingNumber, drawingVersion                 sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &address, &clientName, &clientEmail, &clientPhone, &drawingNumber, &drawingVersion, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Project{}, err
	}
	p.Address = address.String
	p.ClientName = clientName.String
	p.ClientEmail = clientEmail.String
	p.ClientPhone = clientPhone.String
	p.DrawingNumber = drawingNumber.String
	p.DrawingVersion = drawingVersion.String
	return p, nil
}

func escapeLike(v string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(v)
}
