package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"dashboard/internal/models"
)

// CreateRoleAssignment binds a role on a project to a user.
func (s *Store) CreateRoleAssignment(ctx context.Context, ra models.RoleAssignment) (models.RoleAssignment, error) {
	ra.Role = strings.TrimSpace(ra.Role)
	if ra.Role == "" {
		return models.RoleAssignment{}, fmt.Errorf("role must not be empty")
	}
	id, err := s.insert(ctx, `INSERT INTO role_assignments(project_id, role, user_id) VALUES(?, ?, ?)`, ra.ProjectID, ra.Role, ra.UserID)
	if err != nil {
		return models.RoleAssignment{}, fmt.Errorf("insert role assignment: %w", err)
	}
	ra.ID = id
	return ra, nil
}

// ListRoleAssignments returns a project's role bindings in insertion order.
func (s *Store) ListRoleAssignments(ctx context.Context, projectID int64) ([]models.RoleAssignment, error) {
	rows, err := s.query(ctx, `SELECT id, project_id, role, user_id FROM role_assignments WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list role assignments: %w", err)
	}
	defer rows.Close()

	out := []models.RoleAssignment{}
	for rows.Next() {
		var ra models.RoleAssignment
		if err := rows.Scan(&ra.ID, &ra.ProjectID, &ra.Role, &ra.UserID); err != nil {
			return nil, fmt.Errorf("scan role assignment: %w", err)
		}
		out = append(out, ra)
	}
	return out, rows.Err()
}
