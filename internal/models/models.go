package models

import "time"

// User is a dashboard account. Users are created at registration and never edited.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Project is a construction job that owns its checklist tasks and role assignments.
type Project struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address,omitempty"`
	ClientName     string    `json:"client_name,omitempty"`
	ClientEmail    string    `json:"client_email,omitempty"`
	ClientPhone    string    `json:"client_phone,omitempty"`
	DrawingNumber  string    `json:"drawing_number,omitempty"`
	DrawingVersion string    `json:"drawing_version,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RoleAssignment binds a named role on a project to a user.
type RoleAssignment struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Role      string `json:"role"`
	UserID    int64  `json:"user_id"`
}

// Task is a single checklist step of a project.
type Task struct {
	ID        int64      `json:"id"`
	ProjectID int64      `json:"project_id"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Status    TaskStatus `json:"status"`
	UserID    *int64     `json:"user_id"`
	Position  int64      `json:"position"`
	Who       string     `json:"who"`
	What      string     `json:"what"`
	When      string     `json:"when"`
	How       string     `json:"how"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Assigned reports whether the task has an owner.
func (t Task) Assigned() bool {
	return t.UserID != nil
}

// Notification is an in-app message addressed to one user.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	TaskID    *int64    `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
}
