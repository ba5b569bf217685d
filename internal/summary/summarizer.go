// Package summary asks an external completion service for a natural-language
// status report of a project.
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dashboard/internal/models"
	"dashboard/internal/storage/sqlstore"
)

// ErrProjectNotFound is returned when the lookup matches no project.
var ErrProjectNotFound = errors.New("project not found")

// ProjectSource is the read side of the store used for summaries.
type ProjectSource interface {
	GetProject(ctx context.Context, id int64) (models.Project, error)
	FindProjectByName(ctx context.Context, q string) (models.Project, error)
	ListTasks(ctx context.Context, projectID int64) ([]models.Task, error)
}

// Lookup selects a project by exact id when ID is set, otherwise by the first
// case-insensitive substring match on Name.
type Lookup struct {
	ID   int64
	Name string
}

// Summarizer resolves a project and forwards it to an Oracle.
type Summarizer struct {
	projects ProjectSource
	oracle   Oracle
	logger   *slog.Logger
}

// NewSummarizer wires a summarizer.
func NewSummarizer(projects ProjectSource, oracle Oracle, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{projects: projects, oracle: oracle, logger: logger}
}

// Summarize returns the oracle's raw answer for the project selected by lookup.
func (s *Summarizer) Summarize(ctx context.Context, lookup Lookup, instruction string) (string, error) {
	project, err := s.resolve(ctx, lookup)
	if err != nil {
		return "", err
	}
	tasks, err := s.projects.ListTasks(ctx, project.ID)
	if err != nil {
		return "", err
	}

	text, err := s.oracle.Complete(ctx, BuildPrompt(instruction, project, tasks))
	if err != nil {
		s.logger.Error("summary failed", slog.Int64("project_id", project.ID), slog.String("error", err.Error()))
		return "", err
	}
	s.logger.Info("summary generated", slog.Int64("project_id", project.ID), slog.Int("tasks", len(tasks)))
	return text, nil
}

func (s *Summarizer) resolve(ctx context.Context, lookup Lookup) (models.Project, error) {
	var (
		project models.Project
		err     error
	)
	if lookup.ID > 0 {
		project, err = s.projects.GetProject(ctx, lookup.ID)
	} else {
		project, err = s.projects.FindProjectByName(ctx, lookup.Name)
	}
	if errors.Is(err, sqlstore.ErrNotFound) {
		return models.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, lookup)
	}
	return project, err
}

func (l Lookup) String() string {
	if l.ID > 0 {
		return fmt.Sprintf("id %d", l.ID)
	}
	return fmt.Sprintf("name %q", l.Name)
}
