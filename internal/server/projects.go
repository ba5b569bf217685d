package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dashboard/internal/models"
	"dashboard/internal/workflow"
)

type projectSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type projectWithTasks struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Tasks []taskSummary `json:"tasks"`
}

type taskSummary struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Status models.TaskStatus `json:"status"`
	Role   string            `json:"role"`
}

type projectDetail struct {
	models.Project
	Roles []models.RoleAssignment `json:"roles"`
	Tasks []models.Task           `json:"tasks"`
}

// handleListProjects returns the id and name of every project.
func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.store.ListProjects(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectSummary{ID: p.ID, Name: p.Name})
	}
	respondSuccess(c, http.StatusOK, out)
}

// handleListProjectsWithTasks returns every project with its tasks inlined.
func (s *Server) handleListProjectsWithTasks(c *gin.Context) {
	ctx := c.Request.Context()
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	tasks, err := s.store.ListTasksByProjects(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]projectWithTasks, 0, len(projects))
	for _, p := range projects {
		item := projectWithTasks{ID: p.ID, Name: p.Name, Tasks: []taskSummary{}}
		for _, t := range tasks[p.ID] {
			item.Tasks = append(item.Tasks, taskSummary{ID: t.ID, Name: t.Name, Status: t.Status, Role: t.Role})
		}
		out = append(out, item)
	}
	respondSuccess(c, http.StatusOK, out)
}

// handleCreateProject creates a project with the full unassigned checklist.
func (s *Server) handleCreateProject(c *gin.Context) {
	project, err := s.workflow.CreateProject(c.Request.Context(), c.Query("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, project)
}

// handleFullCreateProject creates a project with role bindings and the staffed checklist subset.
func (s *Server) handleFullCreateProject(c *gin.Context) {
	var req workflow.FullCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	project, err := s.workflow.CreateProjectFull(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"message": "Project created", "project_id": project.ID})
}

// handleGetProject returns a project with its roles and detailed tasks.
func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	roles, err := s.store.ListRoleAssignments(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	tasks, err := s.store.ListTasks(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, projectDetail{Project: project, Roles: roles, Tasks: tasks})
}

// handleDeleteProject removes a project and all related tasks and role assignments.
func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteProject(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"message": "Project deleted"})
}

// handleUpdateDrawingVersion publishes a new drawing revision.
func (s *Server) handleUpdateDrawingVersion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := s.workflow.UpdateDrawingVersion(c.Request.Context(), id, c.Query("version"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"id": project.ID, "drawing_version": project.DrawingVersion})
}
