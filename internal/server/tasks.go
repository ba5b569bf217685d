package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dashboard/internal/models"
)

type projectTasks struct {
	ProjectID   int64         `json:"project_id"`
	ProjectName string        `json:"project_name"`
	Tasks       []models.Task `json:"tasks"`
}

// handleListTasks fetches tasks for a project in checklist order.
func (s *Server) handleListTasks(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		s.fail(c, err)
		return
	}
	tasks, err := s.store.ListTasks(ctx, projectID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, tasks)
}

// handleCreateTask appends an ad-hoc task to a project.
func (s *Server) handleCreateTask(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.workflow.AddTask(c.Request.Context(), projectID, c.Query("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, task)
}

// handleUpdateTaskStatus moves a task to another status.
func (s *Server) handleUpdateTaskStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status, err := models.ParseTaskStatus(c.Query("status"))
	if err != nil {
		s.fail(c, err)
		return
	}

	change, err := s.workflow.TransitionTaskStatus(c.Request.Context(), id, status)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, change)
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteTask(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"message": "Task deleted"})
}

// handleMyTasks lists the caller's tasks grouped by project.
func (s *Server) handleMyTasks(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	tasks, err := s.store.ListTasksForUser(ctx, user.ID)
	if err != nil {
		s.fail(c, err)
		return
	}

	out := []projectTasks{}
	for _, t := range tasks {
		// tasks arrive ordered by project, so a new group starts whenever the id changes
		if n := len(out); n == 0 || out[n-1].ProjectID != t.ProjectID {
			project, err := s.store.GetProject(ctx, t.ProjectID)
			if err != nil {
				s.fail(c, err)
				return
			}
			out = append(out, projectTasks{ProjectID: project.ID, ProjectName: project.Name})
		}
		group := &out[len(out)-1]
		group.Tasks = append(group.Tasks, t)
	}
	respondSuccess(c, http.StatusOK, out)
}
