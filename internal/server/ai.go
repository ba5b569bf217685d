package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"dashboard/internal/summary"
)

// analyzeRequest accepts both the early {query} shape and the later {projectName, prompt} shape.
type analyzeRequest struct {
	ProjectID   int64  `json:"projectId"`
	ProjectName string `json:"projectName"`
	Query       string `json:"query"`
	Prompt      string `json:"prompt"`
}

func (r analyzeRequest) lookup() summary.Lookup {
	name := strings.TrimSpace(r.ProjectName)
	if name == "" {
		name = strings.TrimSpace(r.Query)
	}
	return summary.Lookup{ID: r.ProjectID, Name: name}
}

func (r analyzeRequest) Validate() error {
	l := r.lookup()
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProjectName, validation.When(l.ID == 0 && l.Name == "",
			validation.Required.Error("projectName, query or projectId is required"))),
		validation.Field(&r.ProjectID, validation.Min(int64(0))),
		validation.Field(&r.Prompt, validation.Length(0, 4000)),
	)
}

var errAIDisabled = errors.New("AI assistant is not configured")

// handleAnalyze asks the completion service for a project status report.
func (s *Server) handleAnalyze(c *gin.Context) {
	if s.summarizer == nil {
		s.respondError(c, http.StatusServiceUnavailable, errAIDisabled)
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(c, err)
		return
	}

	text, err := s.summarizer.Summarize(c.Request.Context(), req.lookup(), req.Prompt)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"analysis": text})
}
