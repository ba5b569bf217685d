package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleListNotifications returns the caller's notifications, newest first.
func (s *Server) handleListNotifications(c *gin.Context) {
	notifications, err := s.store.ListNotifications(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, notifications)
}

// handleDeleteNotification dismisses one of the caller's notifications.
// Notifications of other users are reported as missing.
func (s *Server) handleDeleteNotification(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteNotification(c.Request.Context(), currentUser(c).ID, id); err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"message": "Notification deleted"})
}
