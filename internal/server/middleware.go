package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dashboard/internal/models"
)

const contextUserKey = "user"

// requireUser rejects requests without a valid bearer token and stores the caller
// in the gin context.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		user, err := s.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := statusFor(err)
			if status != http.StatusUnauthorized {
				s.respondError(c, status, err)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// currentUser returns the caller stored by requireUser.
func currentUser(c *gin.Context) models.User {
	user, _ := c.MustGet(contextUserKey).(models.User)
	return user
}
