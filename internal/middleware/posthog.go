package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventTracker receives product analytics events.
type EventTracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// PosthogMiddleware tracks successful requests made by authenticated users.
// It must run after AuthMiddleware so the user ID is available.
func PosthogMiddleware(tracker EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if tracker == nil || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/users/current" -> "api_v1_users_current"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		tracker.Enqueue(userID, eventName, map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		})
	}
}

// TrackEvent sends a named event for distinctID, used by public routes where
// the user only becomes known inside the handler.
func TrackEvent(c *gin.Context, tracker EventTracker, distinctID string, eventName string, properties map[string]any) {
	if tracker == nil || distinctID == "" {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path
	tracker.Enqueue(distinctID, eventName, properties)
}
