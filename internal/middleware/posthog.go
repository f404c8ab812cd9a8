package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/bills_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// eventPropsKey holds the properties handlers attach to the route event.
const eventPropsKey = "posthogEventProps"

// untrackedPaths are never reported.
var untrackedPaths = map[string]bool{
	"/health":            true,
	"/api/v1/health":     true,
	"/api/v1/auth/login": true,
}

// SetEventProperty attaches a property to the event PosthogMiddleware sends
// for the current request, e.g. the form phase reached by a form action.
func SetEventProperty(c *gin.Context, key string, value any) {
	props, ok := c.Get(eventPropsKey)
	if !ok {
		props = map[string]any{}
		c.Set(eventPropsKey, props)
	}
	props.(map[string]any)[key] = value
}

func eventProperties(c *gin.Context) map[string]any {
	if props, ok := c.Get(eventPropsKey); ok {
		return props.(map[string]any)
	}
	return nil
}

// PosthogMiddleware reports one event per handled route, named after the
// route pattern (see EventName).
//
// Successful requests are always reported. Client errors (4xx) are reported
// only when the handler attached event properties, so a rejected form save
// shows up with its phase while bad tokens and unknown ids do not. Server
// errors are never reported.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		extra := eventProperties(c)
		if status >= http.StatusInternalServerError || (status >= http.StatusBadRequest && len(extra) == 0) {
			return
		}

		userID, ok := GetUserIDFromContext(c)
		eventName := EventName(c.FullPath())
		if !ok || eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": status,
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}
		for k, v := range extra {
			props[k] = v
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventName turns a route pattern into an event name,
// e.g. "/api/v1/forms/:sessionID/save" -> "api_v1_forms_sessionID_save".
func EventName(routePath string) string {
	name := strings.TrimPrefix(routePath, "/")
	name = strings.ReplaceAll(name, ":", "")
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ReplaceAll(name, "/", "_")
}

// PosthogEvent sends a named event outside the per-route tracking, e.g. for
// exports. Does nothing for anonymous requests.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}

	props := map[string]any{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}
	for k, v := range properties {
		props[k] = v
	}
	posthogClient.Enqueue(userID, eventName, props)
}
