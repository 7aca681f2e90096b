package middleware

import "github.com/gin-gonic/gin"

// callerIDKey is the key under which the authenticated caller's identity is
// stored. Using a custom type prevents collisions.
const callerIDKey = contextKey("callerID")

// GetCallerIDFromContext retrieves the authenticated caller ID set by the
// auth middleware. It returns the ID and a boolean indicating if it was found.
func GetCallerIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(callerIDKey)); exists {
		if id, ok := v.(string); ok {
			return id, true
		}
		return "", false
	}
	// Check the request context as well; the middleware stores it there so
	// services reached outside gin can still see it.
	if v := c.Request.Context().Value(callerIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id, true
		}
	}
	return "", false
}
