package activity

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key an auth middleware stores the actor under
const UserIDKey = "userID"

const pendingKey = "activity.pending"

// Record marks the current request as auditable. The entry is written by
// Middleware once the handler has finished successfully; a later call in
// the same request replaces an earlier one.
func Record(c *gin.Context, action, resourceType, resourceID string, details any) {
	c.Set(pendingKey, Entry{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	})
}

// Middleware appends the entry recorded by the handler of a mutating
// request that finished with a status below 400. Safe methods are never
// audited.
func Middleware(store *Store, logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		value, ok := c.Get(pendingKey)
		if !ok {
			return
		}
		entry, ok := value.(Entry)
		if !ok {
			return
		}

		entry.UserID = actorID(c)
		entry.IPAddress = c.ClientIP()
		entry.UserAgent = c.Request.UserAgent()

		if _, err := store.Append(c.Request.Context(), entry); err != nil {
			logger.Printf("activity: failed to record %s %s/%s: %v", entry.Action, entry.ResourceType, entry.ResourceID, err)
		}
	}
}

func actorID(c *gin.Context) *uint {
	value, ok := c.Get(UserIDKey)
	if !ok {
		return nil
	}

	var id uint
	switch v := value.(type) {
	case uint:
		id = v
	case uint64:
		id = uint(v)
	case int:
		if v <= 0 {
			return nil
		}
		id = uint(v)
	case int64:
		if v <= 0 {
			return nil
		}
		id = uint(v)
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil
		}
		id = uint(parsed)
	default:
		return nil
	}
	if id == 0 {
		return nil
	}
	return &id
}
