package activity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/unilets/internal/activity"
	"github.com/beesaferoot/unilets/internal/dbtest"
	"github.com/beesaferoot/unilets/internal/models"
)

func newRouter(t *testing.T, store *activity.Store, actor uint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if actor != 0 {
			c.Set(activity.UserIDKey, actor)
		}
		c.Next()
	})
	r.Use(activity.Middleware(store, nil))

	r.POST("/properties/:id/publish", func(c *gin.Context) {
		activity.Record(c, "property.publish", "property", c.Param("id"), gin.H{"status": "active"})
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/properties/:id", func(c *gin.Context) {
		activity.Record(c, "property.view", "property", c.Param("id"), nil)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.DELETE("/properties/:id", func(c *gin.Context) {
		activity.Record(c, "property.delete", "property", c.Param("id"), nil)
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	})
	r.PUT("/properties/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestMiddlewareRecordsSuccessfulMutation(t *testing.T) {
	db := dbtest.Migrated(t)
	store := activity.NewStore(db)

	admin := models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	router := newRouter(t, store, admin.ID)

	req := httptest.NewRequest(http.MethodPost, "/properties/42/publish", nil)
	req.Header.Set("User-Agent", "unilets-test/1.0")
	req.RemoteAddr = "203.0.113.7:51234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	rows, err := store.Query(context.Background(), activity.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "property.publish", row.Action)
	assert.Equal(t, "42", row.ResourceID)
	assert.Equal(t, "203.0.113.7", row.IPAddress)
	assert.Equal(t, "unilets-test/1.0", row.UserAgent)
	require.NotNil(t, row.UserID)
	assert.Equal(t, admin.ID, *row.UserID)
	assert.JSONEq(t, `{"status":"active"}`, string(row.Details))
}

func TestMiddlewareSkipsReadsFailuresAndUnrecorded(t *testing.T) {
	db := dbtest.Migrated(t)
	store := activity.NewStore(db)
	router := newRouter(t, store, 0)

	for _, tc := range []struct {
		method string
		status int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodDelete, http.StatusForbidden},
		{http.MethodPut, http.StatusNoContent},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, "/properties/42", nil))
		assert.Equal(t, tc.status, w.Code, tc.method)
	}

	rows, err := store.Query(context.Background(), activity.Filter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
