// Package activity is the append-only audit trail of privileged actions.
// Rows are only ever inserted and read; nothing here updates or deletes.
package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/beesaferoot/unilets/internal/models"
)

// DefaultLimit caps Query when the filter sets no limit
const DefaultLimit = 100

// Entry is one audited action. Details may be any value that encodes as a
// JSON object or array; nil is stored as an empty object.
type Entry struct {
	UserID       *uint
	Action       string
	ResourceType string
	ResourceID   string
	Details      any
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
}

// Filter narrows Query. Since is inclusive, Until is exclusive.
type Filter struct {
	UserID       *uint
	Action       string
	ResourceType string
	ResourceID   string
	Since        time.Time
	Until        time.Time
	Limit        int
}

// Store reads and appends activity_logs rows
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Append inserts one entry and returns the stored row
func (s *Store) Append(ctx context.Context, e Entry) (*models.ActivityLog, error) {
	if strings.TrimSpace(e.Action) == "" {
		return nil, errors.New("activity action is required")
	}
	if strings.TrimSpace(e.ResourceType) == "" {
		return nil, errors.New("activity resource type is required")
	}

	details, err := encodeDetails(e.Details)
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", e.Action, err)
	}

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	row := &models.ActivityLog{
		UserID:       e.UserID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      details,
		IPAddress:    e.IPAddress,
		UserAgent:    truncate(e.UserAgent, 500),
		CreatedAt:    createdAt.UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to append activity: %w", err)
	}
	return row, nil
}

// Query returns matching entries, newest first
func (s *Store) Query(ctx context.Context, f Filter) ([]models.ActivityLog, error) {
	q := s.DB.WithContext(ctx).Model(&models.ActivityLog{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.ResourceType != "" {
		q = q.Where("resource_type = ?", f.ResourceType)
	}
	if f.ResourceID != "" {
		q = q.Where("resource_id = ?", f.ResourceID)
	}
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since.UTC())
	}
	if !f.Until.IsZero() {
		q = q.Where("created_at < ?", f.Until.UTC())
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var rows []models.ActivityLog
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	return rows, nil
}

func encodeDetails(details any) (datatypes.JSON, error) {
	var raw []byte
	switch v := details.(type) {
	case nil:
		return datatypes.JSON(`{}`), nil
	case json.RawMessage:
		raw = v
	case datatypes.JSON:
		raw = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("details are not serializable: %w", err)
		}
		raw = encoded
	}

	if !json.Valid(raw) {
		return nil, errors.New("details are not valid JSON")
	}
	return datatypes.JSON(raw), nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
