package entity

import (
	"encoding/json"
	"time"
)

// ActivityLog is an audit record of a state-changing action.
type ActivityLog struct {
	ID        int64           `db:"id" json:"id"`
	UserID    *string         `db:"user_id" json:"user_id,omitempty"`
	Action    string          `db:"action" json:"action"`
	Entity    string          `db:"entity" json:"entity"`
	EntityID  string          `db:"entity_id" json:"entity_id"`
	Metadata  json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	IP        string          `db:"ip" json:"ip,omitempty"`
	UserAgent string          `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type ActivityFilter struct {
	UserID string
	Action string
	Entity string
	Since  time.Time
	Limit  int
	Offset int
}
