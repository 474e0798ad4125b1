package repository

import (
	"context"
	"encoding/json"
)

// BackupTables lists the tables captured by a backup, in restore order.
var BackupTables = []string{"users", "rooms", "bookings", "payments", "feedback", "reviews", "notifications"}

type BackupRepository interface {
	Export(ctx context.Context, tables []string) (map[string]json.RawMessage, error)
	// Restore replaces the content of every table in data inside one transaction.
	Restore(ctx context.Context, tables []string, data map[string]json.RawMessage) error
}
