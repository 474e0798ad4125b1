package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/repository"
)

// ActivityRepository writes and filters the audit log. Every filter is optional.
type ActivityRepository struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db, dialect: goqu.Dialect("postgres")}
}

type activityRow struct {
	ID        int64          `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Action    string         `db:"action"`
	Entity    string         `db:"entity"`
	EntityID  string         `db:"entity_id"`
	Metadata  sql.NullString `db:"metadata"`
	IP        string         `db:"ip"`
	UserAgent string         `db:"user_agent"`
	CreatedAt sql.NullTime   `db:"created_at"`
}

func (r activityRow) toEntity() entity.ActivityLog {
	a := entity.ActivityLog{
		ID:        r.ID,
		Action:    r.Action,
		Entity:    r.Entity,
		EntityID:  r.EntityID,
		IP:        r.IP,
		UserAgent: r.UserAgent,
		CreatedAt: r.CreatedAt.Time,
	}
	if r.UserID.Valid {
		id := r.UserID.String
		a.UserID = &id
	}
	if r.Metadata.Valid && r.Metadata.String != "" {
		a.Metadata = json.RawMessage(r.Metadata.String)
	}
	return a
}

func (r *ActivityRepository) Insert(ctx context.Context, a *entity.ActivityLog) error {
	rec := goqu.Record{
		"action":     a.Action,
		"entity":     a.Entity,
		"entity_id":  a.EntityID,
		"ip":         a.IP,
		"user_agent": a.UserAgent,
	}
	if a.UserID != nil && *a.UserID != "" {
		rec["user_id"] = *a.UserID
	}
	if len(a.Metadata) > 0 {
		rec["metadata"] = string(a.Metadata)
	}
	query, args, err := r.dialect.Insert("activity_logs").Rows(rec).
		Returning("id", "created_at").Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	return r.db.QueryRowxContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt)
}

func (r *ActivityRepository) Query(ctx context.Context, f entity.ActivityFilter) ([]entity.ActivityLog, error) {
	limit, offset := page(f.Limit, f.Offset)
	ds := r.dialect.From("activity_logs").Select(
		goqu.C("id"),
		goqu.L("user_id::text").As("user_id"),
		goqu.C("action"),
		goqu.C("entity"),
		goqu.C("entity_id"),
		goqu.L("metadata::text").As("metadata"),
		goqu.C("ip"),
		goqu.C("user_agent"),
		goqu.C("created_at"),
	)
	if f.UserID != "" {
		ds = ds.Where(goqu.L("user_id::text").Eq(f.UserID))
	}
	if f.Action != "" {
		ds = ds.Where(goqu.C("action").Eq(f.Action))
	}
	if f.Entity != "" {
		ds = ds.Where(goqu.C("entity").Eq(f.Entity))
	}
	if !f.Since.IsZero() {
		ds = ds.Where(goqu.C("created_at").Gte(f.Since))
	}
	query, args, err := ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Desc()).
		Limit(uint(limit)).Offset(uint(offset)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var rows []activityRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]entity.ActivityLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
