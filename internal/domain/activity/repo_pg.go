package activity

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careloop/careloop/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type activityRepoPG struct{ pool *pgxpool.Pool }

func NewActivityRepoPG(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepoPG{pool: pool}
}

func (r *activityRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const activityCols = `id, user_id, type, description, duration_minutes, occurred_at, created_at`

func (r *activityRepoPG) scanActivity(row pgx.Row) (*ActivityLog, error) {
	var a ActivityLog
	err := row.Scan(&a.ID, &a.UserID, &a.Type, &a.Description, &a.DurationMinutes,
		&a.OccurredAt, &a.CreatedAt)
	return &a, err
}

func (r *activityRepoPG) Create(ctx context.Context, a *ActivityLog) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO activity_log (id, user_id, type, description, duration_minutes, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.UserID, a.Type, a.Description, a.DurationMinutes, a.OccurredAt)
	return err
}

func (r *activityRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ActivityLog, error) {
	return r.scanActivity(r.conn(ctx).QueryRow(ctx, `SELECT `+activityCols+` FROM activity_log WHERE id = $1`, id))
}

func (r *activityRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM activity_log WHERE id = $1`, id)
	return err
}

func (r *activityRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, day time.Time, limit, offset int) ([]*ActivityLog, int, error) {
	filter := `WHERE user_id = $1`
	args := []interface{}{userID}
	if !day.IsZero() {
		filter += ` AND occurred_at >= $2 AND occurred_at < $3`
		args = append(args, day, day.Add(24*time.Hour))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM activity_log `+filter, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+activityCols+` FROM activity_log `+filter+
			` ORDER BY occurred_at DESC LIMIT $`+strconv.Itoa(n+1)+` OFFSET $`+strconv.Itoa(n+2),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*ActivityLog
	for rows.Next() {
		a, err := r.scanActivity(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *activityRepoPG) ListForDay(ctx context.Context, userID uuid.UUID, dayStart time.Time) ([]*ActivityLog, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+activityCols+` FROM activity_log
		 WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		 ORDER BY occurred_at`,
		userID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ActivityLog
	for rows.Next() {
		a, err := r.scanActivity(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
