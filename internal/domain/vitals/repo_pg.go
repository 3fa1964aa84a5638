package vitals

import (
	"context"
	"strconv"

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

type vitalRepoPG struct{ pool *pgxpool.Pool }

func NewVitalRepoPG(pool *pgxpool.Pool) VitalRepository {
	return &vitalRepoPG{pool: pool}
}

func (r *vitalRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const vitalCols = `id, user_id, type, systolic, diastolic, value, unit, note,
	recorded_at, created_at`

func (r *vitalRepoPG) scanVital(row pgx.Row) (*VitalReading, error) {
	var v VitalReading
	err := row.Scan(&v.ID, &v.UserID, &v.Type, &v.Systolic, &v.Diastolic, &v.Value,
		&v.Unit, &v.Note, &v.RecordedAt, &v.CreatedAt)
	return &v, err
}

func (r *vitalRepoPG) Create(ctx context.Context, v *VitalReading) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO vital_reading (id, user_id, type, systolic, diastolic, value, unit, note, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		v.ID, v.UserID, v.Type, v.Systolic, v.Diastolic, v.Value, v.Unit, v.Note, v.RecordedAt)
	return err
}

func (r *vitalRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*VitalReading, error) {
	return r.scanVital(r.conn(ctx).QueryRow(ctx, `SELECT `+vitalCols+` FROM vital_reading WHERE id = $1`, id))
}

func (r *vitalRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM vital_reading WHERE id = $1`, id)
	return err
}

func (r *vitalRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, vitalType string, limit, offset int) ([]*VitalReading, int, error) {
	filter := `WHERE user_id = $1`
	args := []interface{}{userID}
	if vitalType != "" {
		filter += ` AND type = $2`
		args = append(args, vitalType)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM vital_reading `+filter, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+vitalCols+` FROM vital_reading `+filter+
			` ORDER BY recorded_at DESC LIMIT $`+strconv.Itoa(n+1)+` OFFSET $`+strconv.Itoa(n+2),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*VitalReading
	for rows.Next() {
		v, err := r.scanVital(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *vitalRepoPG) LatestByType(ctx context.Context, userID uuid.UUID) ([]*VitalReading, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT DISTINCT ON (type) `+vitalCols+`
		FROM vital_reading
		WHERE user_id = $1
		ORDER BY type, recorded_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*VitalReading
	for rows.Next() {
		v, err := r.scanVital(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}
