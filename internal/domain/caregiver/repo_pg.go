package caregiver

import (
	"context"
	"errors"

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

type grantRepoPG struct{ pool *pgxpool.Pool }

func NewGrantRepoPG(pool *pgxpool.Pool) GrantRepository {
	return &grantRepoPG{pool: pool}
}

func (r *grantRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const grantCols = `id, senior_id, caregiver_id, relationship, status, requested_at, responded_at`

func (r *grantRepoPG) scanGrant(row pgx.Row) (*AccessGrant, error) {
	var g AccessGrant
	err := row.Scan(&g.ID, &g.SeniorID, &g.CaregiverID, &g.Relationship,
		&g.Status, &g.RequestedAt, &g.RespondedAt)
	return &g, err
}

func (r *grantRepoPG) Create(ctx context.Context, g *AccessGrant) error {
	g.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO access_grant (id, senior_id, caregiver_id, relationship, status, requested_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		g.ID, g.SeniorID, g.CaregiverID, g.Relationship, g.Status, g.RequestedAt)
	return err
}

func (r *grantRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*AccessGrant, error) {
	return r.scanGrant(r.conn(ctx).QueryRow(ctx, `SELECT `+grantCols+` FROM access_grant WHERE id = $1`, id))
}

func (r *grantRepoPG) Update(ctx context.Context, g *AccessGrant) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE access_grant SET status=$2, responded_at=$3 WHERE id = $1`,
		g.ID, g.Status, g.RespondedAt)
	return err
}

func (r *grantRepoPG) list(ctx context.Context, sql string, arg interface{}) ([]*AccessGrant, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*AccessGrant
	for rows.Next() {
		g, err := r.scanGrant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

func (r *grantRepoPG) ListForSenior(ctx context.Context, seniorID uuid.UUID) ([]*AccessGrant, error) {
	return r.list(ctx,
		`SELECT `+grantCols+` FROM access_grant WHERE senior_id = $1 ORDER BY requested_at DESC`, seniorID)
}

func (r *grantRepoPG) ListForCaregiver(ctx context.Context, caregiverID uuid.UUID) ([]*AccessGrant, error) {
	return r.list(ctx,
		`SELECT `+grantCols+` FROM access_grant WHERE caregiver_id = $1 ORDER BY requested_at DESC`, caregiverID)
}

func (r *grantRepoPG) FindActivePair(ctx context.Context, seniorID, caregiverID uuid.UUID) (*AccessGrant, error) {
	g, err := r.scanGrant(r.conn(ctx).QueryRow(ctx, `
		SELECT `+grantCols+` FROM access_grant
		WHERE senior_id = $1 AND caregiver_id = $2 AND status IN ('pending','approved')
		ORDER BY requested_at DESC LIMIT 1`,
		seniorID, caregiverID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}
