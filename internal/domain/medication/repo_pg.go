package medication

import (
	"context"
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

// =========== Medication Repository ===========

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

func (r *medicationRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const medCols = `id, user_id, name, dosage, type, frequency, is_daily, times,
	instruction, is_active, created_at, updated_at`

func (r *medicationRepoPG) scanMed(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Type, &m.Frequency,
		&m.IsDaily, &m.Times, &m.Instruction, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *medicationRepoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medication (id, user_id, name, dosage, type, frequency, is_daily, times,
			instruction, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		m.ID, m.UserID, m.Name, m.Dosage, m.Type, m.Frequency, m.IsDaily, m.Times,
		m.Instruction, m.IsActive)
	return err
}

func (r *medicationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return r.scanMed(r.conn(ctx).QueryRow(ctx, `SELECT `+medCols+` FROM medication WHERE id = $1`, id))
}

func (r *medicationRepoPG) Update(ctx context.Context, m *Medication) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication SET name=$2, dosage=$3, type=$4, frequency=$5, is_daily=$6,
			times=$7, instruction=$8, is_active=$9, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Dosage, m.Type, m.Frequency, m.IsDaily,
		m.Times, m.Instruction, m.IsActive)
	return err
}

func (r *medicationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medication WHERE id = $1`, id)
	return err
}

func (r *medicationRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool, limit, offset int) ([]*Medication, int, error) {
	filter := `WHERE user_id = $1`
	if activeOnly {
		filter += ` AND is_active`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medication `+filter, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+medCols+` FROM medication `+filter+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Medication
	for rows.Next() {
		m, err := r.scanMed(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *medicationRepoPG) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]*Medication, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+medCols+` FROM medication WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Medication
	for rows.Next() {
		m, err := r.scanMed(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// =========== UsageLog Repository ===========

type usageLogRepoPG struct{ pool *pgxpool.Pool }

func NewUsageLogRepoPG(pool *pgxpool.Pool) UsageLogRepository {
	return &usageLogRepoPG{pool: pool}
}

func (r *usageLogRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const usageCols = `id, medication_id, user_id, taken_at, note, created_at`

func (r *usageLogRepoPG) scanUsage(row pgx.Row) (*UsageLog, error) {
	var u UsageLog
	err := row.Scan(&u.ID, &u.MedicationID, &u.UserID, &u.TakenAt, &u.Note, &u.CreatedAt)
	return &u, err
}

func (r *usageLogRepoPG) Create(ctx context.Context, u *UsageLog) error {
	u.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO usage_log (id, medication_id, user_id, taken_at, note)
		VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.MedicationID, u.UserID, u.TakenAt, u.Note)
	return err
}

func (r *usageLogRepoPG) ListForDay(ctx context.Context, userID uuid.UUID, dayStart time.Time) ([]*UsageLog, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+usageCols+` FROM usage_log
		 WHERE user_id = $1 AND taken_at >= $2 AND taken_at < $3
		 ORDER BY created_at`,
		userID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*UsageLog
	for rows.Next() {
		u, err := r.scanUsage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

func (r *usageLogRepoPG) ListByMedication(ctx context.Context, medicationID uuid.UUID, limit, offset int) ([]*UsageLog, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM usage_log WHERE medication_id = $1`, medicationID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+usageCols+` FROM usage_log WHERE medication_id = $1
		 ORDER BY taken_at DESC LIMIT $2 OFFSET $3`,
		medicationID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*UsageLog
	for rows.Next() {
		u, err := r.scanUsage(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}

func (r *usageLogRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM usage_log WHERE id = $1`, id)
	return err
}
