package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SeverityRepository defines persistence access for severity levels.
type SeverityRepository interface {
	ListAll(ctx context.Context) ([]domain.Severity, error)
	Create(ctx context.Context, severity *domain.Severity) error
	GetByID(ctx context.Context, id string) (*domain.Severity, error)
	GetByLevel(ctx context.Context, level int) (*domain.Severity, error)
	Update(ctx context.Context, severity *domain.Severity) error
	Delete(ctx context.Context, id string) error
}

type severityRepository struct {
	pool *pgxpool.Pool
}

// NewSeverityRepository returns a Postgres-backed implementation.
func NewSeverityRepository(pool *pgxpool.Pool) SeverityRepository {
	return &severityRepository{pool: pool}
}

const severityColumns = `id, level, description, created_at, updated_at`

func (r *severityRepository) ListAll(ctx context.Context) ([]domain.Severity, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+severityColumns+` FROM severity ORDER BY level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Severity
	for rows.Next() {
		severity, err := scanSeverity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *severity)
	}
	return result, rows.Err()
}

func (r *severityRepository) Create(ctx context.Context, severity *domain.Severity) error {
	const query = `
        INSERT INTO severity (level, description)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query, severity.Level, severity.Description).
		Scan(&severity.ID, &severity.CreatedAt, &severity.UpdatedAt)
}

func (r *severityRepository) GetByID(ctx context.Context, id string) (*domain.Severity, error) {
	return scanSeverity(r.pool.QueryRow(ctx, `SELECT `+severityColumns+` FROM severity WHERE id=$1`, id))
}

func (r *severityRepository) GetByLevel(ctx context.Context, level int) (*domain.Severity, error) {
	return scanSeverity(r.pool.QueryRow(ctx, `SELECT `+severityColumns+` FROM severity WHERE level=$1`, level))
}

func (r *severityRepository) Update(ctx context.Context, severity *domain.Severity) error {
	const query = `
        UPDATE severity SET level=$1, description=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, severity.Level, severity.Description, severity.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *severityRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM severity WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSeverity(row pgx.Row) (*domain.Severity, error) {
	var severity domain.Severity
	if err := row.Scan(
		&severity.ID,
		&severity.Level,
		&severity.Description,
		&severity.CreatedAt,
		&severity.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &severity, nil
}
