package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SubcategoryRepository defines persistence access for subcategories.
type SubcategoryRepository interface {
	ListAll(ctx context.Context) ([]domain.Subcategory, error)
	Create(ctx context.Context, subcategory *domain.Subcategory) error
	GetByID(ctx context.Context, id string) (*domain.Subcategory, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Subcategory, error)
	GetByNameAndCategory(ctx context.Context, name, categoryID string) (*domain.Subcategory, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Subcategory, error)
	Update(ctx context.Context, subcategory *domain.Subcategory) error
	Delete(ctx context.Context, id string) error
}

type subcategoryRepository struct {
	pool *pgxpool.Pool
}

// NewSubcategoryRepository returns a Postgres-backed implementation.
func NewSubcategoryRepository(pool *pgxpool.Pool) SubcategoryRepository {
	return &subcategoryRepository{pool: pool}
}

const subcategoryColumns = `id, name, category_id, created_at, updated_at`

func (r *subcategoryRepository) ListAll(ctx context.Context) ([]domain.Subcategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+subcategoryColumns+` FROM subcategories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubcategories(rows)
}

func (r *subcategoryRepository) Create(ctx context.Context, subcategory *domain.Subcategory) error {
	const query = `
        INSERT INTO subcategories (name, category_id)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query, subcategory.Name, subcategory.CategoryID).
		Scan(&subcategory.ID, &subcategory.CreatedAt, &subcategory.UpdatedAt)
}

func (r *subcategoryRepository) GetByID(ctx context.Context, id string) (*domain.Subcategory, error) {
	return scanSubcategory(r.pool.QueryRow(ctx, `SELECT `+subcategoryColumns+` FROM subcategories WHERE id=$1`, id))
}

// GetByIDs resolves a batch of ids. Absent ids are simply not returned;
// callers compare counts to detect them.
func (r *subcategoryRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Subcategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+subcategoryColumns+` FROM subcategories WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubcategories(rows)
}

func (r *subcategoryRepository) GetByNameAndCategory(ctx context.Context, name, categoryID string) (*domain.Subcategory, error) {
	const query = `SELECT ` + subcategoryColumns + ` FROM subcategories WHERE name=$1 AND category_id=$2`
	return scanSubcategory(r.pool.QueryRow(ctx, query, name, categoryID))
}

func (r *subcategoryRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+subcategoryColumns+` FROM subcategories WHERE category_id=$1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubcategories(rows)
}

func (r *subcategoryRepository) Update(ctx context.Context, subcategory *domain.Subcategory) error {
	const query = `
        UPDATE subcategories SET name=$1, category_id=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, subcategory.Name, subcategory.CategoryID, subcategory.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subcategoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM subcategories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func collectSubcategories(rows pgx.Rows) ([]domain.Subcategory, error) {
	var result []domain.Subcategory
	for rows.Next() {
		subcategory, err := scanSubcategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *subcategory)
	}
	return result, rows.Err()
}

func scanSubcategory(row pgx.Row) (*domain.Subcategory, error) {
	var subcategory domain.Subcategory
	if err := row.Scan(
		&subcategory.ID,
		&subcategory.Name,
		&subcategory.CategoryID,
		&subcategory.CreatedAt,
		&subcategory.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &subcategory, nil
}
