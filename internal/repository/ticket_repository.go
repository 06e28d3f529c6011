package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence, including the join
// rows the ticket owns. Methods taking a Querier participate in a
// caller-scoped transaction; pass the pool for standalone reads.
type TicketRepository interface {
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByTitle(ctx context.Context, title string) (*domain.Ticket, error)
	Create(ctx context.Context, q Querier, ticket *domain.Ticket) error
	Update(ctx context.Context, q Querier, ticket *domain.Ticket) error
	Delete(ctx context.Context, q Querier, id string) error
	SetComment(ctx context.Context, id, comment, commentUser string) error

	CategoryIDs(ctx context.Context, q Querier, ticketID string) ([]string, error)
	SubcategoryIDs(ctx context.Context, q Querier, ticketID string) ([]string, error)
	ReplaceCategories(ctx context.Context, q Querier, ticketID string, categoryIDs []string) error
	ReplaceSubcategories(ctx context.Context, q Querier, ticketID string, subcategoryIDs []string) error
	DeleteAssociations(ctx context.Context, q Querier, ticketID string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, severity_id, status, comment, comment_user, created_at, updated_at`

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return scanTicket(r.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id))
}

func (r *ticketRepository) GetByTitle(ctx context.Context, title string) (*domain.Ticket, error) {
	return scanTicket(r.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE title=$1`, title))
}

func (r *ticketRepository) Create(ctx context.Context, q Querier, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, severity_id, status, comment, comment_user)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return q.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.SeverityID,
		ticket.Status,
		ticket.Comment,
		ticket.CommentUser,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, q Querier, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, description=$2, severity_id=$3, status=$4,
            comment=$5, comment_user=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := q.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.SeverityID,
		ticket.Status,
		ticket.Comment,
		ticket.CommentUser,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, q Querier, id string) error {
	cmd, err := q.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) SetComment(ctx context.Context, id, comment, commentUser string) error {
	const query = `UPDATE tickets SET comment=$1, comment_user=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, comment, commentUser, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) CategoryIDs(ctx context.Context, q Querier, ticketID string) ([]string, error) {
	rows, err := q.Query(ctx, `SELECT category_id FROM ticket_categories WHERE ticket_id=$1`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}

func (r *ticketRepository) SubcategoryIDs(ctx context.Context, q Querier, ticketID string) ([]string, error) {
	rows, err := q.Query(ctx, `SELECT subcategory_id FROM ticket_subcategories WHERE ticket_id=$1`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIDs(rows)
}

// ReplaceCategories rewrites the ticket's category links: all existing
// rows are deleted, then one row per unique requested id is inserted.
func (r *ticketRepository) ReplaceCategories(ctx context.Context, q Querier, ticketID string, categoryIDs []string) error {
	if _, err := q.Exec(ctx, `DELETE FROM ticket_categories WHERE ticket_id=$1`, ticketID); err != nil {
		return err
	}
	for _, categoryID := range uniqueIDs(categoryIDs) {
		if _, err := q.Exec(ctx, `INSERT INTO ticket_categories (ticket_id, category_id) VALUES ($1, $2)`, ticketID, categoryID); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceSubcategories rewrites the ticket's subcategory links.
func (r *ticketRepository) ReplaceSubcategories(ctx context.Context, q Querier, ticketID string, subcategoryIDs []string) error {
	if _, err := q.Exec(ctx, `DELETE FROM ticket_subcategories WHERE ticket_id=$1`, ticketID); err != nil {
		return err
	}
	for _, subcategoryID := range uniqueIDs(subcategoryIDs) {
		if _, err := q.Exec(ctx, `INSERT INTO ticket_subcategories (ticket_id, subcategory_id) VALUES ($1, $2)`, ticketID, subcategoryID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAssociations removes join rows ahead of ticket deletion:
// subcategories first, then categories.
func (r *ticketRepository) DeleteAssociations(ctx context.Context, q Querier, ticketID string) error {
	if _, err := q.Exec(ctx, `DELETE FROM ticket_subcategories WHERE ticket_id=$1`, ticketID); err != nil {
		return err
	}
	_, err := q.Exec(ctx, `DELETE FROM ticket_categories WHERE ticket_id=$1`, ticketID)
	return err
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.SeverityID,
		&ticket.Status,
		&ticket.Comment,
		&ticket.CommentUser,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func collectIDs(rows pgx.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
