package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/external"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// CommentFetcher retrieves a comment from the external enrichment source.
type CommentFetcher interface {
	FetchRandomComment(ctx context.Context) (*external.Comment, error)
}

// TicketService coordinates ticket workflows, including the association
// reconciler that keeps a ticket's category and subcategory links in
// sync on partial updates.
type TicketService struct {
	db            repository.Querier
	tx            repository.TxRunner
	tickets       repository.TicketRepository
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	severities    repository.SeverityRepository
	comments      CommentFetcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	DB              repository.Querier
	TxRunner        repository.TxRunner
	TicketRepo      repository.TicketRepository
	CategoryRepo    repository.CategoryRepository
	SubcategoryRepo repository.SubcategoryRepository
	SeverityRepo    repository.SeverityRepository
	Comments        CommentFetcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		db:            deps.DB,
		tx:            deps.TxRunner,
		tickets:       deps.TicketRepo,
		categories:    deps.CategoryRepo,
		subcategories: deps.SubcategoryRepo,
		severities:    deps.SeverityRepo,
		comments:      deps.Comments,
	}
}

// TicketCreateInput describes a ticket creation payload.
type TicketCreateInput struct {
	Title          string
	Description    *string
	SeverityID     string
	Status         domain.TicketStatus
	CategoryIDs    []string
	SubcategoryIDs []string
}

// TicketUpdate carries a partial update. Nil fields are untouched; a
// present CategoryIDs or SubcategoryIDs slice replaces the ticket's
// whole link set for that relation.
type TicketUpdate struct {
	Title          *string
	Description    *string
	Status         *domain.TicketStatus
	SeverityID     *string
	Comment        *string
	CommentUser    *string
	CategoryIDs    *[]string
	SubcategoryIDs *[]string
}

// TicketCategoryView is a linked category carrying the subset of the
// ticket's subcategories that belong to it.
type TicketCategoryView struct {
	Category      domain.Category
	Subcategories []domain.Subcategory
}

// TicketDetail is the nested read model for show and list.
type TicketDetail struct {
	Ticket     domain.Ticket
	Severity   domain.Severity
	Categories []TicketCategoryView
}

// ListAll returns every ticket with its nested view. An empty table is
// an error condition.
func (s *TicketService) ListAll(ctx context.Context) ([]TicketDetail, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(tickets) == 0 {
		return nil, apperrors.NewNotFound("No tickets found", nil)
	}

	details := make([]TicketDetail, 0, len(tickets))
	for i := range tickets {
		detail, err := s.buildDetail(ctx, &tickets[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// Show retrieves one ticket with its nested view.
func (s *TicketService) Show(ctx context.Context, id string) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Ticket %s not found", id))
	}
	return s.buildDetail(ctx, ticket)
}

// Create validates the whole payload, then persists the ticket and its
// join rows in one transaction.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*TicketDetail, error) {
	if input.Title == "" || len(input.CategoryIDs) == 0 || input.SeverityID == "" {
		return nil, apperrors.NewValidationError("Title, category_ids, and severity_id must be filled", nil)
	}

	status := input.Status
	if status == "" {
		status = domain.TicketStatusOpen
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid ticket status '%s'", status), nil)
	}

	severity, err := s.severities.GetByID(ctx, input.SeverityID)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Severity with ID '%s' not found.", input.SeverityID))
	}
	if severity.Level == domain.ReservedSeverityLevel {
		return nil, apperrors.NewValidationError("Cannot create a ticket with severity level 1.", nil)
	}

	categoryIDs, err := s.resolveCategorySet(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	if len(input.SubcategoryIDs) > 0 {
		if err := s.checkSubcategoryMembership(ctx, input.SubcategoryIDs, categoryIDs); err != nil {
			return nil, err
		}
	}

	if _, err := s.tickets.GetByTitle(ctx, input.Title); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("A ticket with the title '%s' already exists.", input.Title), nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	ticket := &domain.Ticket{
		Title:       input.Title,
		Description: input.Description,
		SeverityID:  input.SeverityID,
		Status:      status,
	}

	err = s.tx.InTx(ctx, func(q repository.Querier) error {
		if err := s.tickets.Create(ctx, q, ticket); err != nil {
			return err
		}
		if err := s.tickets.ReplaceCategories(ctx, q, ticket.ID, input.CategoryIDs); err != nil {
			return err
		}
		if len(input.SubcategoryIDs) > 0 {
			return s.tickets.ReplaceSubcategories(ctx, q, ticket.ID, input.SubcategoryIDs)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return s.buildDetail(ctx, ticket)
}

// Update applies a partial update inside one transaction. Category
// reconciliation runs before subcategory reconciliation, so a request
// changing both validates subcategory membership against the new
// category set, not the old one. Any failure rolls back every change
// staged by this call.
func (s *TicketService) Update(ctx context.Context, id string, upd TicketUpdate) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Ticket %s not found", id))
	}

	if upd.SeverityID != nil {
		severity, err := s.severities.GetByID(ctx, *upd.SeverityID)
		if err != nil {
			return nil, mapLookupErr(err, fmt.Sprintf("Severity with ID '%s' not found.", *upd.SeverityID))
		}
		if severity.Level == domain.ReservedSeverityLevel {
			return nil, apperrors.NewValidationError("Cannot update ticket to severity level 1.", nil)
		}
		ticket.SeverityID = *upd.SeverityID
	}

	if upd.Status != nil && !upd.Status.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Invalid ticket status '%s'", *upd.Status), nil)
	}

	err = s.tx.InTx(ctx, func(q repository.Querier) error {
		if upd.CategoryIDs != nil {
			if _, err := s.resolveCategorySet(ctx, *upd.CategoryIDs); err != nil {
				return err
			}
			if err := s.tickets.ReplaceCategories(ctx, q, id, *upd.CategoryIDs); err != nil {
				return err
			}
		}

		if upd.SubcategoryIDs != nil {
			// The membership check reads the link rows through the
			// transaction, so it sees the category set reconciled above.
			currentCategoryIDs, err := s.tickets.CategoryIDs(ctx, q, id)
			if err != nil {
				return err
			}
			if err := s.checkSubcategoryMembership(ctx, *upd.SubcategoryIDs, currentCategoryIDs); err != nil {
				return err
			}
			if err := s.tickets.ReplaceSubcategories(ctx, q, id, *upd.SubcategoryIDs); err != nil {
				return err
			}
		}

		if upd.Title != nil {
			ticket.Title = *upd.Title
		}
		if upd.Description != nil {
			ticket.Description = upd.Description
		}
		if upd.Status != nil {
			ticket.Status = *upd.Status
		}
		if upd.Comment != nil {
			ticket.Comment = upd.Comment
		}
		if upd.CommentUser != nil {
			ticket.CommentUser = upd.CommentUser
		}
		return s.tickets.Update(ctx, q, ticket)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return s.Show(ctx, id)
}

// Delete removes a ticket and the join rows it owns: subcategory links,
// then category links, then the ticket, as one atomic operation.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	if _, err := s.tickets.GetByID(ctx, id); err != nil {
		return mapLookupErr(err, fmt.Sprintf("Ticket %s not found", id))
	}

	err := s.tx.InTx(ctx, func(q repository.Querier) error {
		if err := s.tickets.DeleteAssociations(ctx, q, id); err != nil {
			return err
		}
		return s.tickets.Delete(ctx, q, id)
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// AddExternalComment fetches a comment from the external source and
// stores its text and author on the ticket, overwriting any previous
// comment. Nothing is written when the fetch fails.
func (s *TicketService) AddExternalComment(ctx context.Context, id string) (*TicketDetail, error) {
	if _, err := s.tickets.GetByID(ctx, id); err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Ticket %s not found", id))
	}

	comment, err := s.comments.FetchRandomComment(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.tickets.SetComment(ctx, id, comment.Text, comment.User); err != nil {
		return nil, mapLookupErr(err, fmt.Sprintf("Ticket %s not found", id))
	}
	return s.Show(ctx, id)
}

// resolveCategorySet resolves the requested ids as a batch and returns
// the unique set. A count mismatch means at least one id is unknown.
func (s *TicketService) resolveCategorySet(ctx context.Context, ids []string) ([]string, error) {
	unique := uniqueStrings(ids)
	categories, err := s.categories.GetByIDs(ctx, unique)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(categories) != len(unique) {
		return nil, apperrors.NewNotFound("one or more categories not found", nil)
	}
	return unique, nil
}

// checkSubcategoryMembership resolves the requested subcategory ids and
// verifies each one's owning category is in the given category set.
func (s *TicketService) checkSubcategoryMembership(ctx context.Context, subcategoryIDs, categoryIDs []string) error {
	unique := uniqueStrings(subcategoryIDs)
	subcategories, err := s.subcategories.GetByIDs(ctx, unique)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if len(subcategories) != len(unique) {
		return apperrors.NewNotFound("one or more subcategories not found", nil)
	}

	categorySet := make(map[string]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		categorySet[id] = struct{}{}
	}
	for _, subcategory := range subcategories {
		if _, ok := categorySet[subcategory.CategoryID]; !ok {
			return apperrors.NewValidationError("subcategory does not belong to any current categories of the ticket", nil)
		}
	}
	return nil
}

// buildDetail assembles the nested read model: each linked category
// carries only the ticket's subcategories that belong to it. A linked
// subcategory grouped under none of the linked categories is dropped
// from the view.
func (s *TicketService) buildDetail(ctx context.Context, ticket *domain.Ticket) (*TicketDetail, error) {
	severity, err := s.severities.GetByID(ctx, ticket.SeverityID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	categoryIDs, err := s.tickets.CategoryIDs(ctx, s.db, ticket.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	subcategoryIDs, err := s.tickets.SubcategoryIDs(ctx, s.db, ticket.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	categories, err := s.categories.GetByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	subcategories, err := s.subcategories.GetByIDs(ctx, subcategoryIDs)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	byCategory := make(map[string][]domain.Subcategory, len(categories))
	for _, subcategory := range subcategories {
		byCategory[subcategory.CategoryID] = append(byCategory[subcategory.CategoryID], subcategory)
	}

	views := make([]TicketCategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, TicketCategoryView{
			Category:      category,
			Subcategories: byCategory[category.ID],
		})
	}

	return &TicketDetail{Ticket: *ticket, Severity: *severity, Categories: views}, nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
