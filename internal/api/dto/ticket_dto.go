package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title          string              `json:"title"`
	Description    *string             `json:"description"`
	SeverityID     string              `json:"severity_id"`
	Status         domain.TicketStatus `json:"status"`
	CategoryIDs    []string            `json:"category_ids"`
	SubcategoryIDs []string            `json:"subcategory_ids"`
}

// UpdateTicketRequest is a partial update. A present category_ids or
// subcategory_ids array replaces that whole link set.
type UpdateTicketRequest struct {
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	Status         *domain.TicketStatus `json:"status"`
	SeverityID     *string              `json:"severity_id"`
	Comment        *string              `json:"comment"`
	CommentUser    *string              `json:"comment_user"`
	CategoryIDs    *[]string            `json:"category_ids"`
	SubcategoryIDs *[]string            `json:"subcategory_ids"`
}

// TicketCategoryResponse is a linked category with the ticket's
// subcategories grouped under it.
type TicketCategoryResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
}

// TicketResponse is the nested ticket view.
type TicketResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description *string                  `json:"description"`
	Status      domain.TicketStatus      `json:"status"`
	Severity    SeverityResponse         `json:"severity"`
	Categories  []TicketCategoryResponse `json:"categories"`
	Comment     *string                  `json:"comment"`
	CommentUser *string                  `json:"comment_user"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// NewTicketResponse maps the service read model.
func NewTicketResponse(detail *service.TicketDetail) TicketResponse {
	categories := make([]TicketCategoryResponse, 0, len(detail.Categories))
	for _, view := range detail.Categories {
		subs := make([]SubcategoryResponse, 0, len(view.Subcategories))
		for i := range view.Subcategories {
			subs = append(subs, NewSubcategoryResponse(&view.Subcategories[i]))
		}
		categories = append(categories, TicketCategoryResponse{
			ID:            view.Category.ID,
			Name:          view.Category.Name,
			Subcategories: subs,
		})
	}

	return TicketResponse{
		ID:          detail.Ticket.ID,
		Title:       detail.Ticket.Title,
		Description: detail.Ticket.Description,
		Status:      detail.Ticket.Status,
		Severity:    NewSeverityResponse(&detail.Severity),
		Categories:  categories,
		Comment:     detail.Ticket.Comment,
		CommentUser: detail.Ticket.CommentUser,
		CreatedAt:   detail.Ticket.CreatedAt,
		UpdatedAt:   detail.Ticket.UpdatedAt,
	}
}
