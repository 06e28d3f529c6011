package domain

import "time"

// TicketStatus enumerates ticket lifecycle states. The values are plain
// labels: any status may be set from any other, there is no guarded
// transition order.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "aberto"
	TicketStatusInProgress TicketStatus = "em progresso"
	TicketStatusResolved   TicketStatus = "resolvido"
)

// Valid reports whether s is one of the known statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// Ticket is the aggregate for helpdesk requests. Its category and
// subcategory links are independent many-to-many relations realized as
// join rows owned exclusively by the ticket.
type Ticket struct {
	ID          string
	Title       string
	Description *string
	SeverityID  string
	Status      TicketStatus
	Comment     *string
	CommentUser *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TicketCategory links a ticket to a category. Created and destroyed
// only as a side effect of ticket writes, never exposed directly.
type TicketCategory struct {
	TicketID   string
	CategoryID string
}

// TicketSubcategory links a ticket to a subcategory.
type TicketSubcategory struct {
	TicketID      string
	SubcategoryID string
}
