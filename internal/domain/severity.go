package domain

import "time"

// ReservedSeverityLevel is routed to a dedicated external team and can
// never be created or assigned through this service.
const ReservedSeverityLevel = 1

// Severity ranks ticket urgency. Levels are unique across the table.
type Severity struct {
	ID          string
	Level       int
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
