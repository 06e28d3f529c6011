package domain

import "time"

// Subcategory belongs to exactly one category. The (name, category)
// pair is checked for duplicates at creation time only; renames are
// not re-validated and the schema carries no composite constraint.
type Subcategory struct {
	ID         string
	Name       string
	CategoryID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
