package domain

import "time"

// Category is shared reference data grouping tickets and subcategories.
// Names are unique across the table.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
