package domain

import "time"

// User is an authenticated operator of the helpdesk. The role string
// selects the scope set baked into issued tokens; it is free text so new
// roles can be introduced through configuration alone.
type User struct {
	ID           string
	Username     string
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
