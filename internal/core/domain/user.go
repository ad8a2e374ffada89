package domain

import "time"

// User represents a person (or service identity) acting on the ledger.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"isAdmin"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Entity is one legal entity of the holding company; every ledger row is scoped to one.
type Entity struct {
	EntityID string `json:"entityID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
