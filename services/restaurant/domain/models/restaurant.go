package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is one catalog entry. The catalog is a small, externally seeded
// collection; this context only reads it.
type Restaurant struct {
	ID        uuid.UUID
	Name      string
	Cuisine   string
	CreatedAt time.Time
}
