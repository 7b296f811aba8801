package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/scoutmaster/internal/common/uuid Generator

// Generator hands out opaque identifiers for new records
type Generator interface {
	NewID() string
}

// DefaultGenerator produces random v4 UUID strings
type DefaultGenerator struct{}

func New() *DefaultGenerator {
	return &DefaultGenerator{}
}

// NewID returns a new UUID
func (d *DefaultGenerator) NewID() string {
	return uuid.NewString()
}
