package usage

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/scoutmaster/internal/repositories/usage Repository

import "context"

// Repository defines the interface for daily usage counter persistence
type Repository interface {
	// GetCount returns the guild counter, or the member counter when MemberID is set
	GetCount(ctx context.Context, input *GetCountInput) (int, error)

	// SetCount overwrites the guild counter, or the member counter when MemberID is set
	SetCount(ctx context.Context, input *SetCountInput) error

	// ReserveSlot increments both the guild and member counters if both are below their limits
	ReserveSlot(ctx context.Context, input *ReserveSlotInput) (*ReserveSlotOutput, error)

	// ListCounters returns every guild counter followed by that guild's member counters
	ListCounters(ctx context.Context) (*ListCountersOutput, error)
}
