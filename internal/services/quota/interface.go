package quota

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/scoutmaster/internal/services/quota Service

import (
	"context"
	"time"
)

// Service gates session creation behind daily per-guild and per-member allowances
type Service interface {
	// Reserve consumes one creation slot for the member, or returns a *QuotaExceededError
	Reserve(ctx context.Context, input *ReserveInput) (*ReserveOutput, error)

	// GetUsage reports the current counters and what is left before the next reset
	GetUsage(ctx context.Context, input *GetUsageInput) (*GetUsageOutput, error)

	// NextReset returns the first reset boundary strictly after now
	NextReset(now time.Time) time.Time

	// ListCommunities returns every guild holding counters or sessions
	ListCommunities(ctx context.Context) ([]string, error)

	// ResetCommunity zeroes the guild counter and all member counters of the guild
	ResetCommunity(ctx context.Context, input *ResetCommunityInput) error
}
