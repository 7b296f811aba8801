package quota

import (
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
	guildConfigRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config"
	sessionRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/session"
	usageRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/usage"
	"go.uber.org/zap"
)

// Config holds configuration for the quota service
type Config struct {
	// Repository dependencies
	UsageRepo       usageRepo.Repository
	SessionRepo     sessionRepo.Repository
	GuildConfigRepo guildConfigRepo.Repository

	Clock clock.Clock

	// Location is the reference timezone of the daily reset boundary
	Location *time.Location

	// ResetHour and ResetMinute are the wall-clock boundary in Location
	ResetHour   int
	ResetMinute int

	// Limits applied when a guild has not configured its own
	DefaultSessionLimit int
	DefaultMemberLimit  int

	Logger *zap.Logger
}

// ReserveInput identifies who is opening a session
type ReserveInput struct {
	GuildID  string
	MemberID string
}

// ReserveOutput describes a granted reservation
type ReserveOutput struct {
	// Counters after the increment
	GuildCount  int
	MemberCount int

	GuildLimit  int
	MemberLimit int

	ResetAt time.Time
}

// GuildRemaining is how many more sessions the guild may open today
func (o *ReserveOutput) GuildRemaining() int {
	return max(o.GuildLimit-o.GuildCount, 0)
}

type GetUsageInput struct {
	GuildID  string
	MemberID string
}

// GetUsageOutput is a read-only snapshot of a guild's and member's allowance
type GetUsageOutput struct {
	GuildCount  int
	MemberCount int

	GuildLimit  int
	MemberLimit int

	GuildRemaining  int
	MemberRemaining int

	ResetAt time.Time
}

type ResetCommunityInput struct {
	GuildID string
}
