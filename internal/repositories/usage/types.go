package usage

import "github.com/KirkDiggler/scoutmaster/internal/models"

// LimitKind identifies which limit refused a reservation
type LimitKind string

const (
	LimitKindNone   LimitKind = ""
	LimitKindGuild  LimitKind = "guild"
	LimitKindMember LimitKind = "member"
)

type GetCountInput struct {
	GuildID  string
	MemberID string
}

type SetCountInput struct {
	GuildID  string
	MemberID string
	Count    int
}

type ReserveSlotInput struct {
	GuildID     string
	MemberID    string
	GuildLimit  int
	MemberLimit int
}

type ReserveSlotOutput struct {
	// Reserved is true when both counters were incremented
	Reserved bool

	// DeniedBy names the limit that was reached when Reserved is false
	DeniedBy LimitKind

	// GuildCount and MemberCount are the counters after the call
	GuildCount  int
	MemberCount int
}

type ListCountersOutput struct {
	Counters []*models.UsageCounter
}
