package messaging

import (
	"math/rand"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/models"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
)

// Config holds configuration for the messaging service
type Config struct {
	// DefaultImageURL is shown on listings without a custom image
	DefaultImageURL string

	// Rand picks flavor lines; nil seeds from the clock
	Rand *rand.Rand
}

type AnnouncementInput struct {
	CreatorID        string
	ActivityLabel    string
	ListingChannelID string
	MentionEveryone  bool
}

type ListingInput struct {
	Session *models.Session

	// ImageURL overrides the default image
	ImageURL string
}

type ListingEndedInput struct {
	Session *models.Session
}

// NoticeInput describes one join or withdrawal
type NoticeInput struct {
	Session  *models.Session
	MemberID string
}

type RosterInput struct {
	MemberIDs []string
}

type ControlPanelInput struct {
	SessionID string
	CreatorID string
}

type InviteInput struct {
	CreatorID      string
	ActivityLabel  string
	VoiceChannelID string
}

type CancelNoticeInput struct {
	CreatorID     string
	ActivityLabel string
}

type SummaryInput struct {
	GuildRemaining int
}

type QuotaDeniedInput struct {
	Reason  quota.DenyReason
	Limit   int
	ResetAt time.Time
	Now     time.Time
}
