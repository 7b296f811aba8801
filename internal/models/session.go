package models

import (
	"slices"
	"time"
)

// SessionStatus represents where a recruitment session is in its lifecycle
type SessionStatus string

const (
	// SessionStatusOpen indicates the session accepts joins and withdrawals
	SessionStatusOpen SessionStatus = "open"

	// SessionStatusTerminating indicates cleanup has started but not finished
	SessionStatusTerminating SessionStatus = "terminating"

	// SessionStatusClosed indicates cleanup finished; only the listing reference is kept
	SessionStatusClosed SessionStatus = "closed"
)

// IsLive reports whether the session still counts against active-session limits
func (s SessionStatus) IsLive() bool {
	return s == SessionStatusOpen || s == SessionStatusTerminating
}

// Session represents one recruitment round inside a guild
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// GuildID is the Discord server that owns the session
	GuildID string

	// CreatorID is the Discord user who opened the session
	CreatorID string

	// ActivityLabel is the game or activity being recruited for
	ActivityLabel string

	// ScheduledTime is the free-form start time the creator typed in
	ScheduledTime string

	// Duration is how long the session lives before it expires
	Duration time.Duration

	// Capacity is the total party size, creator included
	Capacity int

	// CapacityRemaining is the number of open spots
	CapacityRemaining int

	// Members holds participant user IDs in join order; the creator is first
	Members []string

	// Status is the current lifecycle state
	Status SessionStatus

	// Resources tracks the Discord objects created for this session
	Resources SessionResources

	// CreatedAt is when the session was opened
	CreatedAt time.Time

	// ExpiresAt is when the expiration timer fires
	ExpiresAt time.Time

	// UpdatedAt is when the record was last written
	UpdatedAt time.Time
}

// SessionResources references externally owned Discord objects. An empty ID
// means the object was never created or has already been cleaned up.
type SessionResources struct {
	VoiceChannelID string
	TextChannelID  string

	AnnouncementChannelID string
	AnnouncementMessageID string

	ListingChannelID string
	ListingMessageID string

	// NotificationMessageIDs are join/withdraw notices posted in the listing channel
	NotificationMessageIDs []string

	SummaryChannelID string
	SummaryMessageID string
}

// HasPendingCleanup reports whether anything other than the listing message is still tracked
func (r SessionResources) HasPendingCleanup() bool {
	return len(r.NotificationMessageIDs) > 0 ||
		r.AnnouncementMessageID != "" ||
		r.VoiceChannelID != "" ||
		r.SummaryMessageID != "" ||
		r.TextChannelID != ""
}

// IsMember reports whether the user is part of the session
func (s *Session) IsMember(userID string) bool {
	return slices.Contains(s.Members, userID)
}

// IsFull reports whether every spot has been taken
func (s *Session) IsFull() bool {
	return s.CapacityRemaining == 0
}

// IsLive reports whether the session has not finished cleanup
func (s *Session) IsLive() bool {
	return s.Status.IsLive()
}
