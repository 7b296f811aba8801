package models

import (
	"slices"
	"strings"
	"time"
)

// GuildConfig holds the per-server recruitment settings and quota policy
type GuildConfig struct {
	// GuildID is the Discord server these settings belong to
	GuildID string

	// CategoryID is the channel category session voice channels are created under
	CategoryID string

	// AnnouncementChannelID receives the "session started" announcement
	AnnouncementChannelID string

	// ListingChannelID receives the public listing with join/withdraw buttons
	ListingChannelID string

	// UseMention pings @everyone in the announcement when the bot is allowed to
	UseMention bool

	// MemberDailyLimit is how many sessions one member may open per day (0 uses the default)
	MemberDailyLimit int

	// SessionLimit is the guild's daily session allowance from its plan (0 uses the default)
	SessionLimit int

	// CustomImages maps a lower-cased activity label to a listing image URL
	CustomImages map[string]string

	// AllowedRoleIDs limits who may start sessions; empty allows everyone
	AllowedRoleIDs []string

	// UpdatedAt is when the settings were last saved
	UpdatedAt time.Time
}

// CustomImageFor returns the configured image for an activity, if any
func (c *GuildConfig) CustomImageFor(activity string) string {
	if c.CustomImages == nil {
		return ""
	}
	return c.CustomImages[NormalizeActivity(activity)]
}

// AllowsRoles reports whether a member holding roleIDs may start a session
func (c *GuildConfig) AllowsRoles(roleIDs []string) bool {
	if len(c.AllowedRoleIDs) == 0 {
		return true
	}
	for _, id := range roleIDs {
		if slices.Contains(c.AllowedRoleIDs, id) {
			return true
		}
	}
	return false
}

// NormalizeActivity folds an activity label into a lookup key
func NormalizeActivity(activity string) string {
	return strings.ToLower(strings.TrimSpace(activity))
}
