package models

// UsageCounter is the number of sessions opened since the last daily reset.
// An empty MemberID marks the guild-wide counter.
type UsageCounter struct {
	GuildID  string
	MemberID string
	Count    int
}

// IsGuildCounter reports whether this is the guild-wide counter
func (c *UsageCounter) IsGuildCounter() bool {
	return c.MemberID == ""
}
