package models

// MessageKind tells the gateway how to render a message
type MessageKind string

const (
	MessageKindAnnouncement MessageKind = "announcement"
	MessageKindListing      MessageKind = "listing"
	MessageKindListingEnded MessageKind = "listing_ended"
	MessageKindNotification MessageKind = "notification"
	MessageKindRoster       MessageKind = "roster"
	MessageKindControlPanel MessageKind = "control_panel"
	MessageKindInvite       MessageKind = "invite"
	MessageKindCancelNotice MessageKind = "cancel_notice"
	MessageKindSummary      MessageKind = "summary"
)

// Message is a platform-neutral description of something to post
type Message struct {
	Kind MessageKind

	// SessionID is set for kinds that carry session controls
	SessionID string

	Content string
	Embed   *Embed

	// MentionEveryone allows an @everyone ping in Content
	MentionEveryone bool
}

// Embed is a rich card attached to a message
type Embed struct {
	Title       string
	Description string
	ImageURL    string
	Color       int
}

const (
	ColorBlue   = 0x3498db
	ColorOrange = 0xe67e22
	ColorRed    = 0xe74c3c
	ColorGreen  = 0x2ecc71
)
