// Package gateway describes the chat platform operations a recruitment
// session needs: paired channels, access grants and messages.
package gateway

//go:generate mockgen -package=mocks -destination=mocks/mock_gateway.go github.com/KirkDiggler/scoutmaster/internal/gateway Gateway

import "context"

// Gateway creates and tears down the platform resources owned by a session
type Gateway interface {
	// ChannelExists reports whether a channel or category is present in the guild
	ChannelExists(ctx context.Context, input *ChannelExistsInput) (bool, error)

	// CreateSessionChannels creates the voice channel and its paired text chat under a category
	CreateSessionChannels(ctx context.Context, input *CreateSessionChannelsInput) (*CreateSessionChannelsOutput, error)

	// RestrictChannel removes default connect access for everyone in the guild
	RestrictChannel(ctx context.Context, input *RestrictChannelInput) error

	// GrantAccess lets a member see and connect to a channel
	GrantAccess(ctx context.Context, input *AccessInput) error

	// RevokeAccess drops a member's channel override
	RevokeAccess(ctx context.Context, input *AccessInput) error

	DeleteChannel(ctx context.Context, input *DeleteChannelInput) error

	// SendMessage posts a message and returns its ID
	SendMessage(ctx context.Context, input *SendMessageInput) (*SendMessageOutput, error)

	EditMessage(ctx context.Context, input *EditMessageInput) error

	DeleteMessage(ctx context.Context, input *DeleteMessageInput) error

	// DirectMessage sends a private message to a member
	DirectMessage(ctx context.Context, input *DirectMessageInput) error
}
