package gateway

import "github.com/KirkDiggler/scoutmaster/internal/models"

type ChannelExistsInput struct {
	GuildID   string
	ChannelID string
}

type CreateSessionChannelsInput struct {
	GuildID    string
	CategoryID string
	Name       string
}

type CreateSessionChannelsOutput struct {
	VoiceChannelID string

	// TextChannelID is the chat attached to the voice channel
	TextChannelID string
}

type RestrictChannelInput struct {
	GuildID   string
	ChannelID string
}

type AccessInput struct {
	ChannelID string
	UserID    string
}

type DeleteChannelInput struct {
	ChannelID string
}

type SendMessageInput struct {
	ChannelID string
	Message   *models.Message
}

type SendMessageOutput struct {
	MessageID string
}

type EditMessageInput struct {
	ChannelID string
	MessageID string
	Message   *models.Message
}

type DeleteMessageInput struct {
	ChannelID string
	MessageID string
}

type DirectMessageInput struct {
	UserID  string
	Message *models.Message
}
