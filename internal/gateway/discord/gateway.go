package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/KirkDiggler/scoutmaster/internal/gateway"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	memberAllow  = discordgo.PermissionVoiceConnect | discordgo.PermissionViewChannel
	everyoneDeny = discordgo.PermissionVoiceConnect
)

// Config holds configuration for the discord gateway
type Config struct {
	Session *discordgo.Session
	Logger  *zap.Logger
}

// Gateway implements gateway.Gateway on a discordgo session
type Gateway struct {
	session *discordgo.Session
	logger  *zap.Logger
}

// New creates a new discord gateway
func New(cfg *Config) (*Gateway, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gateway{
		session: cfg.Session,
		logger:  logger.Named("gateway"),
	}, nil
}

// ChannelExists checks the state cache before asking the API
func (g *Gateway) ChannelExists(ctx context.Context, input *gateway.ChannelExistsInput) (bool, error) {
	if input == nil || input.ChannelID == "" {
		return false, nil
	}

	if g.session.State != nil {
		if ch, err := g.session.State.Channel(input.ChannelID); err == nil {
			return input.GuildID == "" || ch.GuildID == input.GuildID, nil
		}
	}

	ch, err := g.session.Channel(input.ChannelID, discordgo.WithContext(ctx))
	if err != nil {
		err = mapError(err)
		if errors.Is(err, gateway.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch channel %s: %w", input.ChannelID, err)
	}

	return input.GuildID == "" || ch.GuildID == input.GuildID, nil
}

// CreateSessionChannels creates a voice channel under the category. Discord voice
// channels carry their own text chat, so both IDs refer to the same channel.
func (g *Gateway) CreateSessionChannels(ctx context.Context, input *gateway.CreateSessionChannelsInput) (*gateway.CreateSessionChannelsOutput, error) {
	if input == nil || input.GuildID == "" || input.Name == "" {
		return nil, errors.New("input, guild ID and name cannot be empty")
	}

	ch, err := g.session.GuildChannelCreateComplex(input.GuildID, discordgo.GuildChannelCreateData{
		Name:     input.Name,
		Type:     discordgo.ChannelTypeGuildVoice,
		ParentID: input.CategoryID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create voice channel: %w", mapError(err))
	}

	g.logger.Debug("created session channel",
		zap.String("guild_id", input.GuildID),
		zap.String("channel_id", ch.ID),
	)

	return &gateway.CreateSessionChannelsOutput{
		VoiceChannelID: ch.ID,
		TextChannelID:  ch.ID,
	}, nil
}

// RestrictChannel denies connect for the @everyone role, whose ID is the guild ID
func (g *Gateway) RestrictChannel(ctx context.Context, input *gateway.RestrictChannelInput) error {
	if input == nil || input.GuildID == "" || input.ChannelID == "" {
		return errors.New("input, guild ID and channel ID cannot be empty")
	}

	err := g.session.ChannelPermissionSet(input.ChannelID, input.GuildID,
		discordgo.PermissionOverwriteTypeRole, 0, everyoneDeny, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to restrict channel: %w", mapError(err))
	}

	return nil
}

func (g *Gateway) GrantAccess(ctx context.Context, input *gateway.AccessInput) error {
	if input == nil || input.ChannelID == "" || input.UserID == "" {
		return errors.New("input, channel ID and user ID cannot be empty")
	}

	err := g.session.ChannelPermissionSet(input.ChannelID, input.UserID,
		discordgo.PermissionOverwriteTypeMember, memberAllow, 0, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to grant access: %w", mapError(err))
	}

	return nil
}

func (g *Gateway) RevokeAccess(ctx context.Context, input *gateway.AccessInput) error {
	if input == nil || input.ChannelID == "" || input.UserID == "" {
		return errors.New("input, channel ID and user ID cannot be empty")
	}

	if err := g.session.ChannelPermissionDelete(input.ChannelID, input.UserID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to revoke access: %w", mapError(err))
	}

	return nil
}

func (g *Gateway) DeleteChannel(ctx context.Context, input *gateway.DeleteChannelInput) error {
	if input == nil || input.ChannelID == "" {
		return errors.New("input and channel ID cannot be empty")
	}

	if _, err := g.session.ChannelDelete(input.ChannelID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete channel: %w", mapError(err))
	}

	return nil
}

func (g *Gateway) SendMessage(ctx context.Context, input *gateway.SendMessageInput) (*gateway.SendMessageOutput, error) {
	if input == nil || input.ChannelID == "" || input.Message == nil {
		return nil, errors.New("input, channel ID and message cannot be empty")
	}

	msg, err := g.session.ChannelMessageSendComplex(input.ChannelID, renderSend(input.Message), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send %s message: %w", input.Message.Kind, mapError(err))
	}

	return &gateway.SendMessageOutput{MessageID: msg.ID}, nil
}

func (g *Gateway) EditMessage(ctx context.Context, input *gateway.EditMessageInput) error {
	if input == nil || input.ChannelID == "" || input.MessageID == "" || input.Message == nil {
		return errors.New("input, channel ID, message ID and message cannot be empty")
	}

	edit := renderEdit(input.ChannelID, input.MessageID, input.Message)
	if _, err := g.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to edit message: %w", mapError(err))
	}

	return nil
}

func (g *Gateway) DeleteMessage(ctx context.Context, input *gateway.DeleteMessageInput) error {
	if input == nil || input.ChannelID == "" || input.MessageID == "" {
		return errors.New("input, channel ID and message ID cannot be empty")
	}

	if err := g.session.ChannelMessageDelete(input.ChannelID, input.MessageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete message: %w", mapError(err))
	}

	return nil
}

// DirectMessage opens (or reuses) the DM channel and posts into it
func (g *Gateway) DirectMessage(ctx context.Context, input *gateway.DirectMessageInput) error {
	if input == nil || input.UserID == "" || input.Message == nil {
		return errors.New("input, user ID and message cannot be empty")
	}

	dm, err := g.session.UserChannelCreate(input.UserID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open direct message: %w", mapError(err))
	}

	if _, err := g.session.ChannelMessageSendComplex(dm.ID, renderSend(input.Message), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send direct message: %w", mapError(err))
	}

	return nil
}

// mapError folds discord REST failures onto the gateway error taxonomy
func mapError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}

	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownMessage:
			return fmt.Errorf("%w: %s", gateway.ErrNotFound, restErr.Message.Message)
		}
	}

	if restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", gateway.ErrNotFound, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", gateway.ErrForbidden, err)
		}
	}

	return err
}

var _ gateway.Gateway = (*Gateway)(nil)
