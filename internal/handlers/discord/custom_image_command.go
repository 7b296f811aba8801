package discord

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	guildConfigRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const optImageURL = "image_url"

// CustomImageCommand handles /set_custom_image for premium servers
type CustomImageCommand struct {
	BaseCommand
	guildConfigRepo guildConfigRepo.Repository
	premiumLimit    int
	timeout         time.Duration
	logger          *zap.Logger
}

// NewCustomImageCommand creates a new custom image command handler
func NewCustomImageCommand(repo guildConfigRepo.Repository, premiumLimit int, timeout time.Duration, logger *zap.Logger) *CustomImageCommand {
	return &CustomImageCommand{
		BaseCommand: BaseCommand{
			Name:        "set_custom_image",
			Description: "(premium only) Set a custom image for a specific game",
			AdminOnly:   true,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optGameName,
					Description: "The game the image is for",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optImageURL,
					Description: "Link to the image, leave empty to go back to the default",
				},
			},
		},
		guildConfigRepo: repo,
		premiumLimit:    premiumLimit,
		timeout:         timeout,
		logger:          logger,
	}
}

func (c *CustomImageCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return RespondWithEphemeralMessage(s, i, c.execute(ctx, i))
}

func (c *CustomImageCommand) execute(ctx context.Context, i *discordgo.InteractionCreate) string {
	opts := optionMap(i.ApplicationCommandData())

	var game, imageURL string
	if opt, ok := opts[optGameName]; ok {
		game = strings.TrimSpace(opt.StringValue())
	}
	if opt, ok := opts[optImageURL]; ok {
		imageURL = strings.TrimSpace(opt.StringValue())
	}
	if game == "" {
		return "Please tell me which game the image is for."
	}

	cfg, err := c.guildConfigRepo.GetGuildConfig(ctx, &guildConfigRepo.GetGuildConfigInput{GuildID: i.GuildID})
	if errors.Is(err, guildConfigRepo.ErrGuildConfigNotFound) {
		return "🚨 Configuration not found for this server. Please run `/recruit_setup` first. 🚨"
	}
	if err != nil {
		c.logger.Error("failed to load guild config", zap.String("guild_id", i.GuildID), zap.Error(err))
		return replyUnexpected
	}

	if cfg.SessionLimit <= c.premiumLimit {
		return "Custom images are only available for premium servers."
	}

	if imageURL != "" && !validImageURL(imageURL) {
		return "Please provide a valid URL (http:// or https://)."
	}

	err = c.guildConfigRepo.SetCustomImage(ctx, &guildConfigRepo.SetCustomImageInput{
		GuildID:  i.GuildID,
		Activity: game,
		ImageURL: imageURL,
	})
	if err != nil {
		c.logger.Error("failed to store custom image", zap.String("guild_id", i.GuildID), zap.Error(err))
		return replyUnexpected
	}

	if imageURL == "" {
		return fmt.Sprintf("Removed the custom image for **%s**.", game)
	}
	return fmt.Sprintf("Successfully set a custom image for **%s**!", game)
}

func validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
