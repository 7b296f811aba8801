package discord

import (
	"context"
	"errors"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/models"
	guildConfigRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	optAnnouncementChannel = "announcement_channel"
	optListingChannel      = "listing_channel"
	optCategory            = "category"
	optUseMention          = "use_mention"
	optMemberLimit         = "member_limit"
)

// SetupCommand handles /recruit_setup, which stores where sessions are posted
type SetupCommand struct {
	BaseCommand
	guildConfigRepo guildConfigRepo.Repository
	timeout         time.Duration
	logger          *zap.Logger
}

// NewSetupCommand creates a new setup command handler
func NewSetupCommand(repo guildConfigRepo.Repository, timeout time.Duration, logger *zap.Logger) *SetupCommand {
	minLimit := float64(1)
	textChannels := []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews}

	return &SetupCommand{
		BaseCommand: BaseCommand{
			Name:        "recruit_setup",
			Description: "Configure the Scout Master settings for this server",
			AdminOnly:   true,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         optAnnouncementChannel,
					Description:  "Where the server hears who started a gaming session",
					Required:     true,
					ChannelTypes: textChannels,
				},
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         optListingChannel,
					Description:  "Where recruitment posts with Join and Withdraw buttons go",
					Required:     true,
					ChannelTypes: textChannels,
				},
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         optCategory,
					Description:  "Category the temporary voice channels are created under",
					Required:     true,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        optUseMention,
					Description: "Ping @everyone in the announcement",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optMemberLimit,
					Description: "Sessions each member may start per day",
					MinValue:    &minLimit,
					MaxValue:    10,
				},
			},
		},
		guildConfigRepo: repo,
		timeout:         timeout,
		logger:          logger,
	}
}

func (c *SetupCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return RespondWithEphemeralMessage(s, i, c.execute(ctx, i))
}

func (c *SetupCommand) execute(ctx context.Context, i *discordgo.InteractionCreate) string {
	opts := optionMap(i.ApplicationCommandData())

	cfg, err := c.guildConfigRepo.GetGuildConfig(ctx, &guildConfigRepo.GetGuildConfigInput{GuildID: i.GuildID})
	if errors.Is(err, guildConfigRepo.ErrGuildConfigNotFound) {
		cfg = &models.GuildConfig{GuildID: i.GuildID}
	} else if err != nil {
		c.logger.Error("failed to load guild config", zap.String("guild_id", i.GuildID), zap.Error(err))
		return replyUnexpected
	}

	// The plan's SessionLimit and the custom images are kept as they are
	cfg.AnnouncementChannelID = channelOption(opts, optAnnouncementChannel)
	cfg.ListingChannelID = channelOption(opts, optListingChannel)
	cfg.CategoryID = channelOption(opts, optCategory)
	cfg.UseMention = false
	if opt, ok := opts[optUseMention]; ok {
		cfg.UseMention = opt.BoolValue()
	}
	if opt, ok := opts[optMemberLimit]; ok {
		cfg.MemberDailyLimit = int(opt.IntValue())
	}

	if cfg.AnnouncementChannelID == "" || cfg.ListingChannelID == "" || cfg.CategoryID == "" {
		return "Please choose an announcement channel, a listing channel and a category."
	}
	if cfg.AnnouncementChannelID == cfg.ListingChannelID {
		return "The announcement channel and the listing channel need to be different channels."
	}

	if err := c.guildConfigRepo.SaveGuildConfig(ctx, &guildConfigRepo.SaveGuildConfigInput{Config: cfg}); err != nil {
		c.logger.Error("failed to save guild config", zap.String("guild_id", i.GuildID), zap.Error(err))
		return replyUnexpected
	}

	c.logger.Info("guild configured",
		zap.String("guild_id", i.GuildID),
		zap.String("member_id", actorID(i)),
		zap.Bool("use_mention", cfg.UseMention),
		zap.Int("member_limit", cfg.MemberDailyLimit),
	)

	return "🎉 Setup complete! Your Scout Master settings have been configured.\n\n" +
		"Members can now use `/recruit` to start a gaming session! 🥳 Let them know!"
}

func channelOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt, ok := opts[name]
	if !ok {
		return ""
	}
	ch := opt.ChannelValue(nil)
	if ch == nil {
		return ""
	}
	return ch.ID
}
