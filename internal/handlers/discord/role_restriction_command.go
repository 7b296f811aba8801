package discord

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	guildConfigRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

var roleOptions = []string{"role_1", "role_2", "role_3", "role_4", "role_5"}

// RoleRestrictionCommand handles /set_role_restrictions for premium servers.
// Running it without roles lifts the restriction.
type RoleRestrictionCommand struct {
	BaseCommand
	guildConfigRepo guildConfigRepo.Repository
	premiumLimit    int
	timeout         time.Duration
	logger          *zap.Logger
}

func NewRoleRestrictionCommand(repo guildConfigRepo.Repository, premiumLimit int, timeout time.Duration, logger *zap.Logger) *RoleRestrictionCommand {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(roleOptions))
	for _, name := range roleOptions {
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        name,
			Description: "A role allowed to use /recruit",
		})
	}

	return &RoleRestrictionCommand{
		BaseCommand: BaseCommand{
			Name:        "set_role_restrictions",
			Description: "(premium only) Set role restrictions for using recruitment",
			AdminOnly:   true,
			Options:     options,
		},
		guildConfigRepo: repo,
		premiumLimit:    premiumLimit,
		timeout:         timeout,
		logger:          logger,
	}
}

func (c *RoleRestrictionCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return RespondWithEphemeralMessage(s, i, c.execute(ctx, i))
}

func (c *RoleRestrictionCommand) execute(ctx context.Context, i *discordgo.InteractionCreate) string {
	opts := optionMap(i.ApplicationCommandData())

	var roles []string
	for _, name := range roleOptions {
		opt, ok := opts[name]
		if !ok {
			continue
		}
		if role := opt.RoleValue(nil, ""); role != nil && !slices.Contains(roles, role.ID) {
			roles = append(roles, role.ID)
		}
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
		return "Role restrictions are only available for premium servers."
	}

	cfg.AllowedRoleIDs = roles
	if err := c.guildConfigRepo.SaveGuildConfig(ctx, &guildConfigRepo.SaveGuildConfigInput{Config: cfg}); err != nil {
		c.logger.Error("failed to save role restrictions", zap.String("guild_id", i.GuildID), zap.Error(err))
		return replyUnexpected
	}

	c.logger.Info("role restrictions updated",
		zap.String("guild_id", i.GuildID),
		zap.String("member_id", actorID(i)),
		zap.Strings("roles", roles),
	)

	if len(roles) == 0 {
		return "Role restrictions removed. Everyone can use `/recruit` again."
	}

	mentions := make([]string, len(roles))
	for n, id := range roles {
		mentions[n] = fmt.Sprintf("<@&%s>", id)
	}
	return "Role restrictions updated successfully! Only " + strings.Join(mentions, ", ") + " can use `/recruit`."
}
