package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// UsageCommand handles /recruit_usage, showing what is left before the reset
type UsageCommand struct {
	BaseCommand
	quota   quota.Service
	clock   clock.Clock
	timeout time.Duration
	logger  *zap.Logger
}

func NewUsageCommand(svc quota.Service, clk clock.Clock, timeout time.Duration, logger *zap.Logger) *UsageCommand {
	return &UsageCommand{
		BaseCommand: BaseCommand{
			Name:        "recruit_usage",
			Description: "See how many gaming sessions are left today",
		},
		quota:   svc,
		clock:   clk,
		timeout: timeout,
		logger:  logger,
	}
}

func (c *UsageCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return RespondWithEphemeralMessage(s, i, c.execute(ctx, i))
}

func (c *UsageCommand) execute(ctx context.Context, i *discordgo.InteractionCreate) string {
	out, err := c.quota.GetUsage(ctx, &quota.GetUsageInput{GuildID: i.GuildID, MemberID: actorID(i)})
	if err != nil {
		c.logger.Error("failed to read usage", zap.String("guild_id", i.GuildID), zap.Error(err))
		return replyUnexpected
	}

	wait := max(out.ResetAt.Sub(c.clock.Now()), 0)

	return fmt.Sprintf("📊 This server has used **%d of %d** sessions today.\n"+
		"🙋 You have started **%d of %d** today.\n\n"+
		"⏰ Counters reset <t:%d:t>, in %d hours and %d minutes.",
		out.GuildCount, out.GuildLimit,
		out.MemberCount, out.MemberLimit,
		out.ResetAt.Unix(), int(wait.Hours()), int(wait.Minutes())%60)
}
