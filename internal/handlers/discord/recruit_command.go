package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
	"github.com/KirkDiggler/scoutmaster/internal/services/messaging"
	"github.com/KirkDiggler/scoutmaster/internal/services/recruitment"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	optGameName     = "game_name"
	optPlayerCount  = "player_count"
	optGameTime     = "game_time"
	optHoursPlaying = "hours_playing"
)

var inviteeOptions = []string{"add_player_1", "add_player_2", "add_player_3"}

// RecruitCommand handles the /recruit command
type RecruitCommand struct {
	BaseCommand
	recruitment recruitment.Service
	messaging   messaging.Service
	clock       clock.Clock
	timeout     time.Duration
	logger      *zap.Logger
}

// NewRecruitCommand creates a new recruit command handler
func NewRecruitCommand(svc recruitment.Service, msgs messaging.Service, clk clock.Clock, timeout time.Duration, logger *zap.Logger) *RecruitCommand {
	minPlayers := float64(2)
	minHours := float64(1)

	options := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optGameName,
			Description: "The game you want to play",
			Required:    true,
			MaxLength:   100,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        optPlayerCount,
			Description: "Total party size, including you",
			Required:    true,
			MinValue:    &minPlayers,
			MaxValue:    25,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optGameTime,
			Description: "When you start playing, for example 8pm EST",
			Required:    true,
			MaxLength:   50,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        optHoursPlaying,
			Description: "How many hours the session lasts",
			Required:    true,
			MinValue:    &minHours,
			MaxValue:    24,
		},
	}
	for n, name := range inviteeOptions {
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        name,
			Description: fmt.Sprintf("Player %d to add right away", n+1),
		})
	}

	return &RecruitCommand{
		BaseCommand: BaseCommand{
			Name:        "recruit",
			Description: "Recruit players for a game session",
			Options:     options,
		},
		recruitment: svc,
		messaging:   msgs,
		clock:       clk,
		timeout:     timeout,
		logger:      logger,
	}
}

// Handle acknowledges right away since creating the channels takes a while
func (c *RecruitCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := DeferEphemeral(s, i); err != nil {
		return fmt.Errorf("failed to acknowledge recruit: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return EditReply(s, i, c.execute(ctx, i))
}

func (c *RecruitCommand) execute(ctx context.Context, i *discordgo.InteractionCreate) string {
	input := parseRecruit(i)

	out, err := c.recruitment.CreateSession(ctx, input)
	if err != nil {
		reply, expected := replyForError(c.messaging, c.clock.Now(), err)
		if !expected {
			c.logger.Error("failed to create session",
				zap.String("guild_id", input.GuildID),
				zap.String("member_id", input.CreatorID),
				zap.Error(err),
			)
		}
		return reply
	}

	return fmt.Sprintf("✅ Your **%s** session is live! Your voice channel is <#%s> and players can join from <#%s>.",
		out.Session.ActivityLabel, out.Session.Resources.VoiceChannelID, out.Session.Resources.ListingChannelID)
}

func parseRecruit(i *discordgo.InteractionCreate) *recruitment.CreateSessionInput {
	opts := optionMap(i.ApplicationCommandData())

	input := &recruitment.CreateSessionInput{
		GuildID:         i.GuildID,
		CreatorID:       actorID(i),
		CreatorName:     displayName(i),
		OriginChannelID: i.ChannelID,
	}
	if i.Member != nil {
		input.CreatorRoleIDs = i.Member.Roles
	}
	if opt, ok := opts[optGameName]; ok {
		input.ActivityLabel = opt.StringValue()
	}
	if opt, ok := opts[optGameTime]; ok {
		input.ScheduledTime = opt.StringValue()
	}
	if opt, ok := opts[optPlayerCount]; ok {
		input.Capacity = int(opt.IntValue())
	}
	if opt, ok := opts[optHoursPlaying]; ok {
		input.Duration = time.Duration(opt.IntValue()) * time.Hour
	}
	for _, name := range inviteeOptions {
		if opt, ok := opts[name]; ok {
			if user := opt.UserValue(nil); user != nil {
				input.InviteeIDs = append(input.InviteeIDs, user.ID)
			}
		}
	}

	return input
}
