package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
	gatewayDiscord "github.com/KirkDiggler/scoutmaster/internal/gateway/discord"
	guildConfigRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config"
	"github.com/KirkDiggler/scoutmaster/internal/services/messaging"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"github.com/KirkDiggler/scoutmaster/internal/services/recruitment"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const defaultOperationTimeout = 30 * time.Second

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	recruitment recruitment.Service
	messaging   messaging.Service
	clock       clock.Clock
	timeout     time.Duration
	logger      *zap.Logger
	config      *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the discord session shared with the gateway
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	RecruitmentService recruitment.Service
	QuotaService       quota.Service
	GuildConfigRepo    guildConfigRepo.Repository
	Messaging          messaging.Service
	Clock              clock.Clock

	// PremiumSessionLimit is the plan size above which custom images unlock
	PremiumSessionLimit int

	OperationTimeout time.Duration
	Logger           *zap.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}
	if cfg.RecruitmentService == nil {
		return nil, errors.New("recruitment service cannot be nil")
	}
	if cfg.QuotaService == nil {
		return nil, errors.New("quota service cannot be nil")
	}
	if cfg.GuildConfigRepo == nil {
		return nil, errors.New("guild config repository cannot be nil")
	}
	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	timeout := cfg.OperationTimeout
	if timeout <= 0 {
		timeout = defaultOperationTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("bot")

	bot := &Bot{
		session:     cfg.Session,
		commands:    make(map[string]CommandHandler),
		commandIDs:  make(map[string]string),
		recruitment: cfg.RecruitmentService,
		messaging:   cfg.Messaging,
		clock:       clk,
		timeout:     timeout,
		logger:      logger,
		config:      cfg,
	}

	for _, cmd := range []CommandHandler{
		NewRecruitCommand(cfg.RecruitmentService, cfg.Messaging, clk, timeout, logger),
		NewSetupCommand(cfg.GuildConfigRepo, timeout, logger),
		NewCustomImageCommand(cfg.GuildConfigRepo, cfg.PremiumSessionLimit, timeout, logger),
		NewRoleRestrictionCommand(cfg.GuildConfigRepo, cfg.PremiumSessionLimit, timeout, logger),
		NewUsageCommand(cfg.QuotaService, clk, timeout, logger),
	} {
		bot.commands[cmd.GetName()] = cmd
	}

	// Register the interaction handler
	cfg.Session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range b.commands {
		if err := b.RegisterCommand(cmd); err != nil {
			return err
		}
	}

	b.logger.Info("bot is running", zap.Int("commands", len(b.commandIDs)))
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.applicationID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", zap.String("command", cmdName), zap.Error(err))
		}
	}

	return b.session.Close()
}

func (b *Bot) applicationID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord, per guild when GuildID is set
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.applicationID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		zap.String("command", cmd.GetName()),
		zap.String("command_id", createdCmd.ID),
		zap.String("guild_id", b.config.GuildID),
	)

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("failed to handle command", zap.String("command", name), zap.Error(err))
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("failed to handle component interaction",
				zap.String("custom_id", i.MessageComponentData().CustomID),
				zap.Error(err),
			)
		}
	}
}

// handleComponentInteraction answers the session buttons. Teardown can take
// longer than the interaction deadline, so the reply is deferred.
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if _, _, ok := gatewayDiscord.ParseCustomID(i.MessageComponentData().CustomID); !ok {
		return RespondWithEphemeralMessage(s, i, "This button is no longer active.")
	}

	if err := DeferEphemeral(s, i); err != nil {
		return fmt.Errorf("failed to acknowledge button: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	return EditReply(s, i, b.executeButton(ctx, i))
}

func (b *Bot) executeButton(ctx context.Context, i *discordgo.InteractionCreate) string {
	action, sessionID, ok := gatewayDiscord.ParseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return "This button is no longer active."
	}
	memberID := actorID(i)

	var (
		reply string
		err   error
	)
	switch action {
	case gatewayDiscord.ActionJoin:
		_, err = b.recruitment.JoinSession(ctx, &recruitment.JoinSessionInput{SessionID: sessionID, MemberID: memberID})
		reply = "✅ You have successfully joined the session! Look for your voice channel to join!"
	case gatewayDiscord.ActionWithdraw:
		_, err = b.recruitment.WithdrawSession(ctx, &recruitment.WithdrawSessionInput{SessionID: sessionID, MemberID: memberID})
		reply = "You have withdrawn from the session. Voice channel is now locked for you!"
	case gatewayDiscord.ActionCancel:
		err = b.recruitment.CancelSession(ctx, &recruitment.CancelSessionInput{SessionID: sessionID, ActorID: memberID})
		reply = "The gaming session has been successfully canceled."
	}

	if err != nil {
		msg, expected := replyForError(b.messaging, b.clock.Now(), err)
		if !expected {
			b.logger.Error("session button failed",
				zap.String("action", action),
				zap.String("session_id", sessionID),
				zap.String("member_id", memberID),
				zap.Error(err),
			)
		}
		return msg
	}

	return reply
}
