package recruitment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
	"github.com/KirkDiggler/scoutmaster/internal/common/uuid"
	"github.com/KirkDiggler/scoutmaster/internal/gateway"
	"github.com/KirkDiggler/scoutmaster/internal/models"
	guildConfigRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config"
	sessionRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/session"
	"github.com/KirkDiggler/scoutmaster/internal/services/messaging"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"go.uber.org/zap"
)

const defaultOperationTimeout = 30 * time.Second

// service implements the Service interface
type service struct {
	sessionRepo     sessionRepo.Repository
	guildConfigRepo guildConfigRepo.Repository
	quota           quota.Service
	messaging       messaging.Service
	gateway         gateway.Gateway
	clock           clock.Clock
	uuidGenerator   uuid.Generator
	premiumLimit    int
	opTimeout       time.Duration
	logger          *zap.Logger

	locks  *sessionLocks
	timers *timerRegistry
}

// New creates a new recruitment service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.GuildConfigRepo == nil {
		return nil, ErrNilGuildConfig
	}
	if cfg.QuotaService == nil {
		return nil, ErrNilQuota
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}
	if cfg.Gateway == nil {
		return nil, ErrNilGateway
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.New()
	}

	timeout := cfg.OperationTimeout
	if timeout <= 0 {
		timeout = defaultOperationTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		sessionRepo:     cfg.SessionRepo,
		guildConfigRepo: cfg.GuildConfigRepo,
		quota:           cfg.QuotaService,
		messaging:       cfg.Messaging,
		gateway:         cfg.Gateway,
		clock:           clk,
		uuidGenerator:   gen,
		premiumLimit:    cfg.PremiumSessionLimit,
		opTimeout:       timeout,
		logger:          logger.Named("recruitment"),
		locks:           newSessionLocks(),
		timers:          newTimerRegistry(clk),
	}, nil
}

// CreateSession opens a new session. Resources created before a failure are
// rolled back best-effort; the quota slot is not refunded.
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.GuildID == "" || input.CreatorID == "" {
		return nil, errors.New("input, guild ID and creator ID cannot be empty")
	}

	invitees, err := validateCreate(input)
	if err != nil {
		return nil, err
	}

	guildCfg, err := s.guildConfigRepo.GetGuildConfig(ctx, &guildConfigRepo.GetGuildConfigInput{GuildID: input.GuildID})
	if err != nil {
		if errors.Is(err, guildConfigRepo.ErrGuildConfigNotFound) {
			return nil, ErrGuildNotConfigured
		}
		return nil, fmt.Errorf("failed to load guild config: %w", err)
	}

	if !guildCfg.AllowsRoles(input.CreatorRoleIDs) {
		return nil, ErrRoleNotAllowed
	}

	if err := s.resolveDestinations(ctx, guildCfg); err != nil {
		return nil, err
	}

	reservation, err := s.quota.Reserve(ctx, &quota.ReserveInput{
		GuildID:  input.GuildID,
		MemberID: input.CreatorID,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &models.Session{
		ID:            s.uuidGenerator.NewID(),
		GuildID:       input.GuildID,
		CreatorID:     input.CreatorID,
		ActivityLabel: strings.TrimSpace(input.ActivityLabel),
		ScheduledTime: input.ScheduledTime,
		Duration:      input.Duration,
		Capacity:      input.Capacity,
		Members:       []string{input.CreatorID},
		Status:        models.SessionStatusOpen,
		CreatedAt:     now,
		ExpiresAt:     now.Add(input.Duration),
		UpdatedAt:     now,
	}
	logger := s.logger.With(zap.String("session_id", session.ID), zap.String("guild_id", session.GuildID))

	// Held until the timer is armed; the listing's buttons are live before that
	release, err := s.locks.acquire(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.allocate(ctx, logger, session, guildCfg, invitees, input.CreatorName); err != nil {
		s.rollback(ctx, logger, session)
		return nil, err
	}

	if err := s.save(ctx, session); err != nil {
		s.rollback(ctx, logger, session)
		return nil, err
	}

	if _, err := s.gateway.SendMessage(ctx, &gateway.SendMessageInput{
		ChannelID: session.Resources.TextChannelID,
		Message:   s.messaging.ControlPanel(&messaging.ControlPanelInput{SessionID: session.ID, CreatorID: session.CreatorID}),
	}); err != nil {
		logger.Warn("failed to post control panel", zap.Error(err))
	}

	if input.OriginChannelID != "" {
		s.postSummary(ctx, logger, session, input.OriginChannelID, reservation.GuildRemaining())
	}

	s.armExpiration(session.ID, session.Duration)

	logger.Info("session created",
		zap.String("member_id", session.CreatorID),
		zap.String("activity", session.ActivityLabel),
		zap.Int("capacity", session.Capacity),
		zap.Duration("duration", session.Duration),
	)

	return &CreateSessionOutput{
		Session:        session,
		GuildRemaining: reservation.GuildRemaining(),
	}, nil
}

// validateCreate rejects bad input and returns the de-duplicated invitees
func validateCreate(input *CreateSessionInput) ([]string, error) {
	if strings.TrimSpace(input.ActivityLabel) == "" {
		return nil, ErrInvalidActivity
	}
	if input.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	var invitees []string
	for _, id := range input.InviteeIDs {
		if id == "" || id == input.CreatorID || slices.Contains(invitees, id) {
			continue
		}
		invitees = append(invitees, id)
	}

	if len(invitees) > MaxInvitees {
		return nil, ErrTooManyInvitees
	}
	if input.Capacity < 1+len(invitees) {
		return nil, ErrInvalidCapacity
	}

	return invitees, nil
}

// resolveDestinations checks that every configured channel still exists
func (s *service) resolveDestinations(ctx context.Context, cfg *models.GuildConfig) error {
	destinations := []struct {
		name string
		id   string
	}{
		{"category", cfg.CategoryID},
		{"announcement channel", cfg.AnnouncementChannelID},
		{"listing channel", cfg.ListingChannelID},
	}

	for _, dest := range destinations {
		if dest.id == "" {
			return fmt.Errorf("%w: %s is not configured", ErrResourceUnavailable, dest.name)
		}

		ok, err := s.gateway.ChannelExists(ctx, &gateway.ChannelExistsInput{GuildID: cfg.GuildID, ChannelID: dest.id})
		if err != nil {
			return fmt.Errorf("%w: %s %s: %v", ErrResourceUnavailable, dest.name, dest.id, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s %s does not exist", ErrResourceUnavailable, dest.name, dest.id)
		}
	}

	return nil
}

// allocate creates the channel pair, access overrides and public messages,
// recording each reference on the session as soon as it exists
func (s *service) allocate(ctx context.Context, logger *zap.Logger, session *models.Session, cfg *models.GuildConfig, invitees []string, creatorName string) error {
	if creatorName == "" {
		creatorName = "Crew"
	}

	channels, err := s.gateway.CreateSessionChannels(ctx, &gateway.CreateSessionChannelsInput{
		GuildID:    session.GuildID,
		CategoryID: cfg.CategoryID,
		Name:       fmt.Sprintf("%s's %s Session", creatorName, session.ActivityLabel),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create session channels: %v", ErrResourceUnavailable, err)
	}
	session.Resources.VoiceChannelID = channels.VoiceChannelID
	session.Resources.TextChannelID = channels.TextChannelID

	if err := s.gateway.RestrictChannel(ctx, &gateway.RestrictChannelInput{
		GuildID:   session.GuildID,
		ChannelID: channels.VoiceChannelID,
	}); err != nil {
		return fmt.Errorf("%w: failed to restrict voice channel: %v", ErrResourceUnavailable, err)
	}

	if err := s.gateway.GrantAccess(ctx, &gateway.AccessInput{
		ChannelID: channels.VoiceChannelID,
		UserID:    session.CreatorID,
	}); err != nil {
		return fmt.Errorf("%w: failed to grant creator access: %v", ErrResourceUnavailable, err)
	}

	for _, invitee := range invitees {
		if err := s.gateway.GrantAccess(ctx, &gateway.AccessInput{
			ChannelID: channels.VoiceChannelID,
			UserID:    invitee,
		}); err != nil {
			logger.Warn("failed to add invitee", zap.String("member_id", invitee), zap.Error(err))
			continue
		}
		session.Members = append(session.Members, invitee)

		if err := s.gateway.DirectMessage(ctx, &gateway.DirectMessageInput{
			UserID: invitee,
			Message: s.messaging.InviteDM(&messaging.InviteInput{
				CreatorID:      session.CreatorID,
				ActivityLabel:  session.ActivityLabel,
				VoiceChannelID: channels.VoiceChannelID,
			}),
		}); err != nil {
			logger.Info("could not notify invitee", zap.String("member_id", invitee), zap.Error(err))
		}
	}
	session.CapacityRemaining = session.Capacity - len(session.Members)

	if len(session.Members) > 1 {
		if _, err := s.gateway.SendMessage(ctx, &gateway.SendMessageInput{
			ChannelID: channels.TextChannelID,
			Message:   s.messaging.Roster(&messaging.RosterInput{MemberIDs: session.Members[1:]}),
		}); err != nil {
			logger.Warn("failed to post roster", zap.Error(err))
		}
	}

	announcement, err := s.sendAnnouncement(ctx, logger, session, cfg)
	if err != nil {
		return fmt.Errorf("%w: failed to send announcement: %v", ErrResourceUnavailable, err)
	}
	session.Resources.AnnouncementChannelID = cfg.AnnouncementChannelID
	session.Resources.AnnouncementMessageID = announcement

	var image string
	if cfg.SessionLimit > s.premiumLimit {
		image = cfg.CustomImageFor(session.ActivityLabel)
	}

	listing, err := s.gateway.SendMessage(ctx, &gateway.SendMessageInput{
		ChannelID: cfg.ListingChannelID,
		Message:   s.messaging.Listing(&messaging.ListingInput{Session: session, ImageURL: image}),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to send listing: %v", ErrResourceUnavailable, err)
	}
	session.Resources.ListingChannelID = cfg.ListingChannelID
	session.Resources.ListingMessageID = listing.MessageID

	return nil
}

// sendAnnouncement pings @everyone when configured, falling back to a plain post
func (s *service) sendAnnouncement(ctx context.Context, logger *zap.Logger, session *models.Session, cfg *models.GuildConfig) (string, error) {
	input := &messaging.AnnouncementInput{
		CreatorID:        session.CreatorID,
		ActivityLabel:    session.ActivityLabel,
		ListingChannelID: cfg.ListingChannelID,
		MentionEveryone:  cfg.UseMention,
	}

	out, err := s.gateway.SendMessage(ctx, &gateway.SendMessageInput{
		ChannelID: cfg.AnnouncementChannelID,
		Message:   s.messaging.Announcement(input),
	})
	if err != nil && cfg.UseMention {
		logger.Info("announcement with mention failed, retrying without", zap.Error(err))
		input.MentionEveryone = false
		out, err = s.gateway.SendMessage(ctx, &gateway.SendMessageInput{
			ChannelID: cfg.AnnouncementChannelID,
			Message:   s.messaging.Announcement(input),
		})
	}
	if err != nil {
		return "", err
	}

	return out.MessageID, nil
}

// postSummary posts the remaining-sessions note and tracks it for cleanup
func (s *service) postSummary(ctx context.Context, logger *zap.Logger, session *models.Session, channelID string, remaining int) {
	out, err := s.gateway.SendMessage(ctx, &gateway.SendMessageInput{
		ChannelID: channelID,
		Message:   s.messaging.Summary(&messaging.SummaryInput{GuildRemaining: remaining}),
	})
	if err != nil {
		logger.Warn("failed to post summary", zap.Error(err))
		return
	}

	session.Resources.SummaryChannelID = channelID
	session.Resources.SummaryMessageID = out.MessageID
	if err := s.save(ctx, session); err != nil {
		logger.Warn("failed to track summary message", zap.Error(err))
	}
}

// rollback removes whatever allocate managed to create
func (s *service) rollback(ctx context.Context, logger *zap.Logger, session *models.Session) {
	left := s.teardown(ctx, logger, session, teardownCancel)
	if left.HasPendingCleanup() || left.ListingMessageID != "" {
		logger.Error("rollback left resources behind", zap.Any("resources", left))
		return
	}
	logger.Info("rolled back partially created session")
}

// JoinSession adds the member, grants voice access and announces the join
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	if input == nil || input.SessionID == "" || input.MemberID == "" {
		return nil, errors.New("input, session ID and member ID cannot be empty")
	}

	release, err := s.locks.acquire(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.loadOpen(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.IsMember(input.MemberID) {
		return nil, ErrAlreadyMember
	}
	if session.IsFull() {
		return nil, ErrSessionFull
	}

	if err := s.gateway.GrantAccess(ctx, &gateway.AccessInput{
		ChannelID: session.Resources.VoiceChannelID,
		UserID:    input.MemberID,
	}); err != nil {
		return nil, fmt.Errorf("failed to grant voice access: %w", err)
	}

	// Member and counter change in one record write
	session.Members = append(session.Members, input.MemberID)
	session.CapacityRemaining--
	if err := s.save(ctx, session); err != nil {
		s.revokeQuietly(ctx, session, input.MemberID)
		return nil, err
	}

	notice := &messaging.NoticeInput{Session: session, MemberID: input.MemberID}
	s.announceChange(ctx, session, s.messaging.JoinNotice(notice), s.messaging.ChatJoinNotice(notice))

	s.logger.Info("member joined",
		zap.String("session_id", session.ID),
		zap.String("member_id", input.MemberID),
		zap.Int("capacity_remaining", session.CapacityRemaining),
	)

	return &JoinSessionOutput{Session: session}, nil
}

// WithdrawSession removes the member, revokes voice access and announces it
func (s *service) WithdrawSession(ctx context.Context, input *WithdrawSessionInput) (*WithdrawSessionOutput, error) {
	if input == nil || input.SessionID == "" || input.MemberID == "" {
		return nil, errors.New("input, session ID and member ID cannot be empty")
	}

	release, err := s.locks.acquire(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.loadOpen(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if input.MemberID == session.CreatorID {
		return nil, ErrCreatorCannotWithdraw
	}
	if !session.IsMember(input.MemberID) {
		return nil, ErrNotMember
	}

	session.Members = slices.DeleteFunc(session.Members, func(id string) bool {
		return id == input.MemberID
	})
	session.CapacityRemaining++
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.revokeQuietly(ctx, session, input.MemberID)

	notice := &messaging.NoticeInput{Session: session, MemberID: input.MemberID}
	s.announceChange(ctx, session, s.messaging.WithdrawNotice(notice), s.messaging.ChatWithdrawNotice(notice))

	s.logger.Info("member withdrew",
		zap.String("session_id", session.ID),
		zap.String("member_id", input.MemberID),
		zap.Int("capacity_remaining", session.CapacityRemaining),
	)

	return &WithdrawSessionOutput{Session: session}, nil
}

// announceChange posts the tracked listing notice and the chat notice, then
// refreshes the listing. All of it is best-effort.
func (s *service) announceChange(ctx context.Context, session *models.Session, listingNotice, chatNotice *models.Message) {
	logger := s.logger.With(zap.String("session_id", session.ID))
	res := &session.Resources

	if res.ListingChannelID != "" {
		out, err := s.gateway.SendMessage(ctx, &gateway.SendMessageInput{ChannelID: res.ListingChannelID, Message: listingNotice})
		if err != nil {
			logger.Warn("failed to post listing notice", zap.Error(err))
		} else {
			res.NotificationMessageIDs = append(res.NotificationMessageIDs, out.MessageID)
			if err := s.save(ctx, session); err != nil {
				logger.Warn("failed to track listing notice", zap.Error(err))
			}
		}
	}

	if res.TextChannelID != "" {
		if _, err := s.gateway.SendMessage(ctx, &gateway.SendMessageInput{ChannelID: res.TextChannelID, Message: chatNotice}); err != nil {
			logger.Warn("failed to post chat notice", zap.Error(err))
		}
	}

	if res.ListingMessageID != "" {
		if err := s.gateway.EditMessage(ctx, &gateway.EditMessageInput{
			ChannelID: res.ListingChannelID,
			MessageID: res.ListingMessageID,
			Message:   s.messaging.Listing(&messaging.ListingInput{Session: session, ImageURL: s.listingImage(ctx, session)}),
		}); err != nil {
			logger.Warn("failed to refresh listing", zap.Error(err))
		}
	}
}

// listingImage looks the custom image up again so refreshed listings keep it
func (s *service) listingImage(ctx context.Context, session *models.Session) string {
	cfg, err := s.guildConfigRepo.GetGuildConfig(ctx, &guildConfigRepo.GetGuildConfigInput{GuildID: session.GuildID})
	if err != nil || cfg.SessionLimit <= s.premiumLimit {
		return ""
	}
	return cfg.CustomImageFor(session.ActivityLabel)
}

func (s *service) revokeQuietly(ctx context.Context, session *models.Session, memberID string) {
	if session.Resources.VoiceChannelID == "" {
		return
	}

	err := s.gateway.RevokeAccess(ctx, &gateway.AccessInput{
		ChannelID: session.Resources.VoiceChannelID,
		UserID:    memberID,
	})
	if err != nil && !gateway.IsNotFound(err) {
		s.logger.Warn("failed to revoke voice access",
			zap.String("session_id", session.ID),
			zap.String("member_id", memberID),
			zap.Error(err),
		)
	}
}

func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	session, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{Session: session}, nil
}

// Start re-arms timers for every live session. Sessions already past their
// expiry fire immediately.
func (s *service) Start(ctx context.Context) error {
	guilds, err := s.sessionRepo.ListGuilds(ctx)
	if err != nil {
		return fmt.Errorf("failed to list guilds: %w", err)
	}

	now := s.clock.Now()
	armed := 0
	for _, guildID := range guilds {
		out, err := s.sessionRepo.ListSessionsByGuild(ctx, &sessionRepo.ListSessionsByGuildInput{GuildID: guildID})
		if err != nil {
			s.logger.Error("failed to list sessions", zap.String("guild_id", guildID), zap.Error(err))
			continue
		}

		for _, session := range out.Sessions {
			if !session.IsLive() {
				continue
			}
			s.armExpiration(session.ID, session.ExpiresAt.Sub(now))
			armed++
		}
	}

	s.logger.Info("expiration timers restored", zap.Int("sessions", armed))
	return nil
}

func (s *service) Stop() {
	s.timers.stopAll()
}

func (s *service) armExpiration(sessionID string, d time.Duration) {
	s.timers.arm(sessionID, d, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
		defer cancel()

		if err := s.ExpireSession(ctx, &ExpireSessionInput{SessionID: sessionID}); err != nil {
			s.logger.Error("session expiration failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	})
}

// load maps the store's not-found onto the service error
func (s *service) load(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// loadOpen loads a session that still accepts membership changes
func (s *service) loadOpen(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusOpen {
		return nil, ErrSessionClosed
	}
	return session, nil
}

func (s *service) save(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = s.clock.Now()
	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

var _ Service = (*service)(nil)
