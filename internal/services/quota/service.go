package quota

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
	guildConfigRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config"
	sessionRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/session"
	usageRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/usage"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	usageRepo       usageRepo.Repository
	sessionRepo     sessionRepo.Repository
	guildConfigRepo guildConfigRepo.Repository
	clock           clock.Clock
	location        *time.Location
	resetHour       int
	resetMinute     int
	sessionLimit    int
	memberLimit     int
	logger          *zap.Logger
}

// New creates a new quota service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.UsageRepo == nil {
		return nil, ErrNilUsageRepo
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.GuildConfigRepo == nil {
		return nil, ErrNilGuildConfig
	}
	if cfg.Location == nil {
		return nil, ErrNilLocation
	}
	if cfg.ResetHour < 0 || cfg.ResetHour > 23 || cfg.ResetMinute < 0 || cfg.ResetMinute > 59 {
		return nil, ErrInvalidResetClock
	}
	if cfg.DefaultSessionLimit < 1 || cfg.DefaultMemberLimit < 1 {
		return nil, ErrInvalidLimit
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		usageRepo:       cfg.UsageRepo,
		sessionRepo:     cfg.SessionRepo,
		guildConfigRepo: cfg.GuildConfigRepo,
		clock:           clk,
		location:        cfg.Location,
		resetHour:       cfg.ResetHour,
		resetMinute:     cfg.ResetMinute,
		sessionLimit:    cfg.DefaultSessionLimit,
		memberLimit:     cfg.DefaultMemberLimit,
		logger:          logger.Named("quota"),
	}, nil
}

// NextResetAfter returns the first hour:minute boundary in loc strictly after now.
// Days are advanced with time.Date so DST transitions keep the wall-clock time.
func NextResetAfter(now time.Time, loc *time.Location, hour, minute int) time.Time {
	local := now.In(loc)
	y, m, d := local.Date()

	boundary := time.Date(y, m, d, hour, minute, 0, 0, loc)
	if !local.Before(boundary) {
		boundary = time.Date(y, m, d+1, hour, minute, 0, 0, loc)
	}

	return boundary
}

// NextReset returns the next reset boundary after now
func (s *service) NextReset(now time.Time) time.Time {
	return NextResetAfter(now, s.location, s.resetHour, s.resetMinute)
}

// Reserve checks live sessions, then atomically bumps both daily counters
func (s *service) Reserve(ctx context.Context, input *ReserveInput) (*ReserveOutput, error) {
	if input == nil || input.GuildID == "" || input.MemberID == "" {
		return nil, errors.New("input, guild ID and member ID cannot be empty")
	}

	guildLimit, memberLimit, err := s.limitsFor(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	resetAt := s.NextReset(s.clock.Now())

	// Counters can drift below the real session count after a crash, so live
	// sessions are checked against the guild limit as well.
	guildLive, err := s.countLive(ctx, input.GuildID, "")
	if err != nil {
		return nil, err
	}
	memberLive, err := s.countLive(ctx, input.GuildID, input.MemberID)
	if err != nil {
		return nil, err
	}
	if guildLive >= guildLimit || memberLive >= guildLimit {
		s.logger.Info("reservation denied by live sessions",
			zap.String("guild_id", input.GuildID),
			zap.String("member_id", input.MemberID),
			zap.Int("guild_live", guildLive),
			zap.Int("member_live", memberLive),
			zap.Int("limit", guildLimit),
		)
		return nil, &QuotaExceededError{
			Reason:  DenyReasonActiveSessions,
			Limit:   guildLimit,
			ResetAt: resetAt,
		}
	}

	out, err := s.usageRepo.ReserveSlot(ctx, &usageRepo.ReserveSlotInput{
		GuildID:     input.GuildID,
		MemberID:    input.MemberID,
		GuildLimit:  guildLimit,
		MemberLimit: memberLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reserve slot: %w", err)
	}

	if !out.Reserved {
		denied := &QuotaExceededError{ResetAt: resetAt}
		switch out.DeniedBy {
		case usageRepo.LimitKindMember:
			denied.Reason = DenyReasonMemberLimit
			denied.Limit = memberLimit
		default:
			denied.Reason = DenyReasonGuildLimit
			denied.Limit = guildLimit
		}

		s.logger.Info("reservation denied",
			zap.String("guild_id", input.GuildID),
			zap.String("member_id", input.MemberID),
			zap.String("reason", string(denied.Reason)),
			zap.Int("guild_count", out.GuildCount),
			zap.Int("member_count", out.MemberCount),
		)
		return nil, denied
	}

	return &ReserveOutput{
		GuildCount:  out.GuildCount,
		MemberCount: out.MemberCount,
		GuildLimit:  guildLimit,
		MemberLimit: memberLimit,
		ResetAt:     resetAt,
	}, nil
}

// GetUsage reads the counters without changing them
func (s *service) GetUsage(ctx context.Context, input *GetUsageInput) (*GetUsageOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	guildLimit, memberLimit, err := s.limitsFor(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	guildCount, err := s.usageRepo.GetCount(ctx, &usageRepo.GetCountInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("failed to get guild usage: %w", err)
	}

	var memberCount int
	if input.MemberID != "" {
		memberCount, err = s.usageRepo.GetCount(ctx, &usageRepo.GetCountInput{
			GuildID:  input.GuildID,
			MemberID: input.MemberID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get member usage: %w", err)
		}
	}

	return &GetUsageOutput{
		GuildCount:      guildCount,
		MemberCount:     memberCount,
		GuildLimit:      guildLimit,
		MemberLimit:     memberLimit,
		GuildRemaining:  max(guildLimit-guildCount, 0),
		MemberRemaining: max(memberLimit-memberCount, 0),
		ResetAt:         s.NextReset(s.clock.Now()),
	}, nil
}

// ListCommunities merges guilds known to the counters and to the session store
func (s *service) ListCommunities(ctx context.Context) ([]string, error) {
	counters, err := s.usageRepo.ListCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage counters: %w", err)
	}

	guilds, err := s.sessionRepo.ListGuilds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list session guilds: %w", err)
	}

	for _, counter := range counters.Counters {
		guilds = append(guilds, counter.GuildID)
	}

	slices.Sort(guilds)
	return slices.Compact(guilds), nil
}

// ResetCommunity zeroes every counter of one guild. Counters are never deleted.
func (s *service) ResetCommunity(ctx context.Context, input *ResetCommunityInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	counters, err := s.usageRepo.ListCounters(ctx)
	if err != nil {
		return fmt.Errorf("failed to list usage counters: %w", err)
	}

	if err := s.usageRepo.SetCount(ctx, &usageRepo.SetCountInput{GuildID: input.GuildID}); err != nil {
		return fmt.Errorf("failed to reset guild counter: %w", err)
	}

	var errs []error
	for _, counter := range counters.Counters {
		if counter.GuildID != input.GuildID || counter.IsGuildCounter() || counter.Count == 0 {
			continue
		}

		err := s.usageRepo.SetCount(ctx, &usageRepo.SetCountInput{
			GuildID:  counter.GuildID,
			MemberID: counter.MemberID,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to reset member %s: %w", counter.MemberID, err))
		}
	}

	return errors.Join(errs...)
}

// limitsFor resolves the guild's plan limits, falling back to the defaults
func (s *service) limitsFor(ctx context.Context, guildID string) (int, int, error) {
	guildLimit, memberLimit := s.sessionLimit, s.memberLimit

	cfg, err := s.guildConfigRepo.GetGuildConfig(ctx, &guildConfigRepo.GetGuildConfigInput{GuildID: guildID})
	if err != nil {
		if errors.Is(err, guildConfigRepo.ErrGuildConfigNotFound) {
			return guildLimit, memberLimit, nil
		}
		return 0, 0, fmt.Errorf("failed to load quota policy: %w", err)
	}

	if cfg.SessionLimit > 0 {
		guildLimit = cfg.SessionLimit
	}
	if cfg.MemberDailyLimit > 0 {
		memberLimit = cfg.MemberDailyLimit
	}

	return guildLimit, memberLimit, nil
}

// countLive counts sessions that have not finished cleanup, for the guild or one creator
func (s *service) countLive(ctx context.Context, guildID, creatorID string) (int, error) {
	var (
		out *sessionRepo.ListSessionsOutput
		err error
	)
	if creatorID == "" {
		out, err = s.sessionRepo.ListSessionsByGuild(ctx, &sessionRepo.ListSessionsByGuildInput{GuildID: guildID})
	} else {
		out, err = s.sessionRepo.ListSessionsByGuildAndCreator(ctx, &sessionRepo.ListSessionsByGuildAndCreatorInput{
			GuildID:   guildID,
			CreatorID: creatorID,
		})
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count live sessions: %w", err)
	}

	live := 0
	for _, session := range out.Sessions {
		if session.IsLive() {
			live++
		}
	}

	return live, nil
}

var _ Service = (*service)(nil)
