package reset

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	sessionRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/session"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"github.com/KirkDiggler/scoutmaster/internal/services/recruitment"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 4
	defaultTimeout     = 10 * time.Minute
)

type scheduler struct {
	quota       quota.Service
	sessionRepo sessionRepo.Repository
	recruitment recruitment.Service
	concurrency int
	timeout     time.Duration
	logger      *zap.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

// New creates a new reset scheduler
func New(cfg *Config) (*scheduler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.QuotaService == nil {
		return nil, ErrNilQuota
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.RecruitmentService == nil {
		return nil, ErrNilRecruitment
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("reset")

	return &scheduler{
		quota:       cfg.QuotaService,
		sessionRepo: cfg.SessionRepo,
		recruitment: cfg.RecruitmentService,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
	}, nil
}

func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	// A stopped cron keeps its entries, so every start gets a fresh one
	logger := cronLogger{sugar: s.logger.Sugar()}
	s.cron = cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	s.cron.Schedule(boundarySchedule{quota: s.quota}, cron.FuncJob(s.run))
	s.cron.Start()
	s.started = true

	s.logger.Info("reset scheduler started", zap.Time("next_reset", s.quota.NextReset(time.Now())))
	return nil
}

func (s *scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	<-s.cron.Stop().Done()
	s.started = false
	s.logger.Info("reset scheduler stopped")
}

// run is the cron job body
func (s *scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	out, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("reset pass failed", zap.Error(err))
		return
	}

	s.logger.Info("reset pass finished",
		zap.Int("communities", out.Communities),
		zap.Int("sessions_closed", out.SessionsClosed),
		zap.Int("failures", out.Failures),
		zap.Time("next_reset", s.quota.NextReset(time.Now())),
	)
}

// RunOnce resets every community. A failure in one community is logged and
// counted; it never stops the others.
func (s *scheduler) RunOnce(ctx context.Context) (*RunOutput, error) {
	guilds, err := s.quota.ListCommunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list communities: %w", err)
	}

	var closed, failures atomic.Int64

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, guildID := range guilds {
		guildID := guildID
		g.Go(func() error {
			n, failed := s.resetCommunity(ctx, guildID)
			closed.Add(int64(n))
			failures.Add(int64(failed))
			return nil
		})
	}
	_ = g.Wait()

	return &RunOutput{
		Communities:    len(guilds),
		SessionsClosed: int(closed.Load()),
		Failures:       int(failures.Load()),
	}, nil
}

// resetCommunity zeroes the guild's counters and force closes its sessions
func (s *scheduler) resetCommunity(ctx context.Context, guildID string) (closed, failures int) {
	logger := s.logger.With(zap.String("guild_id", guildID))

	if err := s.quota.ResetCommunity(ctx, &quota.ResetCommunityInput{GuildID: guildID}); err != nil {
		logger.Error("failed to reset counters", zap.Error(err))
		failures++
	}

	out, err := s.sessionRepo.ListSessionsByGuild(ctx, &sessionRepo.ListSessionsByGuildInput{GuildID: guildID})
	if err != nil {
		logger.Error("failed to list sessions", zap.Error(err))
		return closed, failures + 1
	}

	for _, session := range out.Sessions {
		if err := s.recruitment.ForceClose(ctx, &recruitment.ForceCloseInput{SessionID: session.ID}); err != nil {
			logger.Error("failed to force close session", zap.String("session_id", session.ID), zap.Error(err))
			failures++
			continue
		}
		closed++
	}

	return closed, failures
}

var _ Scheduler = (*scheduler)(nil)
