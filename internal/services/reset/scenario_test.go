package reset

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
	"github.com/KirkDiggler/scoutmaster/internal/common/uuid"
	"github.com/KirkDiggler/scoutmaster/internal/gateway"
	"github.com/KirkDiggler/scoutmaster/internal/models"
	guildConfigRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config"
	sessionRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/session"
	usageRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/usage"
	"github.com/KirkDiggler/scoutmaster/internal/services/messaging"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"github.com/KirkDiggler/scoutmaster/internal/services/recruitment"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

// ResetScenarioTestSuite runs reset passes against real services on miniredis
type ResetScenarioTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client

	sessions sessionRepo.Repository
	usage    usageRepo.Repository
	guilds   guildConfigRepo.Repository

	gateway     *recordingGateway
	recruitment recruitment.Service
	scheduler   *scheduler
	ctx         context.Context
}

func (s *ResetScenarioTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.ctx = context.Background()

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	usage, err := usageRepo.NewRedis(&usageRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	guilds, err := guildConfigRepo.NewRedis(&guildConfigRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.sessions, s.usage, s.guilds = sessions, usage, guilds

	s.gateway = newRecordingGateway()
	for _, guildID := range []string{"guild-a", "guild-b"} {
		cfg := &models.GuildConfig{
			GuildID:               guildID,
			CategoryID:            guildID + "-category",
			AnnouncementChannelID: guildID + "-announce",
			ListingChannelID:      guildID + "-listing",
			SessionLimit:          5,
			MemberDailyLimit:      5,
		}
		s.Require().NoError(s.guilds.SaveGuildConfig(s.ctx, &guildConfigRepo.SaveGuildConfigInput{Config: cfg}))
		s.gateway.addChannels(cfg.CategoryID, cfg.AnnouncementChannelID, cfg.ListingChannelID)
	}

	logger := zaptest.NewLogger(s.T())
	clk := &clock.DefaultClock{}

	q, err := quota.New(&quota.Config{
		UsageRepo:           usage,
		SessionRepo:         sessions,
		GuildConfigRepo:     guilds,
		Clock:               clk,
		Location:            time.UTC,
		DefaultSessionLimit: 3,
		DefaultMemberLimit:  1,
		Logger:              logger,
	})
	s.Require().NoError(err)

	msgs, err := messaging.New(&messaging.Config{DefaultImageURL: "https://example.com/default.jpg"})
	s.Require().NoError(err)

	rec, err := recruitment.New(&recruitment.Config{
		SessionRepo:         sessions,
		GuildConfigRepo:     guilds,
		QuotaService:        q,
		Messaging:           msgs,
		Gateway:             s.gateway,
		Clock:               clk,
		UUIDGenerator:       uuid.New(),
		PremiumSessionLimit: 3,
		Logger:              logger,
	})
	s.Require().NoError(err)
	s.recruitment = rec

	sched, err := New(&Config{
		QuotaService:       q,
		SessionRepo:        sessions,
		RecruitmentService: rec,
		Concurrency:        2,
		Logger:             logger,
	})
	s.Require().NoError(err)
	s.scheduler = sched
}

func (s *ResetScenarioTestSuite) TearDownTest() {
	s.recruitment.Stop()
	s.client.Close()
	s.mr.Close()
}

func TestResetScenarioSuite(t *testing.T) {
	suite.Run(t, new(ResetScenarioTestSuite))
}

func (s *ResetScenarioTestSuite) create(guildID, creatorID string) *models.Session {
	out, err := s.recruitment.CreateSession(s.ctx, &recruitment.CreateSessionInput{
		GuildID:       guildID,
		CreatorID:     creatorID,
		ActivityLabel: "Helldivers 2",
		Duration:      2 * time.Hour,
		Capacity:      4,
	})
	s.Require().NoError(err)
	return out.Session
}

func (s *ResetScenarioTestSuite) TestResetClosesEverythingAndRepeatsAsNoOp() {
	first := s.create("guild-a", "creator-1")
	second := s.create("guild-a", "creator-2")
	third := s.create("guild-b", "creator-3")
	_, err := s.recruitment.JoinSession(s.ctx, &recruitment.JoinSessionInput{SessionID: first.ID, MemberID: "alice"})
	s.Require().NoError(err)

	out, err := s.scheduler.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(&RunOutput{Communities: 2, SessionsClosed: 3, Failures: 0}, out)

	counters, err := s.usage.ListCounters(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(counters.Counters)
	for _, counter := range counters.Counters {
		s.Zero(counter.Count, "guild %s member %q", counter.GuildID, counter.MemberID)
	}

	for _, guildID := range []string{"guild-a", "guild-b"} {
		listed, err := s.sessions.ListSessionsByGuild(s.ctx, &sessionRepo.ListSessionsByGuildInput{GuildID: guildID})
		s.Require().NoError(err)
		s.Empty(listed.Sessions, guildID)
	}

	for _, session := range []*models.Session{first, second, third} {
		s.False(s.gateway.hasChannel(session.Resources.VoiceChannelID))
		listing := s.gateway.message(session.Resources.ListingMessageID)
		s.Require().NotNil(listing, session.ID)
		s.Equal(models.MessageKindListingEnded, listing.Kind)
	}

	calls := s.gateway.callCount()
	again, err := s.scheduler.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, again.SessionsClosed)
	s.Equal(0, again.Failures)
	s.Equal(calls, s.gateway.callCount())
}

func (s *ResetScenarioTestSuite) TestResetAllowsNewSessionsAfterLimit() {
	s.Require().NoError(s.guilds.SaveGuildConfig(s.ctx, &guildConfigRepo.SaveGuildConfigInput{
		Config: &models.GuildConfig{
			GuildID:               "guild-a",
			CategoryID:            "guild-a-category",
			AnnouncementChannelID: "guild-a-announce",
			ListingChannelID:      "guild-a-listing",
			SessionLimit:          1,
			MemberDailyLimit:      1,
		},
	}))
	s.create("guild-a", "creator-1")

	_, err := s.scheduler.RunOnce(s.ctx)
	s.Require().NoError(err)

	s.create("guild-a", "creator-1")
}

// recordingGateway keeps channels and messages in memory and counts calls
type recordingGateway struct {
	mu       sync.Mutex
	nextID   int
	calls    int
	channels map[string]bool
	messages map[string]*models.Message
}

func newRecordingGateway() *recordingGateway {
	return &recordingGateway{
		channels: make(map[string]bool),
		messages: make(map[string]*models.Message),
	}
}

func (g *recordingGateway) addChannels(ids ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range ids {
		g.channels[id] = true
	}
}

func (g *recordingGateway) touch() {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
}

func (g *recordingGateway) ChannelExists(_ context.Context, input *gateway.ChannelExistsInput) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.channels[input.ChannelID], nil
}

func (g *recordingGateway) CreateSessionChannels(_ context.Context, _ *gateway.CreateSessionChannelsInput) (*gateway.CreateSessionChannelsOutput, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.nextID++
	id := fmt.Sprintf("voice-%d", g.nextID)
	g.channels[id] = true
	return &gateway.CreateSessionChannelsOutput{VoiceChannelID: id, TextChannelID: id}, nil
}

func (g *recordingGateway) RestrictChannel(_ context.Context, _ *gateway.RestrictChannelInput) error {
	g.touch()
	return nil
}

func (g *recordingGateway) GrantAccess(_ context.Context, _ *gateway.AccessInput) error {
	g.touch()
	return nil
}

func (g *recordingGateway) RevokeAccess(_ context.Context, _ *gateway.AccessInput) error {
	g.touch()
	return nil
}

func (g *recordingGateway) DeleteChannel(_ context.Context, input *gateway.DeleteChannelInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if !g.channels[input.ChannelID] {
		return gateway.ErrNotFound
	}
	delete(g.channels, input.ChannelID)
	return nil
}

func (g *recordingGateway) SendMessage(_ context.Context, input *gateway.SendMessageInput) (*gateway.SendMessageOutput, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if !g.channels[input.ChannelID] {
		return nil, gateway.ErrNotFound
	}
	g.nextID++
	id := fmt.Sprintf("msg-%d", g.nextID)
	g.messages[id] = input.Message
	return &gateway.SendMessageOutput{MessageID: id}, nil
}

func (g *recordingGateway) EditMessage(_ context.Context, input *gateway.EditMessageInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if _, ok := g.messages[input.MessageID]; !ok {
		return gateway.ErrNotFound
	}
	g.messages[input.MessageID] = input.Message
	return nil
}

func (g *recordingGateway) DeleteMessage(_ context.Context, input *gateway.DeleteMessageInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if _, ok := g.messages[input.MessageID]; !ok {
		return gateway.ErrNotFound
	}
	delete(g.messages, input.MessageID)
	return nil
}

func (g *recordingGateway) DirectMessage(_ context.Context, _ *gateway.DirectMessageInput) error {
	g.touch()
	return nil
}

func (g *recordingGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *recordingGateway) hasChannel(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.channels[id]
}

func (g *recordingGateway) message(id string) *models.Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.messages[id]
}
