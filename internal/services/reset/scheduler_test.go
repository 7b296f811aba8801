package reset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/models"
	sessionRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/session"
	sessionMocks "github.com/KirkDiggler/scoutmaster/internal/repositories/session/mocks"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	quotaMocks "github.com/KirkDiggler/scoutmaster/internal/services/quota/mocks"
	"github.com/KirkDiggler/scoutmaster/internal/services/recruitment"
	recruitmentMocks "github.com/KirkDiggler/scoutmaster/internal/services/recruitment/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

type SchedulerTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockQuota       *quotaMocks.MockService
	mockSessionRepo *sessionMocks.MockRepository
	mockRecruitment *recruitmentMocks.MockService
	scheduler       *scheduler
	ctx             context.Context
}

func (s *SchedulerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQuota = quotaMocks.NewMockService(s.mockCtrl)
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockRecruitment = recruitmentMocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()

	sched, err := New(&Config{
		QuotaService:       s.mockQuota,
		SessionRepo:        s.mockSessionRepo,
		RecruitmentService: s.mockRecruitment,
		Concurrency:        2,
		Logger:             zaptest.NewLogger(s.T()),
	})
	s.Require().NoError(err)
	s.scheduler = sched
}

func (s *SchedulerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (s *SchedulerTestSuite) expectSessions(guildID string, ids ...string) {
	sessions := make([]*models.Session, 0, len(ids))
	for _, id := range ids {
		sessions = append(sessions, &models.Session{ID: id, GuildID: guildID})
	}
	s.mockSessionRepo.EXPECT().
		ListSessionsByGuild(gomock.Any(), &sessionRepo.ListSessionsByGuildInput{GuildID: guildID}).
		Return(&sessionRepo.ListSessionsOutput{Sessions: sessions}, nil)
}

func (s *SchedulerTestSuite) TestRunOnce() {
	s.mockQuota.EXPECT().ListCommunities(gomock.Any()).Return([]string{"g1", "g2"}, nil)

	s.mockQuota.EXPECT().ResetCommunity(gomock.Any(), &quota.ResetCommunityInput{GuildID: "g1"}).Return(nil)
	s.expectSessions("g1", "s1", "s2")
	s.mockRecruitment.EXPECT().ForceClose(gomock.Any(), &recruitment.ForceCloseInput{SessionID: "s1"}).Return(nil)
	s.mockRecruitment.EXPECT().ForceClose(gomock.Any(), &recruitment.ForceCloseInput{SessionID: "s2"}).Return(nil)

	s.mockQuota.EXPECT().ResetCommunity(gomock.Any(), &quota.ResetCommunityInput{GuildID: "g2"}).Return(nil)
	s.expectSessions("g2")

	out, err := s.scheduler.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(&RunOutput{Communities: 2, SessionsClosed: 2}, out)
}

func (s *SchedulerTestSuite) TestRunOnceIsolatesFailures() {
	s.mockQuota.EXPECT().ListCommunities(gomock.Any()).Return([]string{"g1", "g2", "g3"}, nil)

	// g1: counter reset fails, sessions are still closed
	s.mockQuota.EXPECT().ResetCommunity(gomock.Any(), &quota.ResetCommunityInput{GuildID: "g1"}).Return(errors.New("redis down"))
	s.expectSessions("g1", "s1")
	s.mockRecruitment.EXPECT().ForceClose(gomock.Any(), &recruitment.ForceCloseInput{SessionID: "s1"}).Return(nil)

	// g2: one session fails, the next one is still attempted
	s.mockQuota.EXPECT().ResetCommunity(gomock.Any(), &quota.ResetCommunityInput{GuildID: "g2"}).Return(nil)
	s.expectSessions("g2", "s2", "s3")
	s.mockRecruitment.EXPECT().ForceClose(gomock.Any(), &recruitment.ForceCloseInput{SessionID: "s2"}).Return(errors.New("delete failed"))
	s.mockRecruitment.EXPECT().ForceClose(gomock.Any(), &recruitment.ForceCloseInput{SessionID: "s3"}).Return(nil)

	// g3: sessions cannot be listed
	s.mockQuota.EXPECT().ResetCommunity(gomock.Any(), &quota.ResetCommunityInput{GuildID: "g3"}).Return(nil)
	s.mockSessionRepo.EXPECT().
		ListSessionsByGuild(gomock.Any(), &sessionRepo.ListSessionsByGuildInput{GuildID: "g3"}).
		Return(nil, errors.New("timeout"))

	out, err := s.scheduler.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(&RunOutput{Communities: 3, SessionsClosed: 2, Failures: 3}, out)
}

func (s *SchedulerTestSuite) TestRunOnceListFailure() {
	s.mockQuota.EXPECT().ListCommunities(gomock.Any()).Return(nil, errors.New("redis down"))

	_, err := s.scheduler.RunOnce(s.ctx)
	s.Error(err)
}

func (s *SchedulerTestSuite) TestBoundaryScheduleUsesQuotaRule() {
	now := time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	next := time.Date(2025, 4, 6, 4, 0, 0, 0, time.UTC)
	s.mockQuota.EXPECT().NextReset(now).Return(next)

	s.Equal(next, boundarySchedule{quota: s.mockQuota}.Next(now))
}

func (s *SchedulerTestSuite) TestStartStop() {
	s.mockQuota.EXPECT().NextReset(gomock.Any()).DoAndReturn(func(now time.Time) time.Time {
		return now.Add(24 * time.Hour)
	}).AnyTimes()

	s.Require().NoError(s.scheduler.Start())
	s.ErrorIs(s.scheduler.Start(), ErrAlreadyStarted)
	s.scheduler.Stop()

	// Stopping twice is a no-op
	s.scheduler.Stop()
}

func (s *SchedulerTestSuite) TestRestartSchedulesSingleJob() {
	s.mockQuota.EXPECT().NextReset(gomock.Any()).DoAndReturn(func(now time.Time) time.Time {
		return now.Add(24 * time.Hour)
	}).AnyTimes()

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.scheduler.Start())
		s.Len(s.scheduler.cron.Entries(), 1)
		s.scheduler.Stop()
	}
}

func (s *SchedulerTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{QuotaService: s.mockQuota})
	s.ErrorIs(err, ErrNilSessionRepo)

	_, err = New(&Config{QuotaService: s.mockQuota, SessionRepo: s.mockSessionRepo})
	s.ErrorIs(err, ErrNilRecruitment)
}
