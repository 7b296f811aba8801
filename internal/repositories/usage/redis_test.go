package usage

import (
	"context"
	"sync"
	"testing"

	"github.com/KirkDiggler/scoutmaster/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestGetCountDefaultsToZero() {
	count, err := s.repo.GetCount(s.ctx, &GetCountInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal(0, count)

	count, err = s.repo.GetCount(s.ctx, &GetCountInput{GuildID: "guild-1", MemberID: "member-1"})
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *RedisRepositoryTestSuite) TestSetAndGetCount() {
	s.Require().NoError(s.repo.SetCount(s.ctx, &SetCountInput{GuildID: "guild-1", Count: 2}))
	s.Require().NoError(s.repo.SetCount(s.ctx, &SetCountInput{GuildID: "guild-1", MemberID: "member-1", Count: 1}))

	guildCount, err := s.repo.GetCount(s.ctx, &GetCountInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal(2, guildCount)

	memberCount, err := s.repo.GetCount(s.ctx, &GetCountInput{GuildID: "guild-1", MemberID: "member-1"})
	s.Require().NoError(err)
	s.Equal(1, memberCount)
}

func (s *RedisRepositoryTestSuite) TestSetCountRejectsNegative() {
	err := s.repo.SetCount(s.ctx, &SetCountInput{GuildID: "guild-1", Count: -1})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestReserveSlotIncrementsBothCounters() {
	out, err := s.repo.ReserveSlot(s.ctx, &ReserveSlotInput{
		GuildID:     "guild-1",
		MemberID:    "member-1",
		GuildLimit:  3,
		MemberLimit: 1,
	})
	s.Require().NoError(err)
	s.True(out.Reserved)
	s.Equal(LimitKindNone, out.DeniedBy)
	s.Equal(1, out.GuildCount)
	s.Equal(1, out.MemberCount)
}

func (s *RedisRepositoryTestSuite) TestReserveSlotMemberLimit() {
	input := &ReserveSlotInput{
		GuildID:     "guild-1",
		MemberID:    "member-1",
		GuildLimit:  3,
		MemberLimit: 1,
	}

	_, err := s.repo.ReserveSlot(s.ctx, input)
	s.Require().NoError(err)

	out, err := s.repo.ReserveSlot(s.ctx, input)
	s.Require().NoError(err)
	s.False(out.Reserved)
	s.Equal(LimitKindMember, out.DeniedBy)
	s.Equal(1, out.GuildCount)
	s.Equal(1, out.MemberCount)

	// A different member still fits under the guild limit
	out, err = s.repo.ReserveSlot(s.ctx, &ReserveSlotInput{
		GuildID:     "guild-1",
		MemberID:    "member-2",
		GuildLimit:  3,
		MemberLimit: 1,
	})
	s.Require().NoError(err)
	s.True(out.Reserved)
	s.Equal(2, out.GuildCount)
}

func (s *RedisRepositoryTestSuite) TestReserveSlotGuildLimitLeavesCountersUntouched() {
	s.Require().NoError(s.repo.SetCount(s.ctx, &SetCountInput{GuildID: "guild-1", Count: 3}))

	out, err := s.repo.ReserveSlot(s.ctx, &ReserveSlotInput{
		GuildID:     "guild-1",
		MemberID:    "member-1",
		GuildLimit:  3,
		MemberLimit: 5,
	})
	s.Require().NoError(err)
	s.False(out.Reserved)
	s.Equal(LimitKindGuild, out.DeniedBy)

	memberCount, err := s.repo.GetCount(s.ctx, &GetCountInput{GuildID: "guild-1", MemberID: "member-1"})
	s.Require().NoError(err)
	s.Equal(0, memberCount)
}

func (s *RedisRepositoryTestSuite) TestReserveSlotConcurrentNeverOverbooks() {
	var wg sync.WaitGroup
	var mu sync.Mutex
	reserved := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			out, err := s.repo.ReserveSlot(s.ctx, &ReserveSlotInput{
				GuildID:     "guild-1",
				MemberID:    "member-" + string(rune('a'+n)),
				GuildLimit:  3,
				MemberLimit: 1,
			})
			if err == nil && out.Reserved {
				mu.Lock()
				reserved++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	s.Equal(3, reserved)
	guildCount, err := s.repo.GetCount(s.ctx, &GetCountInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal(3, guildCount)
}

func (s *RedisRepositoryTestSuite) TestListCounters() {
	s.Require().NoError(s.repo.SetCount(s.ctx, &SetCountInput{GuildID: "guild-b", Count: 1}))
	s.Require().NoError(s.repo.SetCount(s.ctx, &SetCountInput{GuildID: "guild-a", Count: 2}))
	s.Require().NoError(s.repo.SetCount(s.ctx, &SetCountInput{GuildID: "guild-a", MemberID: "m2", Count: 1}))
	s.Require().NoError(s.repo.SetCount(s.ctx, &SetCountInput{GuildID: "guild-a", MemberID: "m1", Count: 1}))

	out, err := s.repo.ListCounters(s.ctx)
	s.Require().NoError(err)

	s.Equal([]*models.UsageCounter{
		{GuildID: "guild-a", Count: 2},
		{GuildID: "guild-a", MemberID: "m1", Count: 1},
		{GuildID: "guild-a", MemberID: "m2", Count: 1},
		{GuildID: "guild-b", Count: 1},
	}, out.Counters)
}
