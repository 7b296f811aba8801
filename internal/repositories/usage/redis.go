package usage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/KirkDiggler/scoutmaster/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// guildCountersKey is a hash of guild ID -> sessions opened today
	guildCountersKey = "usage:guilds"

	// memberCountersPrefix + guild ID is a hash of member ID -> sessions opened today
	memberCountersPrefix = "usage:members:"
)

// reserveScript checks both counters and increments both only when neither
// limit has been reached. Returns {reserved, guild count, member count, denied by}
// where denied by is 0 none, 1 guild, 2 member.
var reserveScript = redis.NewScript(`
local guild = tonumber(redis.call('HGET', KEYS[1], ARGV[1]) or '0')
local member = tonumber(redis.call('HGET', KEYS[2], ARGV[2]) or '0')
if guild >= tonumber(ARGV[3]) then
	return {0, guild, member, 1}
end
if member >= tonumber(ARGV[4]) then
	return {0, guild, member, 2}
end
guild = redis.call('HINCRBY', KEYS[1], ARGV[1], 1)
member = redis.call('HINCRBY', KEYS[2], ARGV[2], 1)
return {1, guild, member, 0}
`)

// Config holds configuration for the Redis usage repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed usage repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func memberCountersKey(guildID string) string {
	return memberCountersPrefix + guildID
}

// GetCount reads a counter; a counter that was never written reads as zero
func (r *redisRepository) GetCount(ctx context.Context, input *GetCountInput) (int, error) {
	if input == nil || input.GuildID == "" {
		return 0, errors.New("input and guild ID cannot be empty")
	}

	key, field := guildCountersKey, input.GuildID
	if input.MemberID != "" {
		key, field = memberCountersKey(input.GuildID), input.MemberID
	}

	count, err := r.client.HGet(ctx, key, field).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get usage count: %w", err)
	}

	return count, nil
}

// SetCount overwrites a counter
func (r *redisRepository) SetCount(ctx context.Context, input *SetCountInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	if input.Count < 0 {
		return errors.New("count cannot be negative")
	}

	key, field := guildCountersKey, input.GuildID
	if input.MemberID != "" {
		key, field = memberCountersKey(input.GuildID), input.MemberID
	}

	if err := r.client.HSet(ctx, key, field, input.Count).Err(); err != nil {
		return fmt.Errorf("failed to set usage count: %w", err)
	}

	return nil
}

// ReserveSlot runs the reservation script so the check and both increments are atomic
func (r *redisRepository) ReserveSlot(ctx context.Context, input *ReserveSlotInput) (*ReserveSlotOutput, error) {
	if input == nil || input.GuildID == "" || input.MemberID == "" {
		return nil, errors.New("input, guild ID and member ID cannot be empty")
	}

	res, err := reserveScript.Run(ctx, r.client,
		[]string{guildCountersKey, memberCountersKey(input.GuildID)},
		input.GuildID, input.MemberID, input.GuildLimit, input.MemberLimit,
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to reserve usage slot: %w", err)
	}

	if len(res) != 4 {
		return nil, fmt.Errorf("unexpected reserve script reply of length %d", len(res))
	}

	output := &ReserveSlotOutput{
		Reserved:    res[0] == 1,
		GuildCount:  int(res[1]),
		MemberCount: int(res[2]),
	}

	switch res[3] {
	case 1:
		output.DeniedBy = LimitKindGuild
	case 2:
		output.DeniedBy = LimitKindMember
	}

	return output, nil
}

// ListCounters returns all counters, guilds sorted by ID
func (r *redisRepository) ListCounters(ctx context.Context) (*ListCountersOutput, error) {
	guildCounts, err := r.client.HGetAll(ctx, guildCountersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list guild counters: %w", err)
	}

	guildIDs := make([]string, 0, len(guildCounts))
	for guildID := range guildCounts {
		guildIDs = append(guildIDs, guildID)
	}
	sort.Strings(guildIDs)

	counters := make([]*models.UsageCounter, 0, len(guildIDs))
	for _, guildID := range guildIDs {
		count, err := strconv.Atoi(guildCounts[guildID])
		if err != nil {
			return nil, fmt.Errorf("invalid counter for guild %s: %w", guildID, err)
		}
		counters = append(counters, &models.UsageCounter{
			GuildID: guildID,
			Count:   count,
		})

		memberCounts, err := r.client.HGetAll(ctx, memberCountersKey(guildID)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to list member counters for guild %s: %w", guildID, err)
		}

		memberIDs := make([]string, 0, len(memberCounts))
		for memberID := range memberCounts {
			memberIDs = append(memberIDs, memberID)
		}
		sort.Strings(memberIDs)

		for _, memberID := range memberIDs {
			count, err := strconv.Atoi(memberCounts[memberID])
			if err != nil {
				return nil, fmt.Errorf("invalid counter for member %s in guild %s: %w", memberID, guildID, err)
			}
			counters = append(counters, &models.UsageCounter{
				GuildID:  guildID,
				MemberID: memberID,
				Count:    count,
			})
		}
	}

	return &ListCountersOutput{
		Counters: counters,
	}, nil
}
