package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/scoutmaster/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix      = "session:"
	guildSessionsPrefix   = "guild_sessions:"
	creatorSessionsPrefix = "guild_creator_sessions:"
	sessionGuildsKey      = "session_guilds"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func guildSessionsKey(guildID string) string {
	return guildSessionsPrefix + guildID
}

func creatorSessionsKey(guildID, creatorID string) string {
	return fmt.Sprintf("%s%s:%s", creatorSessionsPrefix, guildID, creatorID)
}

// SaveSession persists a session to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	s := input.Session
	if s.ID == "" || s.GuildID == "" {
		return errors.New("session ID and guild ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// The value and its index entries land together
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKey(s.ID), sessionJSON, 0)
	pipe.SAdd(ctx, guildSessionsKey(s.GuildID), s.ID)
	if s.CreatorID != "" {
		pipe.SAdd(ctx, creatorSessionsKey(s.GuildID, s.CreatorID), s.ID)
	}
	pipe.SAdd(ctx, sessionGuildsKey, s.GuildID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKey(input.SessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &s, nil
}

// DeleteSession removes a session and its index entries from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	// Need the record to know which index sets to clean
	s, err := r.GetSession(ctx, &GetSessionInput{SessionID: input.SessionID})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(s.ID))
	pipe.SRem(ctx, guildSessionsKey(s.GuildID), s.ID)
	if s.CreatorID != "" {
		pipe.SRem(ctx, creatorSessionsKey(s.GuildID, s.CreatorID), s.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	// Drop the guild from the guild index once it has nothing left
	remaining, err := r.client.SCard(ctx, guildSessionsKey(s.GuildID)).Result()
	if err != nil {
		return fmt.Errorf("failed to count guild sessions: %w", err)
	}
	if remaining == 0 {
		if err := r.client.SRem(ctx, sessionGuildsKey, s.GuildID).Err(); err != nil {
			return fmt.Errorf("failed to update guild index: %w", err)
		}
	}

	return nil
}

// ListSessionsByGuild retrieves every session for a guild from Redis
func (r *redisRepository) ListSessionsByGuild(ctx context.Context, input *ListSessionsByGuildInput) (*ListSessionsOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	return r.listFromIndex(ctx, guildSessionsKey(input.GuildID))
}

// ListSessionsByGuildAndCreator retrieves a member's sessions in a guild from Redis
func (r *redisRepository) ListSessionsByGuildAndCreator(ctx context.Context, input *ListSessionsByGuildAndCreatorInput) (*ListSessionsOutput, error) {
	if input == nil || input.GuildID == "" || input.CreatorID == "" {
		return nil, errors.New("input, guild ID and creator ID cannot be empty")
	}

	return r.listFromIndex(ctx, creatorSessionsKey(input.GuildID, input.CreatorID))
}

// ListGuilds returns every guild holding at least one session record
func (r *redisRepository) ListGuilds(ctx context.Context) ([]string, error) {
	guildIDs, err := r.client.SMembers(ctx, sessionGuildsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list session guilds: %w", err)
	}
	return guildIDs, nil
}

func (r *redisRepository) listFromIndex(ctx context.Context, indexKey string) (*ListSessionsOutput, error) {
	sessionIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session IDs: %w", err)
	}

	if len(sessionIDs) == 0 {
		return &ListSessionsOutput{
			Sessions: []*models.Session{},
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make(map[string]*redis.StringCmd, len(sessionIDs))
	for _, id := range sessionIDs {
		cmds[id] = pipe.Get(ctx, sessionKey(id))
	}

	// redis.Nil from a vanished record surfaces here too; handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(sessionIDs))
	for id, cmd := range cmds {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Session was deleted between reading the index and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", id, err)
		}

		var s models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
		}
		sessions = append(sessions, &s)
	}

	return &ListSessionsOutput{
		Sessions: sessions,
	}, nil
}
