package guild_config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/models"
	"github.com/redis/go-redis/v9"
)

const guildConfigKeyPrefix = "guild_config:"

// ErrGuildConfigNotFound is returned when a guild has not been set up
var ErrGuildConfigNotFound = errors.New("guild config not found")

// Config holds configuration for the Redis guild config repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedis creates a new Redis-backed guild config repository
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
		now:    time.Now,
	}, nil
}

// GetGuildConfig retrieves a guild's settings from Redis
func (r *redisRepository) GetGuildConfig(ctx context.Context, input *GetGuildConfigInput) (*models.GuildConfig, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	configJSON, err := r.client.Get(ctx, guildConfigKeyPrefix+input.GuildID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGuildConfigNotFound
		}
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	var cfg models.GuildConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guild config: %w", err)
	}

	return &cfg, nil
}

// SaveGuildConfig persists a guild's settings to Redis
func (r *redisRepository) SaveGuildConfig(ctx context.Context, input *SaveGuildConfigInput) error {
	if input == nil || input.Config == nil {
		return errors.New("input and config cannot be nil")
	}

	if input.Config.GuildID == "" {
		return errors.New("guild ID cannot be empty")
	}

	input.Config.UpdatedAt = r.now()

	configJSON, err := json.Marshal(input.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal guild config: %w", err)
	}

	if err := r.client.Set(ctx, guildConfigKeyPrefix+input.Config.GuildID, configJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save guild config: %w", err)
	}

	return nil
}

// SetCustomImage updates one entry of the guild's custom image map
func (r *redisRepository) SetCustomImage(ctx context.Context, input *SetCustomImageInput) error {
	if input == nil || input.GuildID == "" || input.Activity == "" {
		return errors.New("input, guild ID and activity cannot be empty")
	}

	cfg, err := r.GetGuildConfig(ctx, &GetGuildConfigInput{GuildID: input.GuildID})
	if err != nil {
		return err
	}

	if cfg.CustomImages == nil {
		cfg.CustomImages = make(map[string]string)
	}

	key := models.NormalizeActivity(input.Activity)
	if input.ImageURL == "" {
		delete(cfg.CustomImages, key)
	} else {
		cfg.CustomImages[key] = input.ImageURL
	}

	return r.SaveGuildConfig(ctx, &SaveGuildConfigInput{Config: cfg})
}
