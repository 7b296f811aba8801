package guild_config

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config Repository

import (
	"context"

	"github.com/KirkDiggler/scoutmaster/internal/models"
)

// Repository defines the interface for per-guild recruitment settings
type Repository interface {
	// GetGuildConfig retrieves a guild's settings
	GetGuildConfig(ctx context.Context, input *GetGuildConfigInput) (*models.GuildConfig, error)

	// SaveGuildConfig persists a guild's settings
	SaveGuildConfig(ctx context.Context, input *SaveGuildConfigInput) error

	// SetCustomImage stores the listing image for one activity
	SetCustomImage(ctx context.Context, input *SetCustomImageInput) error
}
