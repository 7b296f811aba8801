package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/scoutmaster/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/scoutmaster/internal/models"
)

// Repository defines the interface for recruitment session persistence
type Repository interface {
	// SaveSession persists a session and its guild/creator index entries
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// DeleteSession removes a session; deleting an absent session is not an error
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// ListSessionsByGuild retrieves every session recorded for a guild
	ListSessionsByGuild(ctx context.Context, input *ListSessionsByGuildInput) (*ListSessionsOutput, error)

	// ListSessionsByGuildAndCreator retrieves the sessions a member opened in a guild
	ListSessionsByGuildAndCreator(ctx context.Context, input *ListSessionsByGuildAndCreatorInput) (*ListSessionsOutput, error)

	// ListGuilds returns the guilds that currently hold session records
	ListGuilds(ctx context.Context) ([]string, error)
}
