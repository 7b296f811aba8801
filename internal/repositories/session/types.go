package session

import "github.com/KirkDiggler/scoutmaster/internal/models"

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type DeleteSessionInput struct {
	SessionID string
}

type ListSessionsByGuildInput struct {
	GuildID string
}

type ListSessionsByGuildAndCreatorInput struct {
	GuildID   string
	CreatorID string
}

type ListSessionsOutput struct {
	Sessions []*models.Session
}
