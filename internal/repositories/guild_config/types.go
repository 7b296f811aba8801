package guild_config

import "github.com/KirkDiggler/scoutmaster/internal/models"

type GetGuildConfigInput struct {
	GuildID string
}

type SaveGuildConfigInput struct {
	Config *models.GuildConfig
}

type SetCustomImageInput struct {
	GuildID  string
	Activity string
	ImageURL string
}
