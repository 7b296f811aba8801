package recruitment

import (
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
	"github.com/KirkDiggler/scoutmaster/internal/common/uuid"
	"github.com/KirkDiggler/scoutmaster/internal/gateway"
	"github.com/KirkDiggler/scoutmaster/internal/models"
	guildConfigRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/guild_config"
	sessionRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/session"
	"github.com/KirkDiggler/scoutmaster/internal/services/messaging"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"go.uber.org/zap"
)

// MaxInvitees is how many players a creator may add when opening a session
const MaxInvitees = 3

// Config holds configuration for the recruitment service
type Config struct {
	// Repository dependencies
	SessionRepo     sessionRepo.Repository
	GuildConfigRepo guildConfigRepo.Repository

	// Service dependencies
	QuotaService quota.Service
	Messaging    messaging.Service
	Gateway      gateway.Gateway

	Clock         clock.Clock
	UUIDGenerator uuid.Generator

	// PremiumSessionLimit is the plan size above which custom listing images apply
	PremiumSessionLimit int

	// OperationTimeout bounds expirations fired by session timers
	OperationTimeout time.Duration

	Logger *zap.Logger
}

// CreateSessionInput contains parameters for opening a session
type CreateSessionInput struct {
	GuildID   string
	CreatorID string

	// CreatorRoleIDs are checked against the guild's allowed roles
	CreatorRoleIDs []string

	// CreatorName is used to name the voice channel
	CreatorName string

	// OriginChannelID is where the command was used; the summary is posted there
	OriginChannelID string

	ActivityLabel string
	ScheduledTime string
	Duration      time.Duration

	// Capacity is the total party size, creator included
	Capacity int

	// InviteeIDs are members added to the session up front
	InviteeIDs []string
}

// CreateSessionOutput contains the opened session
type CreateSessionOutput struct {
	Session *models.Session

	// GuildRemaining is how many more sessions the guild may open today
	GuildRemaining int
}

type JoinSessionInput struct {
	SessionID string
	MemberID  string
}

type JoinSessionOutput struct {
	Session *models.Session
}

type WithdrawSessionInput struct {
	SessionID string
	MemberID  string
}

type WithdrawSessionOutput struct {
	Session *models.Session
}

type CancelSessionInput struct {
	SessionID string
	ActorID   string
}

type ExpireSessionInput struct {
	SessionID string
}

type ForceCloseInput struct {
	SessionID string
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionOutput struct {
	Session *models.Session
}
