package reset

import (
	"time"

	sessionRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/session"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"github.com/KirkDiggler/scoutmaster/internal/services/recruitment"
	"go.uber.org/zap"
)

// Config holds the dependencies for the reset scheduler
type Config struct {
	QuotaService       quota.Service
	SessionRepo        sessionRepo.Repository
	RecruitmentService recruitment.Service

	// Concurrency bounds how many communities are reset at once
	Concurrency int

	// Timeout bounds one whole reset pass started by the scheduler
	Timeout time.Duration

	Logger *zap.Logger
}

// RunOutput summarizes one reset pass
type RunOutput struct {
	Communities    int
	SessionsClosed int
	Failures       int
}
