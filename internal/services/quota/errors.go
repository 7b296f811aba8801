package quota

import (
	"fmt"
	"time"
)

// QuotaError is a custom error type for quota errors
type QuotaError string

// Error implements the error interface
func (e QuotaError) Error() string {
	return string(e)
}

const (
	ErrQuotaExceeded     QuotaError = "quota exceeded"
	ErrNilConfig         QuotaError = "config cannot be nil"
	ErrNilUsageRepo      QuotaError = "usage repository cannot be nil"
	ErrNilSessionRepo    QuotaError = "session repository cannot be nil"
	ErrNilGuildConfig    QuotaError = "guild config repository cannot be nil"
	ErrNilLocation       QuotaError = "reset location cannot be nil"
	ErrInvalidResetClock QuotaError = "reset hour must be 0-23 and minute 0-59"
	ErrInvalidLimit      QuotaError = "default limits must be at least 1"
)

// DenyReason names the check that refused a reservation
type DenyReason string

const (
	DenyReasonGuildLimit     DenyReason = "guild_limit"
	DenyReasonMemberLimit    DenyReason = "member_limit"
	DenyReasonActiveSessions DenyReason = "active_sessions"
)

// QuotaExceededError is returned by Reserve when any allowance is used up.
// errors.Is(err, ErrQuotaExceeded) holds for it.
type QuotaExceededError struct {
	Reason  DenyReason
	Limit   int
	ResetAt time.Time
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %s (limit %d, resets at %s)", e.Reason, e.Limit, e.ResetAt.Format(time.RFC3339))
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}
