package recruitment

// RecruitmentError is a custom error type for expected session rejections
type RecruitmentError string

// Error implements the error interface
func (e RecruitmentError) Error() string {
	return string(e)
}

// Rejections. Collaborator failures are wrapped errors, never one of these.
const (
	ErrInvalidActivity       RecruitmentError = "activity label cannot be empty"
	ErrInvalidDuration       RecruitmentError = "session duration must be positive"
	ErrInvalidCapacity       RecruitmentError = "capacity must cover the creator and every invitee"
	ErrTooManyInvitees       RecruitmentError = "at most 3 players can be added up front"
	ErrAlreadyMember         RecruitmentError = "already in the session"
	ErrSessionFull           RecruitmentError = "session is full"
	ErrNotMember             RecruitmentError = "not part of the session"
	ErrNotCreator            RecruitmentError = "only the session creator can do that"
	ErrCreatorCannotWithdraw RecruitmentError = "the creator cannot withdraw; cancel the session instead"
	ErrSessionClosed         RecruitmentError = "session has ended"
	ErrSessionNotFound       RecruitmentError = "session not found"
	ErrGuildNotConfigured    RecruitmentError = "recruitment is not set up for this server"
	ErrRoleNotAllowed        RecruitmentError = "member does not hold a role allowed to recruit"
	ErrResourceUnavailable   RecruitmentError = "required channel is unavailable"
)

// Construction errors
const (
	ErrNilConfig      RecruitmentError = "config cannot be nil"
	ErrNilSessionRepo RecruitmentError = "session repository cannot be nil"
	ErrNilGuildConfig RecruitmentError = "guild config repository cannot be nil"
	ErrNilQuota       RecruitmentError = "quota service cannot be nil"
	ErrNilMessaging   RecruitmentError = "messaging service cannot be nil"
	ErrNilGateway     RecruitmentError = "gateway cannot be nil"
)
