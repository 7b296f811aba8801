package reset

// ResetError represents an error from the reset scheduler
type ResetError string

func (e ResetError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      ResetError = "config cannot be nil"
	ErrNilQuota       ResetError = "quota service cannot be nil"
	ErrNilSessionRepo ResetError = "session repository cannot be nil"
	ErrNilRecruitment ResetError = "recruitment service cannot be nil"
	ErrAlreadyStarted ResetError = "scheduler already started"
)
