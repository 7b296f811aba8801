package recruitment

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/scoutmaster/internal/services/recruitment Service

import "context"

// Service owns the lifecycle of recruitment sessions. Operations on one
// session are serialized; operations on different sessions run concurrently.
type Service interface {
	// CreateSession reserves quota, allocates channels and messages, and arms the expiration timer
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// JoinSession adds a member and grants voice access
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// WithdrawSession removes a member and revokes voice access
	WithdrawSession(ctx context.Context, input *WithdrawSessionInput) (*WithdrawSessionOutput, error)

	// CancelSession tears everything down, including the listing, and deletes the record
	CancelSession(ctx context.Context, input *CancelSessionInput) error

	// ExpireSession tears the session down and leaves an ended listing behind
	ExpireSession(ctx context.Context, input *ExpireSessionInput) error

	// ForceClose cleans up whatever is left of a session and deletes its record
	ForceClose(ctx context.Context, input *ForceCloseInput) error

	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// Start re-arms expiration timers for live sessions found in the store
	Start(ctx context.Context) error

	// Stop disarms every pending expiration timer
	Stop()
}
