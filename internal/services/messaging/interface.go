package messaging

import "github.com/KirkDiggler/scoutmaster/internal/models"

// Service composes every message a recruitment session posts
type Service interface {
	// Announcement is the "session started" post in the announcement channel
	Announcement(input *AnnouncementInput) *models.Message

	// Listing is the public recruitment card with join and withdraw controls
	Listing(input *ListingInput) *models.Message

	// ListingEnded replaces the listing once the session has timed out
	ListingEnded(input *ListingEndedInput) *models.Message

	// JoinNotice and WithdrawNotice are posted in the listing channel and tracked
	JoinNotice(input *NoticeInput) *models.Message
	WithdrawNotice(input *NoticeInput) *models.Message

	// ChatJoinNotice and ChatWithdrawNotice are posted in the session chat
	ChatJoinNotice(input *NoticeInput) *models.Message
	ChatWithdrawNotice(input *NoticeInput) *models.Message

	Roster(input *RosterInput) *models.Message
	ControlPanel(input *ControlPanelInput) *models.Message
	InviteDM(input *InviteInput) *models.Message
	CancelNotice(input *CancelNoticeInput) *models.Message
	Summary(input *SummaryInput) *models.Message

	// QuotaDenied explains a refused creation and how long until the reset
	QuotaDenied(input *QuotaDeniedInput) string
}
