package discord

import (
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/services/messaging"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"github.com/KirkDiggler/scoutmaster/internal/services/recruitment"
)

const replyUnexpected = "An unexpected error occurred. Please try again later."

var rejectionReplies = []struct {
	err   error
	reply string
}{
	{recruitment.ErrInvalidActivity, "Please tell me which game you are playing."},
	{recruitment.ErrInvalidDuration, "Please provide a positive number for hours_playing."},
	{recruitment.ErrInvalidCapacity, "The player count has to cover you and everyone you added."},
	{recruitment.ErrTooManyInvitees, fmt.Sprintf("You can add at most %d players when starting a session.", recruitment.MaxInvitees)},
	{recruitment.ErrAlreadyMember, "You are already in the session!"},
	{recruitment.ErrSessionFull, "The gaming session is already full!"},
	{recruitment.ErrNotMember, "You are not part of the session!"},
	{recruitment.ErrCreatorCannotWithdraw, "You started this session. Use the Cancel Session button in your voice channel to end it."},
	{recruitment.ErrNotCreator, "Only the gaming session creator can cancel this session."},
	{recruitment.ErrSessionClosed, "This session has already ended."},
	{recruitment.ErrSessionNotFound, "Session data not found. It might have already been canceled or timed out."},
	{recruitment.ErrGuildNotConfigured, "🚨 Configuration not found for this server. Please run `/recruit_setup` first. 🚨"},
	{recruitment.ErrRoleNotAllowed, "You do not have the required role to use this command. Talk with the server owner!"},
	{recruitment.ErrResourceUnavailable, "I couldn't set up the session. Please check that the configured channels still exist and that I have permission to manage them."},
}

// replyForError turns a service error into the text shown to the member.
// The boolean is false for failures that were not an expected rejection.
func replyForError(msgs messaging.Service, now time.Time, err error) (string, bool) {
	var denied *quota.QuotaExceededError
	if errors.As(err, &denied) {
		return msgs.QuotaDenied(&messaging.QuotaDeniedInput{
			Reason:  denied.Reason,
			Limit:   denied.Limit,
			ResetAt: denied.ResetAt,
			Now:     now,
		}), true
	}

	for _, r := range rejectionReplies {
		if errors.Is(err, r.err) {
			return r.reply, true
		}
	}

	return replyUnexpected, false
}
