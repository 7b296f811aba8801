package recruitment

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/scoutmaster/internal/gateway"
	"github.com/KirkDiggler/scoutmaster/internal/models"
	sessionRepo "github.com/KirkDiggler/scoutmaster/internal/repositories/session"
	"github.com/KirkDiggler/scoutmaster/internal/services/messaging"
	"go.uber.org/zap"
)

// teardownMode decides what happens to the public listing
type teardownMode int

const (
	// teardownExpire edits the listing into its ended view and keeps the reference
	teardownExpire teardownMode = iota

	// teardownCancel deletes the listing
	teardownCancel

	// teardownPurge leaves the listing alone
	teardownPurge
)

// teardown removes the session's resources in a fixed order and returns the
// references that are still outstanding. A missing resource counts as removed;
// any other failure is logged and the reference is kept for a later retry.
func (s *service) teardown(ctx context.Context, logger *zap.Logger, session *models.Session, mode teardownMode) models.SessionResources {
	res := session.Resources

	// gone reports whether a step's target no longer exists
	gone := func(step string, err error) bool {
		if err == nil || gateway.IsNotFound(err) {
			return true
		}
		logger.Warn("cleanup step failed", zap.String("step", step), zap.Error(err))
		return false
	}

	var keep []string
	for _, id := range res.NotificationMessageIDs {
		err := s.gateway.DeleteMessage(ctx, &gateway.DeleteMessageInput{ChannelID: res.ListingChannelID, MessageID: id})
		if !gone("notification", err) {
			keep = append(keep, id)
		}
	}
	res.NotificationMessageIDs = keep

	if res.AnnouncementMessageID != "" {
		err := s.gateway.DeleteMessage(ctx, &gateway.DeleteMessageInput{
			ChannelID: res.AnnouncementChannelID,
			MessageID: res.AnnouncementMessageID,
		})
		if gone("announcement", err) {
			res.AnnouncementMessageID = ""
		}
	}

	var deletedVoice string
	if res.VoiceChannelID != "" {
		err := s.gateway.DeleteChannel(ctx, &gateway.DeleteChannelInput{ChannelID: res.VoiceChannelID})
		if gone("voice_channel", err) {
			deletedVoice = res.VoiceChannelID
			res.VoiceChannelID = ""
		}
	}

	if res.SummaryMessageID != "" {
		err := s.gateway.DeleteMessage(ctx, &gateway.DeleteMessageInput{
			ChannelID: res.SummaryChannelID,
			MessageID: res.SummaryMessageID,
		})
		if gone("summary", err) {
			res.SummaryMessageID = ""
		}
	}

	// The chat usually lives inside the voice channel and went with it
	if res.TextChannelID != "" {
		if res.TextChannelID == deletedVoice {
			res.TextChannelID = ""
		} else {
			err := s.gateway.DeleteChannel(ctx, &gateway.DeleteChannelInput{ChannelID: res.TextChannelID})
			if gone("text_channel", err) {
				res.TextChannelID = ""
			}
		}
	}

	if res.ListingMessageID != "" {
		switch mode {
		case teardownCancel:
			err := s.gateway.DeleteMessage(ctx, &gateway.DeleteMessageInput{
				ChannelID: res.ListingChannelID,
				MessageID: res.ListingMessageID,
			})
			if gone("listing", err) {
				res.ListingMessageID = ""
			}
		case teardownExpire:
			err := s.gateway.EditMessage(ctx, &gateway.EditMessageInput{
				ChannelID: res.ListingChannelID,
				MessageID: res.ListingMessageID,
				Message:   s.messaging.ListingEnded(&messaging.ListingEndedInput{Session: session}),
			})
			if errors.Is(err, gateway.ErrNotFound) {
				res.ListingMessageID = ""
			} else if err != nil {
				logger.Warn("cleanup step failed", zap.String("step", "listing"), zap.Error(err))
			}
		}
	}

	return res
}

// ExpireSession closes the session when its timer fires. A missing or
// already closed session is a no-op.
func (s *service) ExpireSession(ctx context.Context, input *ExpireSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	release, err := s.locks.acquire(ctx, input.SessionID)
	if err != nil {
		return err
	}
	defer release()

	s.timers.disarm(input.SessionID)

	session, err := s.load(ctx, input.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	if !session.IsLive() {
		return nil
	}

	s.expire(ctx, session)
	return nil
}

// expire runs the timed-out teardown and stores the reduced record
func (s *service) expire(ctx context.Context, session *models.Session) {
	logger := s.logger.With(zap.String("session_id", session.ID), zap.String("guild_id", session.GuildID))

	session.Status = models.SessionStatusTerminating
	if err := s.save(ctx, session); err != nil {
		logger.Warn("failed to mark session terminating", zap.Error(err))
	}

	session.Resources = s.teardown(ctx, logger, session, teardownExpire)
	session.Status = models.SessionStatusClosed
	if err := s.save(ctx, session); err != nil {
		logger.Warn("failed to store closed session", zap.Error(err))
	}

	logger.Info("session expired",
		zap.Strings("members", session.Members),
		zap.Bool("pending_cleanup", session.Resources.HasPendingCleanup()),
	)
}

// CancelSession lets the creator end the session early. Remaining members are
// told by direct message and the record is deleted.
func (s *service) CancelSession(ctx context.Context, input *CancelSessionInput) error {
	if input == nil || input.SessionID == "" || input.ActorID == "" {
		return errors.New("input, session ID and actor ID cannot be empty")
	}

	release, err := s.locks.acquire(ctx, input.SessionID)
	if err != nil {
		return err
	}
	defer release()

	session, err := s.load(ctx, input.SessionID)
	if err != nil {
		return err
	}

	if input.ActorID != session.CreatorID {
		return ErrNotCreator
	}
	if !session.IsLive() {
		return ErrSessionClosed
	}

	s.timers.disarm(session.ID)
	logger := s.logger.With(zap.String("session_id", session.ID), zap.String("guild_id", session.GuildID))

	session.Status = models.SessionStatusTerminating
	if err := s.save(ctx, session); err != nil {
		logger.Warn("failed to mark session terminating", zap.Error(err))
	}

	session.Resources = s.teardown(ctx, logger, session, teardownCancel)

	notice := s.messaging.CancelNotice(&messaging.CancelNoticeInput{
		CreatorID:     session.CreatorID,
		ActivityLabel: session.ActivityLabel,
	})
	for _, member := range session.Members {
		if member == session.CreatorID {
			continue
		}
		if err := s.gateway.DirectMessage(ctx, &gateway.DirectMessageInput{UserID: member, Message: notice}); err != nil {
			logger.Info("could not notify member of cancellation", zap.String("member_id", member), zap.Error(err))
		}
	}

	session.Status = models.SessionStatusClosed

	// Leftovers stay on a closed record for the reset pass to retry
	if session.Resources.HasPendingCleanup() || session.Resources.ListingMessageID != "" {
		if err := s.save(ctx, session); err != nil {
			logger.Warn("failed to store canceled session", zap.Error(err))
		}
		logger.Info("session canceled with pending cleanup")
		return nil
	}

	if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{SessionID: session.ID}); err != nil {
		logger.Warn("failed to delete canceled session", zap.Error(err))
	}

	logger.Info("session canceled", zap.Strings("members", session.Members))
	return nil
}

// ForceClose is the reset backstop: live sessions get the timed-out teardown,
// closed ones get their leftovers retried, and the record is deleted.
func (s *service) ForceClose(ctx context.Context, input *ForceCloseInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	release, err := s.locks.acquire(ctx, input.SessionID)
	if err != nil {
		return err
	}
	defer release()

	s.timers.disarm(input.SessionID)

	session, err := s.load(ctx, input.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	logger := s.logger.With(zap.String("session_id", session.ID), zap.String("guild_id", session.GuildID))

	if session.IsLive() {
		s.expire(ctx, session)
	} else if session.Resources.HasPendingCleanup() {
		session.Resources = s.teardown(ctx, logger, session, teardownPurge)
	}

	if session.Resources.HasPendingCleanup() {
		logger.Warn("deleting session with resources left behind", zap.Any("resources", session.Resources))
	}

	if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{SessionID: session.ID}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	logger.Info("session force closed")
	return nil
}
