package messaging

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/models"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
)

// service implements the Service interface
type service struct {
	defaultImageURL string

	// Random number generator for selecting flavor lines; rand.Rand is not
	// safe for concurrent use
	mu   sync.Mutex
	rand *rand.Rand
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	r := cfg.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{
		defaultImageURL: cfg.DefaultImageURL,
		rand:            r,
	}, nil
}

func mention(userID string) string {
	return "<@" + userID + ">"
}

func channelMention(channelID string) string {
	return "<#" + channelID + ">"
}

func mentionAll(userIDs []string, sep string) string {
	mentions := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		mentions = append(mentions, mention(id))
	}
	return strings.Join(mentions, sep)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func (s *service) pick(lines []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lines[s.rand.Intn(len(lines))]
}

func (s *service) Announcement(input *AnnouncementInput) *models.Message {
	content := fmt.Sprintf("**%s** has started a gaming session to play **%s**! Join the recruitment channel here: %s",
		mention(input.CreatorID), input.ActivityLabel, channelMention(input.ListingChannelID))
	if input.MentionEveryone {
		content = "Hey @everyone! " + content
	}

	return &models.Message{
		Kind:            models.MessageKindAnnouncement,
		Content:         content,
		MentionEveryone: input.MentionEveryone,
	}
}

// Listing renders the open recruitment card from the session's current state
func (s *service) Listing(input *ListingInput) *models.Message {
	session := input.Session

	var with string
	if len(session.Members) > 1 {
		with = " with " + mentionAll(session.Members[1:], ", ")
	}

	var need string
	if session.IsFull() {
		need = "The party is full! Withdrawals will open a spot again."
	} else {
		need = fmt.Sprintf("We need **%d** more %s! Click the buttons below to join or withdraw.",
			session.CapacityRemaining, pluralWord(session.CapacityRemaining, "player"))
	}

	description := fmt.Sprintf(
		"Join **%s**'s gaming session%s happening at **%s**!\n\n"+
			"They will be playing for about **%s**, and the voice channel and session will automatically be deleted afterward.\n\n%s",
		mention(session.CreatorID), with, session.ScheduledTime, formatHours(session.Duration), need)

	image := input.ImageURL
	if image == "" {
		image = s.defaultImageURL
	}

	return &models.Message{
		Kind:      models.MessageKindListing,
		SessionID: session.ID,
		Embed: &models.Embed{
			Title:       "Recruiting Players for " + session.ActivityLabel,
			Description: description,
			ImageURL:    image,
			Color:       models.ColorBlue,
		},
	}
}

func (s *service) ListingEnded(input *ListingEndedInput) *models.Message {
	session := input.Session

	return &models.Message{
		Kind:      models.MessageKindListingEnded,
		SessionID: session.ID,
		Embed: &models.Embed{
			Title: fmt.Sprintf("Recruitment for %s has ended", session.ActivityLabel),
			Description: "The session is done!\n\nParticipants were:\n" +
				mentionAll(session.Members, "\n") +
				"\n\nUse `/recruit` to start your own crew!",
			Color: models.ColorOrange,
		},
	}
}

func (s *service) JoinNotice(input *NoticeInput) *models.Message {
	return &models.Message{
		Kind:      models.MessageKindNotification,
		SessionID: input.Session.ID,
		Content: fmt.Sprintf("%s has joined %s's session! Remaining spots: %d",
			mention(input.MemberID), mention(input.Session.CreatorID), input.Session.CapacityRemaining),
	}
}

func (s *service) WithdrawNotice(input *NoticeInput) *models.Message {
	return &models.Message{
		Kind:      models.MessageKindNotification,
		SessionID: input.Session.ID,
		Content: fmt.Sprintf("%s has withdrawn from %s's session. Remaining spots: %d",
			mention(input.MemberID), mention(input.Session.CreatorID), input.Session.CapacityRemaining),
	}
}

func (s *service) ChatJoinNotice(input *NoticeInput) *models.Message {
	line := s.pick([]string{
		"%s has joined the session!",
		"%s just hopped in. Say hi!",
		"Welcome aboard, %s!",
		"%s is in. The squad grows.",
	})

	return &models.Message{
		Kind:      models.MessageKindNotification,
		SessionID: input.Session.ID,
		Content:   fmt.Sprintf(line, mention(input.MemberID)),
	}
}

func (s *service) ChatWithdrawNotice(input *NoticeInput) *models.Message {
	line := s.pick([]string{
		"%s has left the session.",
		"%s had to bail. A spot just opened up.",
		"%s is out. Fewer hands on deck.",
	})

	return &models.Message{
		Kind:      models.MessageKindNotification,
		SessionID: input.Session.ID,
		Content:   fmt.Sprintf(line, mention(input.MemberID)),
	}
}

func (s *service) Roster(input *RosterInput) *models.Message {
	return &models.Message{
		Kind:    models.MessageKindRoster,
		Content: "The following players have been added to the session: " + mentionAll(input.MemberIDs, ", "),
	}
}

func (s *service) ControlPanel(input *ControlPanelInput) *models.Message {
	return &models.Message{
		Kind:      models.MessageKindControlPanel,
		SessionID: input.SessionID,
		Content: fmt.Sprintf("Welcome %s to your gaming session VC! If you have to cancel, click the Cancel Session button below.",
			mention(input.CreatorID)),
	}
}

func (s *service) InviteDM(input *InviteInput) *models.Message {
	return &models.Message{
		Kind: models.MessageKindInvite,
		Content: fmt.Sprintf("You have been added to %s's gaming session to play **%s**! Join the voice channel in the server: %s",
			mention(input.CreatorID), input.ActivityLabel, channelMention(input.VoiceChannelID)),
	}
}

func (s *service) CancelNotice(input *CancelNoticeInput) *models.Message {
	return &models.Message{
		Kind: models.MessageKindCancelNotice,
		Content: fmt.Sprintf("%s canceled the **%s** session you joined. Catch the next one!",
			mention(input.CreatorID), input.ActivityLabel),
	}
}

func (s *service) Summary(input *SummaryInput) *models.Message {
	return &models.Message{
		Kind: models.MessageKindSummary,
		Content: fmt.Sprintf("✅ Recruitment session created!\n\n🔥 This server has **%s** left today!",
			plural(input.GuildRemaining, "session")),
	}
}

// QuotaDenied renders the refusal with the wall-clock reset time and the wait
func (s *service) QuotaDenied(input *QuotaDeniedInput) string {
	wait := input.ResetAt.Sub(input.Now)
	if wait < 0 {
		wait = 0
	}
	hours := int(wait.Hours())
	minutes := int(wait.Minutes()) % 60
	resetAt := input.ResetAt.Format("03:04 PM MST")

	switch input.Reason {
	case quota.DenyReasonGuildLimit:
		return fmt.Sprintf("🚨 This server has reached its **daily limit of %s.**\n\n"+
			"⏰ Please wait %d hours and %d minutes until the reset at %s.",
			plural(input.Limit, "session"), hours, minutes, resetAt)
	case quota.DenyReasonMemberLimit:
		return fmt.Sprintf("🚨 You reached your limit of %d per day. The next reset is at %s.\n\n"+
			"⏰ Please wait %d hours and %d minutes until the reset.",
			input.Limit, resetAt, hours, minutes)
	default:
		return fmt.Sprintf("You've reached the limit of %s running at once for this server's plan. "+
			"Please end an existing session before creating a new one.",
			plural(input.Limit, "active session"))
	}
}

func pluralWord(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// formatHours prints a duration as hours, keeping fractions like 1.5
func formatHours(d time.Duration) string {
	h := d.Hours()
	if h == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%g hours", h)
}

var _ Service = (*service)(nil)
