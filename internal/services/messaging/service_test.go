package messaging

import (
	"math/rand"
	"testing"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/models"
	"github.com/KirkDiggler/scoutmaster/internal/services/quota"
	"github.com/stretchr/testify/suite"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	svc     *service
	session *models.Session
}

func (s *MessagingServiceTestSuite) SetupTest() {
	svc, err := New(&Config{
		DefaultImageURL: "https://example.com/default.jpg",
		Rand:            rand.New(rand.NewSource(1)),
	})
	s.Require().NoError(err)
	s.svc = svc

	s.session = &models.Session{
		ID:                "s1",
		GuildID:           "g1",
		CreatorID:         "creator",
		ActivityLabel:     "Helldivers 2",
		ScheduledTime:     "9pm",
		Duration:          2 * time.Hour,
		Capacity:          4,
		CapacityRemaining: 2,
		Members:           []string{"creator", "friend"},
		Status:            models.SessionStatusOpen,
	}
}

func TestMessagingServiceSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}

func (s *MessagingServiceTestSuite) TestAnnouncementMention() {
	msg := s.svc.Announcement(&AnnouncementInput{
		CreatorID:        "creator",
		ActivityLabel:    "Helldivers 2",
		ListingChannelID: "listing",
		MentionEveryone:  true,
	})
	s.True(msg.MentionEveryone)
	s.Contains(msg.Content, "@everyone")
	s.Contains(msg.Content, "<#listing>")

	quiet := s.svc.Announcement(&AnnouncementInput{CreatorID: "creator", ActivityLabel: "Helldivers 2", ListingChannelID: "listing"})
	s.False(quiet.MentionEveryone)
	s.NotContains(quiet.Content, "@everyone")
}

func (s *MessagingServiceTestSuite) TestListing() {
	msg := s.svc.Listing(&ListingInput{Session: s.session})
	s.Equal(models.MessageKindListing, msg.Kind)
	s.Equal("s1", msg.SessionID)
	s.Require().NotNil(msg.Embed)
	s.Equal("Recruiting Players for Helldivers 2", msg.Embed.Title)
	s.Contains(msg.Embed.Description, "with <@friend>")
	s.Contains(msg.Embed.Description, "**2** more players")
	s.Contains(msg.Embed.Description, "2 hours")
	s.Equal("https://example.com/default.jpg", msg.Embed.ImageURL)

	custom := s.svc.Listing(&ListingInput{Session: s.session, ImageURL: "https://example.com/hd2.png"})
	s.Equal("https://example.com/hd2.png", custom.Embed.ImageURL)
}

func (s *MessagingServiceTestSuite) TestListingFull() {
	s.session.CapacityRemaining = 0
	msg := s.svc.Listing(&ListingInput{Session: s.session})
	s.Contains(msg.Embed.Description, "full")
}

func (s *MessagingServiceTestSuite) TestListingEndedNamesParticipants() {
	msg := s.svc.ListingEnded(&ListingEndedInput{Session: s.session})
	s.Equal(models.MessageKindListingEnded, msg.Kind)
	s.Equal(models.ColorOrange, msg.Embed.Color)
	s.Contains(msg.Embed.Description, "<@creator>\n<@friend>")
}

func (s *MessagingServiceTestSuite) TestNotices() {
	join := s.svc.JoinNotice(&NoticeInput{Session: s.session, MemberID: "m"})
	s.Contains(join.Content, "<@m> has joined <@creator>'s session! Remaining spots: 2")

	withdraw := s.svc.WithdrawNotice(&NoticeInput{Session: s.session, MemberID: "m"})
	s.Contains(withdraw.Content, "withdrawn")

	chat := s.svc.ChatJoinNotice(&NoticeInput{Session: s.session, MemberID: "m"})
	s.Contains(chat.Content, "<@m>")
}

func (s *MessagingServiceTestSuite) TestSummary() {
	s.Contains(s.svc.Summary(&SummaryInput{GuildRemaining: 1}).Content, "**1 session** left today")
	s.Contains(s.svc.Summary(&SummaryInput{GuildRemaining: 0}).Content, "**0 sessions** left today")
}

func (s *MessagingServiceTestSuite) TestQuotaDenied() {
	loc := time.FixedZone("EST", -5*60*60)
	now := time.Date(2025, 1, 10, 13, 15, 0, 0, loc)
	resetAt := time.Date(2025, 1, 11, 0, 0, 0, 0, loc)

	text := s.svc.QuotaDenied(&QuotaDeniedInput{
		Reason:  quota.DenyReasonMemberLimit,
		Limit:   1,
		ResetAt: resetAt,
		Now:     now,
	})
	s.Contains(text, "limit of 1 per day")
	s.Contains(text, "10 hours and 45 minutes")
	s.Contains(text, "12:00 AM EST")

	guild := s.svc.QuotaDenied(&QuotaDeniedInput{Reason: quota.DenyReasonGuildLimit, Limit: 3, ResetAt: resetAt, Now: now})
	s.Contains(guild, "daily limit of 3 sessions")

	active := s.svc.QuotaDenied(&QuotaDeniedInput{Reason: quota.DenyReasonActiveSessions, Limit: 3, ResetAt: resetAt, Now: now})
	s.Contains(active, "3 active sessions")
}
