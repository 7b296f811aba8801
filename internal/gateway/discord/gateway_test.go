package discord

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/KirkDiggler/scoutmaster/internal/gateway"
	"github.com/KirkDiggler/scoutmaster/internal/models"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
)

// stubTransport answers discord REST calls without touching the network
type stubTransport struct {
	mu       sync.Mutex
	status   int
	body     string
	requests []*http.Request
}

func (t *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests = append(t.requests, req)

	return &http.Response{
		StatusCode: t.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(t.body)),
		Request:    req,
	}, nil
}

type GatewayTestSuite struct {
	suite.Suite
	transport *stubTransport
	gw        *Gateway
	ctx       context.Context
}

func (s *GatewayTestSuite) SetupTest() {
	session, err := discordgo.New("Bot test-token")
	s.Require().NoError(err)

	s.transport = &stubTransport{status: http.StatusOK, body: `{}`}
	session.Client = &http.Client{Transport: s.transport}

	gw, err := New(&Config{Session: session})
	s.Require().NoError(err)
	s.gw = gw
	s.ctx = context.Background()
}

func TestGatewayTestSuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}

func (s *GatewayTestSuite) TestDeleteMessageNotFound() {
	s.transport.status = http.StatusNotFound
	s.transport.body = `{"message": "Unknown Message", "code": 10008}`

	err := s.gw.DeleteMessage(s.ctx, &gateway.DeleteMessageInput{ChannelID: "c1", MessageID: "m1"})
	s.Require().Error(err)
	s.True(gateway.IsNotFound(err))
}

func (s *GatewayTestSuite) TestDeleteChannelForbidden() {
	s.transport.status = http.StatusForbidden
	s.transport.body = `{"message": "Missing Permissions", "code": 50013}`

	err := s.gw.DeleteChannel(s.ctx, &gateway.DeleteChannelInput{ChannelID: "c1"})
	s.ErrorIs(err, gateway.ErrForbidden)
}

func (s *GatewayTestSuite) TestCreateSessionChannelsPairsTextWithVoice() {
	s.transport.body = `{"id": "vc-1", "guild_id": "g1", "type": 2}`

	out, err := s.gw.CreateSessionChannels(s.ctx, &gateway.CreateSessionChannelsInput{
		GuildID:    "g1",
		CategoryID: "cat-1",
		Name:       "Valorant squad",
	})
	s.Require().NoError(err)
	s.Equal("vc-1", out.VoiceChannelID)
	s.Equal("vc-1", out.TextChannelID)
	s.Require().Len(s.transport.requests, 1)
	s.Equal(http.MethodPost, s.transport.requests[0].Method)
	s.Contains(s.transport.requests[0].URL.Path, "/guilds/g1/channels")
}

func (s *GatewayTestSuite) TestSendMessageReturnsID() {
	s.transport.body = `{"id": "msg-9", "channel_id": "c1"}`

	out, err := s.gw.SendMessage(s.ctx, &gateway.SendMessageInput{
		ChannelID: "c1",
		Message:   &models.Message{Kind: models.MessageKindNotification, Content: "hi"},
	})
	s.Require().NoError(err)
	s.Equal("msg-9", out.MessageID)
}

func (s *GatewayTestSuite) TestChannelExistsMissing() {
	s.transport.status = http.StatusNotFound
	s.transport.body = `{"message": "Unknown Channel", "code": 10003}`

	ok, err := s.gw.ChannelExists(s.ctx, &gateway.ChannelExistsInput{GuildID: "g1", ChannelID: "gone"})
	s.Require().NoError(err)
	s.False(ok)
}

func (s *GatewayTestSuite) TestChannelExistsOtherGuild() {
	s.transport.body = `{"id": "c1", "guild_id": "someone-else"}`

	ok, err := s.gw.ChannelExists(s.ctx, &gateway.ChannelExistsInput{GuildID: "g1", ChannelID: "c1"})
	s.Require().NoError(err)
	s.False(ok)
}

func TestParseCustomID(t *testing.T) {
	testCases := []struct {
		customID   string
		wantAction string
		wantID     string
		wantOK     bool
	}{
		{customID: "recruit_join:abc", wantAction: ActionJoin, wantID: "abc", wantOK: true},
		{customID: "recruit_withdraw:abc", wantAction: ActionWithdraw, wantID: "abc", wantOK: true},
		{customID: "recruit_cancel:abc", wantAction: ActionCancel, wantID: "abc", wantOK: true},
		{customID: "recruit_join:", wantOK: false},
		{customID: "start_game:abc", wantOK: false},
		{customID: "recruit_join", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.customID, func(t *testing.T) {
			action, id, ok := ParseCustomID(tc.customID)
			if ok != tc.wantOK || action != tc.wantAction || id != tc.wantID {
				t.Fatalf("ParseCustomID(%q) = %q, %q, %v", tc.customID, action, id, ok)
			}
		})
	}
}

func TestRenderListingCarriesButtons(t *testing.T) {
	send := renderSend(&models.Message{
		Kind:      models.MessageKindListing,
		SessionID: "s1",
		Embed:     &models.Embed{Title: "Looking for players", ImageURL: "https://example.com/x.png"},
	})

	if len(send.Components) != 1 {
		t.Fatalf("expected one action row, got %d", len(send.Components))
	}
	row := send.Components[0].(discordgo.ActionsRow)
	if len(row.Components) != 2 {
		t.Fatalf("expected join and withdraw buttons, got %d", len(row.Components))
	}
	if got := row.Components[0].(discordgo.Button).CustomID; got != "recruit_join:s1" {
		t.Fatalf("unexpected join custom id %q", got)
	}
	if send.Embeds[0].Image == nil || send.Embeds[0].Image.URL != "https://example.com/x.png" {
		t.Fatal("expected listing image")
	}
}

func TestRenderEditClearsComponents(t *testing.T) {
	edit := renderEdit("c1", "m1", &models.Message{
		Kind:      models.MessageKindListingEnded,
		SessionID: "s1",
		Embed:     &models.Embed{Title: "ended"},
	})

	if edit.Components == nil || len(*edit.Components) != 0 {
		t.Fatal("ended listing should drop its buttons")
	}
}

func TestRenderAllowedMentions(t *testing.T) {
	plain := renderAllowedMentions(&models.Message{})
	for _, p := range plain.Parse {
		if p == discordgo.AllowedMentionTypeEveryone {
			t.Fatal("everyone mention must be opt-in")
		}
	}

	ping := renderAllowedMentions(&models.Message{MentionEveryone: true})
	found := false
	for _, p := range ping.Parse {
		found = found || p == discordgo.AllowedMentionTypeEveryone
	}
	if !found {
		t.Fatal("expected everyone mention to be allowed")
	}
}
