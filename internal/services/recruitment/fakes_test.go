package recruitment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/scoutmaster/internal/common/clock"
	"github.com/KirkDiggler/scoutmaster/internal/gateway"
	"github.com/KirkDiggler/scoutmaster/internal/models"
)

type postedMessage struct {
	ChannelID string
	Message   *models.Message
}

type directMessage struct {
	UserID  string
	Message *models.Message
}

// fakeGateway is an in-memory chat platform that records every call
type fakeGateway struct {
	mu sync.Mutex

	nextID   int
	channels map[string]bool
	messages map[string]*postedMessage
	grants   map[string]map[string]bool

	restricted map[string]bool
	dms        []directMessage
	calls      int

	// failure injection
	failCreate  error
	failKind    map[models.MessageKind]error
	failMention error
	failDelete  map[string]error
	failDM      map[string]error

	// holds parks SendMessage for a kind until the gate is opened
	holds map[models.MessageKind]*messageGate
}

type messageGate struct {
	entered chan struct{}
	open    chan struct{}
}

func newFakeGateway(existing ...string) *fakeGateway {
	g := &fakeGateway{
		channels:   make(map[string]bool),
		messages:   make(map[string]*postedMessage),
		grants:     make(map[string]map[string]bool),
		restricted: make(map[string]bool),
		failKind:   make(map[models.MessageKind]error),
		failDelete: make(map[string]error),
		failDM:     make(map[string]error),
		holds:      make(map[models.MessageKind]*messageGate),
	}
	for _, id := range existing {
		g.channels[id] = true
	}
	return g
}

func (g *fakeGateway) id(prefix string) string {
	g.nextID++
	return fmt.Sprintf("%s-%d", prefix, g.nextID)
}

func (g *fakeGateway) ChannelExists(_ context.Context, input *gateway.ChannelExistsInput) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.channels[input.ChannelID], nil
}

func (g *fakeGateway) CreateSessionChannels(_ context.Context, input *gateway.CreateSessionChannelsInput) (*gateway.CreateSessionChannelsOutput, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failCreate != nil {
		return nil, g.failCreate
	}
	id := g.id("voice")
	g.channels[id] = true
	return &gateway.CreateSessionChannelsOutput{VoiceChannelID: id, TextChannelID: id}, nil
}

func (g *fakeGateway) RestrictChannel(_ context.Context, input *gateway.RestrictChannelInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if !g.channels[input.ChannelID] {
		return gateway.ErrNotFound
	}
	g.restricted[input.ChannelID] = true
	return nil
}

func (g *fakeGateway) GrantAccess(_ context.Context, input *gateway.AccessInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if !g.channels[input.ChannelID] {
		return gateway.ErrNotFound
	}
	if g.grants[input.ChannelID] == nil {
		g.grants[input.ChannelID] = make(map[string]bool)
	}
	g.grants[input.ChannelID][input.UserID] = true
	return nil
}

func (g *fakeGateway) RevokeAccess(_ context.Context, input *gateway.AccessInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if !g.channels[input.ChannelID] {
		return gateway.ErrNotFound
	}
	delete(g.grants[input.ChannelID], input.UserID)
	return nil
}

func (g *fakeGateway) DeleteChannel(_ context.Context, input *gateway.DeleteChannelInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if err := g.failDelete[input.ChannelID]; err != nil {
		return err
	}
	if !g.channels[input.ChannelID] {
		return gateway.ErrNotFound
	}
	delete(g.channels, input.ChannelID)
	delete(g.grants, input.ChannelID)
	for id, msg := range g.messages {
		if msg.ChannelID == input.ChannelID {
			delete(g.messages, id)
		}
	}
	return nil
}

func (g *fakeGateway) SendMessage(_ context.Context, input *gateway.SendMessageInput) (*gateway.SendMessageOutput, error) {
	g.mu.Lock()
	gate := g.holds[input.Message.Kind]
	delete(g.holds, input.Message.Kind)
	g.mu.Unlock()
	if gate != nil {
		close(gate.entered)
		<-gate.open
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if !g.channels[input.ChannelID] {
		return nil, gateway.ErrNotFound
	}
	if err := g.failKind[input.Message.Kind]; err != nil {
		return nil, err
	}
	if input.Message.MentionEveryone && g.failMention != nil {
		return nil, g.failMention
	}
	id := g.id("msg")
	g.messages[id] = &postedMessage{ChannelID: input.ChannelID, Message: input.Message}
	return &gateway.SendMessageOutput{MessageID: id}, nil
}

func (g *fakeGateway) EditMessage(_ context.Context, input *gateway.EditMessageInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if err := g.failDelete[input.MessageID]; err != nil {
		return err
	}
	msg, ok := g.messages[input.MessageID]
	if !ok || msg.ChannelID != input.ChannelID {
		return gateway.ErrNotFound
	}
	msg.Message = input.Message
	return nil
}

func (g *fakeGateway) DeleteMessage(_ context.Context, input *gateway.DeleteMessageInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if err := g.failDelete[input.MessageID]; err != nil {
		return err
	}
	msg, ok := g.messages[input.MessageID]
	if !ok || msg.ChannelID != input.ChannelID {
		return gateway.ErrNotFound
	}
	delete(g.messages, input.MessageID)
	return nil
}

func (g *fakeGateway) DirectMessage(_ context.Context, input *gateway.DirectMessageInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if err := g.failDM[input.UserID]; err != nil {
		return err
	}
	g.dms = append(g.dms, directMessage{UserID: input.UserID, Message: input.Message})
	return nil
}

// hold makes the next send of kind wait until the returned gate is opened
func (g *fakeGateway) hold(kind models.MessageKind) *messageGate {
	g.mu.Lock()
	defer g.mu.Unlock()
	gate := &messageGate{entered: make(chan struct{}), open: make(chan struct{})}
	g.holds[kind] = gate
	return gate
}

// snapshot helpers

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *fakeGateway) hasChannel(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.channels[id]
}

func (g *fakeGateway) message(id string) *postedMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.messages[id]
}

func (g *fakeGateway) hasAccess(channelID, userID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.grants[channelID][userID]
}

func (g *fakeGateway) messagesOfKind(kind models.MessageKind) []*postedMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []*postedMessage
	for _, msg := range g.messages {
		if msg.Message.Kind == kind {
			out = append(out, msg)
		}
	}
	return out
}

func (g *fakeGateway) directMessages(userID string) []directMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []directMessage
	for _, dm := range g.dms {
		if dm.UserID == userID {
			out = append(out, dm)
		}
	}
	return out
}

func (g *fakeGateway) setFailDelete(id string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.failDelete, id)
		return
	}
	g.failDelete[id] = err
}

// fakeClock only fires timers when advanced
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs due callbacks on the calling goroutine
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// seqGenerator hands out predictable session IDs
type seqGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("session-%d", g.n)
}
