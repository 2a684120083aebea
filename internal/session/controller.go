// Package session owns the lifecycle of a single streaming generation: at
// most one runs at a time, callers hold an explicit handle, and a handle
// from a finished session is rejected loudly instead of silently ignored.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"chatapp/internal/models"
)

var (
	// ErrSessionActive is returned by Start while a generation is running.
	ErrSessionActive = errors.New("a streaming session is already active")

	// ErrStaleSession is returned by Stop when the handle does not refer to
	// the currently active session.
	ErrStaleSession = errors.New("session handle is stale")

	// ErrStopped marks a generation ended by user cancellation rather than
	// transport failure.
	ErrStopped = errors.New("generation stopped")
)

// TransportFailureText replaces the assistant placeholder when the endpoint
// fails mid-generation.
const TransportFailureText = "Error: Unable to generate response. Please try again."

// IntroMaxTokens caps introduction responses so a verbose model cannot flood
// the greeting.
const IntroMaxTokens = 50

// TransportError wraps an endpoint failure so callers can distinguish it
// from cancellation.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Streamer is the endpoint surface the controller needs. *llm.Client
// satisfies it; tests substitute a scripted fake.
type Streamer interface {
	Stream(ctx context.Context, msgs []models.Message, maxOutputTokens int64, onDelta func(string)) error
}

// Event is one unit of session output. Exactly one terminal event (Done or
// Err) is delivered, after which the channel closes.
type Event struct {
	Delta string
	Done  bool
	Err   error
}

// Session is the handle for one in-flight generation.
type Session struct {
	id     string
	intro  bool
	cancel context.CancelFunc
	events chan Event
}

func (s *Session) ID() string { return s.id }

// Intro reports whether this session is an agent introduction rather than a
// reply to user input.
func (s *Session) Intro() bool { return s.intro }

// Events yields deltas in arrival order followed by one terminal event.
func (s *Session) Events() <-chan Event { return s.events }

// Controller serializes generations against one Streamer.
type Controller struct {
	mu       sync.Mutex
	streamer Streamer
	active   *Session
}

func NewController(streamer Streamer) *Controller {
	return &Controller{streamer: streamer}
}

// Start begins streaming a reply to the given conversation. It fails with
// ErrSessionActive if a generation is already running.
func (c *Controller) Start(msgs []models.Message) (*Session, error) {
	return c.start(msgs, 0, false)
}

// StartIntroduction begins a short self-introduction generation for the
// agent, used when a new chat opens.
func (c *Controller) StartIntroduction(ag models.Agent) (*Session, error) {
	prompt := fmt.Sprintf(
		"You are %s. %s Introduce yourself in ONE very short sentence (max 15 words). Be concise and friendly.",
		ag.Name, ag.SystemPrompt,
	)
	msgs := []models.Message{{Role: models.RoleSystem, Content: prompt}}
	return c.start(msgs, IntroMaxTokens, true)
}

// FallbackIntroduction is the canned greeting used when an introduction
// session fails for any reason.
func FallbackIntroduction(ag models.Agent) string {
	return fmt.Sprintf("Hi! I'm %s.", ag.Name)
}

func (c *Controller) start(msgs []models.Message, maxTokens int64, intro bool) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return nil, ErrSessionActive
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:     uuid.NewString(),
		intro:  intro,
		cancel: cancel,
		events: make(chan Event, 64),
	}
	c.active = s

	go c.run(ctx, s, msgs, maxTokens)
	return s, nil
}

func (c *Controller) run(ctx context.Context, s *Session, msgs []models.Message, maxTokens int64) {
	err := c.streamer.Stream(ctx, msgs, maxTokens, func(delta string) {
		s.events <- Event{Delta: delta}
	})

	c.mu.Lock()
	if c.active == s {
		c.active = nil
	}
	c.mu.Unlock()

	switch {
	case err == nil:
		s.events <- Event{Done: true}
	case errors.Is(err, context.Canceled):
		s.events <- Event{Err: ErrStopped}
	default:
		s.events <- Event{Err: &TransportError{Cause: err}}
	}
	close(s.events)
}

// Stop cancels the generation held by s. Deltas already delivered stay with
// the consumer; the terminal event will carry ErrStopped.
func (c *Controller) Stop(s *Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s == nil || c.active != s {
		return ErrStaleSession
	}
	s.cancel()
	return nil
}

// Active reports whether a generation is currently running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}
