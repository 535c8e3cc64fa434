// README: Chat session aggregate: transcript, dialogue state and preferences.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripkit/internal/modules/dialogue"
	"tripkit/internal/modules/recommend"
)

// DefaultTTL is how long a session lives after creation.
const DefaultTTL = 7 * 24 * time.Hour

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Session struct {
	ID           string    `json:"sessionId"`
	CreatedAt    time.Time `json:"sessionCreatedAt"`
	LastActiveAt time.Time `json:"sessionLastActiveAt"`
	Messages     []Message `json:"messages"`

	CurrentStep        dialogue.Step          `json:"currentStep"`
	CollectedData      dialogue.Profile       `json:"collectedData"`
	RejectedItems      dialogue.Rejected      `json:"rejectedItems"`
	Preferences        *recommend.Preferences `json:"preferences,omitempty"`
	PendingConfirmStep dialogue.Step          `json:"pendingConfirmStep,omitempty"`
	RetryCount         int                    `json:"retryCount"`
	LastPicks          dialogue.Picks         `json:"lastPicks,omitempty"`
	CompletedAt        *time.Time             `json:"completedAt,omitempty"`
}

func New(now time.Time) *Session {
	return &Session{
		ID:           "session_" + uuid.NewString(),
		CreatedAt:    now,
		LastActiveAt: now,
		Messages:     []Message{},
		CurrentStep:  dialogue.StepGreeting,
	}
}

// Expired reports whether the session is at least ttl old.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) >= ttl
}

// Remaining is the time left before expiry; never negative.
func (s *Session) Remaining(now time.Time, ttl time.Duration) time.Duration {
	d := ttl - now.Sub(s.CreatedAt)
	if d < 0 {
		return 0
	}
	return d
}

func (s *Session) State() dialogue.State {
	return dialogue.State{
		Step:           s.CurrentStep,
		Profile:        s.CollectedData,
		Rejected:       s.RejectedItems.Clone(),
		PendingConfirm: s.PendingConfirmStep,
		RetryCount:     s.RetryCount,
		Picks:          s.LastPicks.Clone(),
	}
}

func (s *Session) setState(st dialogue.State) {
	s.CurrentStep = st.Step
	s.CollectedData = st.Profile
	s.RejectedItems = st.Rejected
	s.PendingConfirmStep = st.PendingConfirm
	s.RetryCount = st.RetryCount
	s.LastPicks = st.Picks
}

func (s *Session) append(role Role, content string, at time.Time) {
	s.Messages = append(s.Messages, Message{
		ID:        newMessageID(at),
		Role:      role,
		Content:   content,
		Timestamp: at,
	})
}

// History returns up to n most recent messages.
func (s *Session) History(n int) []Message {
	if n <= 0 || len(s.Messages) <= n {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// Clone deep-copies the session so stored values never alias caller state.
func (s *Session) Clone() *Session {
	c := *s
	c.Messages = append([]Message(nil), s.Messages...)
	c.RejectedItems = s.RejectedItems.Clone()
	c.LastPicks = s.LastPicks.Clone()
	if s.Preferences != nil {
		p := *s.Preferences
		p.Interests = append([]string(nil), s.Preferences.Interests...)
		c.Preferences = &p
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func newMessageID(at time.Time) string {
	return fmt.Sprintf("msg_%d_%s", at.UnixMilli(), uuid.NewString()[:8])
}
