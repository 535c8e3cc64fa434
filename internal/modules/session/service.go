package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripkit/internal/modules/dialogue"
	"tripkit/internal/modules/recommend"
)

// ApologyReply is sent when the engine fails; the dialogue state is left as it was.
const ApologyReply = "죄송해요, 잠시 문제가 생겼어요. 다시 말씀해주시겠어요?"

// Handoff is notified once when a session's profile is confirmed.
type Handoff interface {
	ProfileCompleted(ctx context.Context, sessionID string, profile dialogue.Profile, at time.Time) error
}

type Service struct {
	repo    Repository
	engine  Engine
	handoff Handoff
	log     *zap.Logger
	now     func() time.Time
}

// NewService wires the session controller. handoff may be nil.
func NewService(repo Repository, engine Engine, handoff Handoff, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, engine: engine, handoff: handoff, log: logger, now: time.Now}
}

type SendCommand struct {
	SessionID string
	Message   string
}

// Reply is the outcome of one chat turn.
type Reply struct {
	Session     *Session
	Reply       string
	CurrentStep dialogue.Step
	NextStep    dialogue.Step
	IsComplete  bool
	// Failed is set when the engine errored and the apology was sent instead.
	Failed bool
}

// Start creates a session with the greeting as its first message.
func (s *Service) Start(ctx context.Context) (*Session, error) {
	now := s.now()
	sess := New(now)
	sess.append(RoleAssistant, dialogue.GreetingReply(), now)
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.log.Info("session started", zap.String("session_id", sess.ID))
	return sess, nil
}

// Resume loads a session. Missing or expired sessions are replaced by a new one,
// reported through the replaced flag.
func (s *Service) Resume(ctx context.Context, id string) (sess *Session, replaced bool, err error) {
	if strings.TrimSpace(id) != "" {
		sess, err = s.repo.Load(ctx, id)
		if err == nil {
			return sess, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
	}
	sess, err = s.Start(ctx)
	if err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

// Send runs one turn: engine, state update, transcript append and a single save.
func (s *Service) Send(ctx context.Context, cmd SendCommand) (*Reply, error) {
	msg := strings.TrimSpace(cmd.Message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}

	sess, _, err := s.Resume(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}
	prev := sess.CurrentStep

	out, engErr := s.engine.Respond(ctx, sess, msg)

	now := s.now()
	sess.append(RoleUser, msg, now)
	sess.LastActiveAt = now

	if engErr != nil {
		s.log.Error("dialogue engine failed",
			zap.String("session_id", sess.ID),
			zap.String("step", string(prev)),
			zap.Error(engErr),
		)
		sess.append(RoleAssistant, ApologyReply, now)
		if err := s.repo.Save(ctx, sess); err != nil {
			return nil, err
		}
		return &Reply{Session: sess, Reply: ApologyReply, CurrentStep: prev, NextStep: prev, Failed: true}, nil
	}

	if out.Result != nil {
		sess.setState(sess.State().Apply(*out.Result))
		if out.Result.Reset {
			sess.CompletedAt = nil
		}
	} else if mergeOutcome(sess, out) {
		sess.CompletedAt = nil
	}
	sess.append(RoleAssistant, out.Reply, now)

	if out.IsComplete && sess.CompletedAt == nil {
		at := now
		sess.CompletedAt = &at
		s.notifyCompleted(ctx, sess, at)
	}

	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}

	return &Reply{
		Session:     sess,
		Reply:       out.Reply,
		CurrentStep: prev,
		NextStep:    sess.CurrentStep,
		IsComplete:  out.IsComplete,
	}, nil
}

// SetPreferences stores the traveller's preferences on an existing session.
func (s *Service) SetPreferences(ctx context.Context, id string, prefs recommend.Preferences) (*Session, error) {
	sess, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Preferences = &prefs
	sess.LastActiveAt = s.now()
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session without replacing it.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.repo.Load(ctx, id)
}

// mergeOutcome folds a delta-style outcome: filled fields never get cleared,
// rejected items only grow and an unknown step keeps the current one.
// A complete -> greeting transition is a full reset and is reported as true.
func mergeOutcome(sess *Session, out Outcome) bool {
	step, ok := dialogue.ParseStep(out.NextStep)
	if ok && sess.CurrentStep == dialogue.StepComplete && step == dialogue.StepGreeting {
		sess.setState(dialogue.NewState())
		return true
	}
	sess.CollectedData = sess.CollectedData.Merge(out.CollectedData)
	sess.RejectedItems = sess.RejectedItems.Union(out.RejectedItems)
	if ok {
		sess.CurrentStep = step
	}
	return false
}

func (s *Service) notifyCompleted(ctx context.Context, sess *Session, at time.Time) {
	s.log.Info("travel profile completed",
		zap.String("session_id", sess.ID),
		zap.String("city", sess.CollectedData.City),
		zap.String("concept", string(sess.CollectedData.ConceptID)),
	)
	if s.handoff == nil {
		return
	}
	if err := s.handoff.ProfileCompleted(ctx, sess.ID, sess.CollectedData, at); err != nil {
		s.log.Warn("profile handoff failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
}
