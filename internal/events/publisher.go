// README: NATS JetStream publisher for completed travel profiles.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"tripkit/internal/modules/dialogue"
)

const (
	StreamName              = "TRIPKIT"
	SubjectProfileCompleted = "tripkit.profile.completed"
)

// ProfileCompleted is the payload published when a traveller confirms their trip kit.
type ProfileCompleted struct {
	SessionID   string           `json:"sessionId"`
	Profile     dialogue.Profile `json:"profile"`
	ConceptName string           `json:"conceptName,omitempty"`
	FilmBrand   string           `json:"filmBrand,omitempty"`
	CompletedAt time.Time        `json:"completedAt"`
}

func NewProfileCompleted(sessionID string, p dialogue.Profile, at time.Time) ProfileCompleted {
	evt := ProfileCompleted{SessionID: sessionID, Profile: p, CompletedAt: at.UTC()}
	if c, ok := dialogue.LookupConcept(p.ConceptID); ok {
		evt.ConceptName = c.Name
		evt.FilmBrand = c.FilmBrand
	}
	return evt
}

// Publisher handles sending events to the NATS bus.
type Publisher struct {
	nc  *nats.Conn
	js  jetstream.JetStream
	log *zap.Logger
}

// NewPublisher connects to url and makes sure the TRIPKIT stream exists.
func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	nc, err := nats.Connect(url,
		nats.Name("tripkit-api"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{"tripkit.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
	if err != nil {
		// the stream may already exist with a different config, or the server may still be starting
		logger.Warn("failed to ensure NATS stream", zap.String("stream", StreamName), zap.Error(err))
	}

	return &Publisher{nc: nc, js: js, log: logger}, nil
}

// ProfileCompleted publishes the completed profile; it satisfies session.Handoff.
func (p *Publisher) ProfileCompleted(ctx context.Context, sessionID string, profile dialogue.Profile, at time.Time) error {
	data, err := json.Marshal(NewProfileCompleted(sessionID, profile, at))
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	ack, err := p.js.Publish(ctx, SubjectProfileCompleted, data, jetstream.WithMsgID(completionMsgID(sessionID, at)))
	if err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", SubjectProfileCompleted, err)
	}
	p.log.Debug("profile completed event published", zap.String("session_id", sessionID), zap.Uint64("seq", ack.Sequence))
	return nil
}

// completionMsgID dedups redeliveries of one completion while a session that is
// reset and completed again still publishes a fresh event.
func completionMsgID(sessionID string, at time.Time) string {
	return fmt.Sprintf("%s:%d", sessionID, at.UnixNano())
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
