package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"tripkit/internal/modules/dialogue"
)

func TestNewProfileCompletedAddsConceptDetails(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("KST", 9*3600))
	evt := NewProfileCompleted("session_1", dialogue.Profile{City: "파리", ConceptID: dialogue.ConceptNoir}, at)

	concept, _ := dialogue.LookupConcept(dialogue.ConceptNoir)
	if evt.ConceptName != concept.Name || evt.FilmBrand != concept.FilmBrand {
		t.Fatalf("concept details missing: %+v", evt)
	}
	if evt.CompletedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %s", evt.CompletedAt)
	}

	raw, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["sessionId"] != "session_1" {
		t.Fatalf("unexpected payload %s", raw)
	}
}

func TestNewProfileCompletedUnknownConcept(t *testing.T) {
	evt := NewProfileCompleted("s", dialogue.Profile{}, time.Now())
	if evt.ConceptName != "" || evt.FilmBrand != "" {
		t.Fatalf("expected no concept details, got %+v", evt)
	}
}

func TestCompletionMsgIDDistinguishesRecompletions(t *testing.T) {
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(5 * time.Minute)

	if completionMsgID("session_1", first) == completionMsgID("session_1", second) {
		t.Fatalf("a session completed twice must publish two message ids")
	}
	if completionMsgID("session_1", first) != completionMsgID("session_1", first) {
		t.Fatalf("a redelivered completion must keep its message id")
	}
	if completionMsgID("session_1", first) == completionMsgID("session_2", first) {
		t.Fatalf("message ids must differ across sessions")
	}
}

func TestPublisherDeliversToSubscribers(t *testing.T) {
	url := os.Getenv("TRIPKIT_TEST_NATS_URL")
	if url == "" {
		t.Skip("TRIPKIT_TEST_NATS_URL not set; skipping NATS-backed tests")
	}

	pub, err := NewPublisher(url, nil)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	defer pub.Close()

	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer nc.Close()

	sub, err := nc.SubscribeSync(SubjectProfileCompleted)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	sessionID := "session_test_" + time.Now().Format("150405.000")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pub.ProfileCompleted(ctx, sessionID, dialogue.Profile{City: "교토"}, time.Now()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	msg, err := sub.NextMsg(5 * time.Second)
	if err != nil {
		t.Fatalf("next msg: %v", err)
	}
	var got ProfileCompleted
	if err := json.Unmarshal(msg.Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SessionID != sessionID || got.Profile.City != "교토" {
		t.Fatalf("unexpected event %+v", got)
	}
}
