package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripkit/internal/ai"
	"tripkit/internal/modules/dialogue"
)

func TestRemoteEngineRequestShape(t *testing.T) {
	var got agentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"reply":"좋아요","currentStep":"city","nextStep":"spot","isComplete":false,
			"collectedData":{"city":"교토","spotName":null},"rejectedItems":{"cities":["오사카"]}}`))
	}))
	defer srv.Close()

	s := New(time.Now())
	for i := 0; i < 12; i++ {
		s.append(RoleUser, "m", time.Now())
	}
	s.CollectedData.City = "오사카"

	out, err := NewRemoteEngine(srv.URL, srv.Client()).Respond(context.Background(), s, "교토로 할래")
	require.NoError(t, err)

	assert.Equal(t, "교토로 할래", got.Message)
	assert.Equal(t, s.ID, got.SessionID)
	assert.Len(t, got.ConversationHistory, HistoryWindow)
	assert.Equal(t, "greeting", got.CurrentStep)
	assert.Equal(t, "오사카", got.CollectedData.City)

	assert.Equal(t, "좋아요", out.Reply)
	assert.Equal(t, "spot", out.NextStep)
	assert.Equal(t, "교토", out.CollectedData.City)
	assert.Equal(t, "", out.CollectedData.SpotName)
	assert.Equal(t, []string{"오사카"}, out.RejectedItems.Cities)
	assert.Nil(t, out.Result)
}

func TestRemoteEngineStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewRemoteEngine(srv.URL, srv.Client()).Respond(context.Background(), New(time.Now()), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

type stubProvider struct {
	in  ai.TurnInput
	res *ai.TurnResult
	err error
}

func (p *stubProvider) NextTurn(_ context.Context, in ai.TurnInput) (*ai.TurnResult, error) {
	p.in = in
	return p.res, p.err
}

func (p *stubProvider) SuggestDestinations(context.Context, ai.DestinationBrief) ([]ai.DestinationIdea, error) {
	return nil, errors.New("not used")
}

func TestLLMEngineMapsTurn(t *testing.T) {
	p := &stubProvider{res: &ai.TurnResult{
		Reply:         "어떤 장소가 좋을까요?",
		NextStep:      "spot",
		CollectedData: dialogue.Profile{City: "도쿄"},
	}}
	s := New(time.Now())
	s.append(RoleAssistant, "안녕하세요", time.Now())

	out, err := NewLLMEngine(p).Respond(context.Background(), s, "도쿄")
	require.NoError(t, err)
	assert.Equal(t, "도쿄", p.in.Message)
	require.Len(t, p.in.History, 1)
	assert.Equal(t, "assistant", p.in.History[0].Role)
	assert.Equal(t, dialogue.StepGreeting, p.in.CurrentStep)
	assert.Equal(t, "spot", out.NextStep)
	assert.Equal(t, "도쿄", out.CollectedData.City)
}

func TestLocalEngineReturnsResult(t *testing.T) {
	e := NewLocalEngine(dialogue.NewEngine(fixedCatalog()))
	out, err := e.Respond(context.Background(), New(time.Now()), "추천해줘")
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	assert.Equal(t, dialogue.StepGreeting, out.Result.PendingConfirm)
	assert.Equal(t, "greeting", out.NextStep)
	assert.False(t, out.IsComplete)
}
