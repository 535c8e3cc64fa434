package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tripkit/internal/ai"
	"tripkit/internal/modules/dialogue"
)

// HistoryWindow is how many transcript messages are forwarded to remote engines.
const HistoryWindow = 10

// Outcome is one engine turn. Result is set by engines that produce a full dialogue
// result; the others report deltas that are merged into the session.
type Outcome struct {
	Reply         string
	NextStep      string
	CollectedData dialogue.Profile
	RejectedItems dialogue.Rejected
	IsComplete    bool
	Result        *dialogue.Result
}

// Engine produces the assistant's reply for one user message.
type Engine interface {
	Respond(ctx context.Context, s *Session, message string) (Outcome, error)
}

// LocalEngine runs the rule-based dialogue in process.
type LocalEngine struct {
	engine *dialogue.Engine
}

func NewLocalEngine(e *dialogue.Engine) *LocalEngine {
	if e == nil {
		e = dialogue.NewEngine(nil)
	}
	return &LocalEngine{engine: e}
}

func (l *LocalEngine) Respond(_ context.Context, s *Session, message string) (Outcome, error) {
	r := l.engine.Advance(s.State(), message)
	return Outcome{
		Reply:      r.Reply,
		NextStep:   string(r.NextStep),
		IsComplete: r.Navigate,
		Result:     &r,
	}, nil
}

type agentMessage struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

type agentRequest struct {
	Message             string            `json:"message"`
	SessionID           string            `json:"sessionId"`
	ConversationHistory []agentMessage    `json:"conversationHistory"`
	CurrentStep         string            `json:"currentStep"`
	CollectedData       dialogue.Profile  `json:"collectedData"`
	RejectedItems       dialogue.Rejected `json:"rejectedItems"`
}

type agentResponse struct {
	Reply         string            `json:"reply"`
	CurrentStep   string            `json:"currentStep"`
	NextStep      string            `json:"nextStep"`
	IsComplete    bool              `json:"isComplete"`
	CollectedData dialogue.Profile  `json:"collectedData"`
	RejectedItems dialogue.Rejected `json:"rejectedItems"`
	Error         string            `json:"error"`
}

// RemoteEngine forwards the turn to the curator agent's /chat endpoint.
type RemoteEngine struct {
	baseURL string
	httpc   *http.Client
}

func NewRemoteEngine(baseURL string, httpc *http.Client) *RemoteEngine {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &RemoteEngine{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

func (r *RemoteEngine) Respond(ctx context.Context, s *Session, message string) (Outcome, error) {
	history := s.History(HistoryWindow)
	conv := make([]agentMessage, 0, len(history))
	for _, m := range history {
		conv = append(conv, agentMessage{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp.UTC().Format(time.RFC3339)})
	}

	body, err := json.Marshal(agentRequest{
		Message:             message,
		SessionID:           s.ID,
		ConversationHistory: conv,
		CurrentStep:         string(s.CurrentStep),
		CollectedData:       s.CollectedData,
		RejectedItems:       s.RejectedItems,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("agent chat: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return Outcome{}, fmt.Errorf("agent chat: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpc.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("agent chat: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, fmt.Errorf("agent chat: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Outcome{}, fmt.Errorf("agent chat: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out agentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Outcome{}, fmt.Errorf("agent chat: decode: %w", err)
	}
	if out.Error != "" && out.Reply == "" {
		return Outcome{}, fmt.Errorf("agent chat: %s", out.Error)
	}

	return Outcome{
		Reply:         out.Reply,
		NextStep:      out.NextStep,
		CollectedData: out.CollectedData,
		RejectedItems: out.RejectedItems,
		IsComplete:    out.IsComplete,
	}, nil
}

// LLMEngine asks a language model to run the curator turn directly.
type LLMEngine struct {
	provider ai.LLMProvider
}

func NewLLMEngine(provider ai.LLMProvider) *LLMEngine {
	return &LLMEngine{provider: provider}
}

func (l *LLMEngine) Respond(ctx context.Context, s *Session, message string) (Outcome, error) {
	history := s.History(HistoryWindow)
	hist := make([]ai.HistoryMessage, 0, len(history))
	for _, m := range history {
		hist = append(hist, ai.HistoryMessage{Role: string(m.Role), Content: m.Content})
	}

	res, err := l.provider.NextTurn(ctx, ai.TurnInput{
		Message:     message,
		History:     hist,
		CurrentStep: s.CurrentStep,
		Collected:   s.CollectedData,
		Rejected:    s.RejectedItems,
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Reply:         res.Reply,
		NextStep:      res.NextStep,
		CollectedData: res.CollectedData,
		RejectedItems: res.RejectedItems,
		IsComplete:    res.IsComplete,
	}, nil
}
