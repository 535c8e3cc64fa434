package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httptransport "tripkit/internal/http"
	"tripkit/internal/modules/dialogue"
	"tripkit/internal/modules/download"
	"tripkit/internal/modules/imagegen"
	"tripkit/internal/modules/recommend"
	"tripkit/internal/modules/session"
)

type stubImages struct {
	err error
	got imagegen.GenerateRequest
}

func (s *stubImages) Generate(_ context.Context, req imagegen.GenerateRequest) (*imagegen.GenerateResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &imagegen.GenerateResponse{Status: imagegen.StatusSuccess, ImageURL: "https://img.example/x.png"}, nil
}

type testEnv struct {
	router *gin.Engine
	images *stubImages
}

func newTestEnv(t *testing.T, agent http.HandlerFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if agent == nil {
		agent = func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }
	}
	agentSrv := httptest.NewServer(agent)
	t.Cleanup(agentSrv.Close)

	catalog := dialogue.NewStaticCatalogWithRand(func(int) int { return 0 })
	sessions := session.NewService(
		session.NewMemoryStore(session.DefaultTTL),
		session.NewLocalEngine(dialogue.NewEngine(catalog)),
		nil, nil,
	)
	images := &stubImages{}
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Sessions:  sessions,
		Images:    imagegen.NewService(images, nil),
		Recommend: recommend.NewService(recommend.NewClient(agentSrv.URL, agentSrv.Client()), nil, nil, nil),
		Download:  download.NewService(nil, 0, nil),
	})
	return &testEnv{router: router, images: images}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type chatBody struct {
	Reply         string           `json:"reply"`
	CurrentStep   string           `json:"currentStep"`
	NextStep      string           `json:"nextStep"`
	IsComplete    bool             `json:"isComplete"`
	CollectedData dialogue.Profile `json:"collectedData"`
	SessionID     string           `json:"sessionId"`
	Error         string           `json:"error"`
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	sess := decode[session.Session](t, w)
	require.Len(t, sess.Messages, 1)

	w = env.do(t, http.MethodPost, "/api/chat", map[string]string{"sessionId": sess.ID, "message": "파리"})
	require.Equal(t, http.StatusOK, w.Code)
	chat := decode[chatBody](t, w)
	assert.Equal(t, "greeting", chat.CurrentStep)
	assert.Equal(t, "spot", chat.NextStep)
	assert.Equal(t, "파리", chat.CollectedData.City)
	assert.Equal(t, sess.ID, chat.SessionID)

	w = env.do(t, http.MethodGet, "/api/sessions/"+sess.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resumed := decode[map[string]any](t, w)
	assert.Equal(t, false, resumed["replaced"])
	assert.Equal(t, "spot", resumed["currentStep"])

	w = env.do(t, http.MethodPut, "/api/sessions/"+sess.ID+"/preferences", recommend.Preferences{Mood: "peaceful"})
	require.Equal(t, http.StatusOK, w.Code)
	withPrefs := decode[session.Session](t, w)
	require.NotNil(t, withPrefs.Preferences)
	assert.Equal(t, "peaceful", withPrefs.Preferences.Mood)
}

func TestResumeUnknownSessionIsReplaced(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodGet, "/api/sessions/session_0000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, true, body["replaced"])
	assert.NotEqual(t, "session_0000", body["sessionId"])
}

func TestChatValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/chat", map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/chat", map[string]string{"sessionId": "../etc", "message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/sessions/session_missing/preferences", map[string]string{"mood": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/generate", map[string]string{"concept": "noir"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.images.err = errors.New("status 429: too many")
	w = env.do(t, http.MethodPost, "/api/generate", map[string]string{"destination": "파리", "concept": "noir"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "GENERATION_FAILED", body["error"])
	assert.Equal(t, imagegen.MsgRateLimited, body["message"])
}

func TestGenerateForSession(t *testing.T) {
	env := newTestEnv(t, nil)

	sess := decode[session.Session](t, env.do(t, http.MethodPost, "/api/sessions", nil))

	w := env.do(t, http.MethodPost, "/api/sessions/"+sess.ID+"/generate", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	env.do(t, http.MethodPost, "/api/chat", map[string]string{"sessionId": sess.ID, "message": "파리"})
	env.do(t, http.MethodPost, "/api/chat", map[string]string{"sessionId": sess.ID, "message": "몽마르트 언덕"})

	w = env.do(t, http.MethodPost, "/api/sessions/"+sess.ID+"/generate", map[string]string{"additionalPrompt": "golden hour"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "몽마르트 언덕, 파리", env.images.got.Destination)
	assert.Equal(t, "golden hour", env.images.got.AdditionalPrompt)
	assert.Equal(t, string(dialogue.DefaultConcept), env.images.got.Concept)
}

func TestRecommendFallbackWhenAgentFails(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	w := env.do(t, http.MethodPost, "/api/recommendations/destinations", map[string]any{"preferences": map[string]string{"mood": "romantic"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[recommend.Response](t, w)
	assert.True(t, body.IsFallback)
	assert.NotEmpty(t, body.Destinations)
}

func TestRecommendStreamRelaysFrames(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"destination\",\"destination\":{\"id\":\"d1\",\"name\":\"알파마\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"complete\"}\n\n")
	})
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/recommendations/destinations/stream", "application/json", strings.NewReader(`{"preferences":{}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	var frames []recommend.Frame
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var f recommend.Frame
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &f))
		frames = append(frames, f)
	}
	require.Len(t, frames, 2)
	assert.Equal(t, "d1", frames[0].Destination.ID)
	assert.Equal(t, recommend.FrameComplete, frames[1].Type)
}

func TestDownloadImage(t *testing.T) {
	img := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer img.Close()
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/download-image", map[string]string{"imageUrl": img.URL + "/a.png", "filename": "trip.png"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="trip.png"`, w.Header().Get("Content-Disposition"))

	w = env.do(t, http.MethodPost, "/api/download-image", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/download-image", map[string]string{"imageUrl": img.URL + "/missing"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
