// README: Smoke cases for the dialogue, generation, recommendation and download endpoints plus DB/Redis checks.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg       Config
	httpc     *http.Client
	db        *pgxpool.Pool
	redis     *redis.Client
	sessionID string
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

// dialogueScript walks the local engine from greeting to completion.
var dialogueScript = []string{
	"파리", "몽마르트 언덕", "산책하기", "필름로그", "린넨 셔츠", "뒤돌아보기", "Kodak Portra 400", "Canon AE-1", "네",
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "postgres session store reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "dsn not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "redis session store reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "apply migration SQL when requested",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "tables from the migration file exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "dsn not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table: " + t}
					}
				}
				return Result{Status: "PASS"}
			},
		},

		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),

		// Sessions
		{
			Name:  "Session: start",
			Focus: "new session carries the greeting",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, body, err := r.doJSON(ctx, http.MethodPost, base+"/api/sessions", nil)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusCreated {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", status)}
				}
				var sess struct {
					ID       string            `json:"sessionId"`
					Messages []json.RawMessage `json:"messages"`
				}
				if err := json.Unmarshal(body, &sess); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if sess.ID == "" || len(sess.Messages) != 1 {
					return Result{Status: "FAIL", Note: "missing session id or greeting"}
				}
				r.sessionID = sess.ID
				return Result{Status: "PASS", Latency: time.Since(start), Note: sess.ID}
			},
		},
		{
			Name:  "Session: resume unknown id -> replaced",
			Focus: "expired or unknown ids start over",
			Run: func(ctx context.Context, r *Runner) Result {
				status, body, err := r.doJSON(ctx, http.MethodGet, base+"/api/sessions/session_bench_unknown", nil)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				var resp struct {
					Replaced bool `json:"replaced"`
				}
				_ = json.Unmarshal(body, &resp)
				if status != http.StatusOK || !resp.Replaced {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d replaced=%v", status, resp.Replaced)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Session: stored in redis with ttl",
			Focus: "redis key carries the remaining lifetime",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil || r.sessionID == "" {
					return Result{Status: "SKIP", Note: "redis or session not available"}
				}
				ttl, err := r.redis.TTL(ctx, "tripkit:session:"+r.sessionID).Result()
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if ttl <= 0 {
					return Result{Status: "PENDING", Note: "key missing; server may use another store"}
				}
				return Result{Status: "PASS", Note: "ttl=" + ttl.String()}
			},
		},

		// Chat
		httpCase("Chat: empty message -> 400", base+"/api/chat", map[string]any{"message": "  "}, []int{400}, nil),
		httpCase("Chat: malformed session id -> 400", base+"/api/chat", map[string]any{
			"sessionId": "../../etc/passwd",
			"message":   "파리",
		}, []int{400}, nil),
		{
			Name:  "Chat: scripted dialogue reaches complete",
			Focus: "greeting through confirm with the local engine",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.sessionID == "" {
					return Result{Status: "SKIP", Note: "no session"}
				}
				start := time.Now()
				var last struct {
					NextStep   string `json:"nextStep"`
					IsComplete bool   `json:"isComplete"`
					Error      string `json:"error"`
				}
				for _, msg := range dialogueScript {
					status, body, err := r.doJSON(ctx, http.MethodPost, base+"/api/chat", map[string]any{
						"sessionId": r.sessionID,
						"message":   msg,
					})
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if status != http.StatusOK {
						return Result{Status: "FAIL", Note: fmt.Sprintf("%q status=%d", msg, status)}
					}
					if err := json.Unmarshal(body, &last); err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if last.Error != "" {
						return Result{Status: "FAIL", Note: last.Error}
					}
				}
				if !last.IsComplete {
					return Result{Status: "PENDING", Latency: time.Since(start), Note: "ended at " + last.NextStep + " (non-local engine?)"}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name:  "Generate: session profile",
			Focus: "generation from the collected profile",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.sessionID == "" {
					return Result{Status: "SKIP", Note: "no session"}
				}
				start := time.Now()
				status, body, err := r.doJSON(ctx, http.MethodPost, base+"/api/sessions/"+r.sessionID+"/generate", nil)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				latency := time.Since(start)
				switch status {
				case http.StatusOK:
					return Result{Status: "PASS", Latency: latency}
				case http.StatusInternalServerError:
					return Result{Status: "PENDING", Latency: latency, Note: "agent error: " + string(body)}
				default:
					return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
				}
			},
		},
		concurrentChat(base + "/api/chat"),

		// Generation / recommendation / download
		httpCase("Generate: missing destination -> 400", base+"/api/generate", map[string]any{"concept": "filmlog"}, []int{400}, nil),
		httpCase("Recommend: destinations", base+"/api/recommendations/destinations", map[string]any{
			"preferences": map[string]any{"mood": "peaceful", "aesthetic": "nature", "duration": "short", "interests": []string{"photography"}},
			"concept":     "filmlog",
		}, []int{200}, []int{502}),
		{
			Name:  "Recommend: stream frames",
			Focus: "SSE relay ends with complete or error",
			Run: func(ctx context.Context, r *Runner) Result {
				return streamRecommend(ctx, r, base+"/api/recommendations/destinations/stream")
			},
		},
		httpCase("Download: missing url -> 400", base+"/api/download-image", map[string]any{}, []int{400}, nil),
		httpCase("Download: unreachable upstream -> 5xx", base+"/api/download-image", map[string]any{
			"imageUrl": "http://127.0.0.1:1/none.png",
		}, []int{500, 502}, nil),

		manualCase("Events: profile.completed on JetStream", "subscribe to tripkit.profile.completed and finish a dialogue"),
		manualCase("Session: ttl expiry", "set TRIPKIT_SESSION_TTL=1m and resume after it lapses"),

		{
			Name:  "Perf: chat first turns",
			Focus: "throughput of new-session chat turns",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/chat", map[string]any{"message": "리스본"})
			},
		},
	}
}

func (r *Runner) doJSON(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	return resp.StatusCode, b, err
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, _, err := r.doJSON(ctx, method, url, body)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			latency := time.Since(start)

			if contains(okStatuses, status) {
				return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			if contains(pendingStatuses, status) {
				return Result{Status: "PENDING", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func manualCase(name, note string) TestCase {
	return TestCase{
		Name:  name,
		Focus: "Manual",
		Run: func(ctx context.Context, r *Runner) Result {
			return Result{Status: "SKIP", Note: note}
		},
	}
}

// concurrentChat fires turns at one session at once; every turn must be answered.
func concurrentChat(url string) TestCase {
	return TestCase{
		Name:  "Chat: concurrent turns on one session",
		Focus: "no 5xx under concurrent writes",
		Run: func(ctx context.Context, r *Runner) Result {
			status, body, err := r.doJSON(ctx, http.MethodPost, r.cfg.BaseURL+"/api/sessions", nil)
			if err != nil || status != http.StatusCreated {
				return Result{Status: "FAIL", Note: fmt.Sprintf("start session: status=%d err=%v", status, err)}
			}
			var sess struct {
				ID string `json:"sessionId"`
			}
			if err := json.Unmarshal(body, &sess); err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}

			wg := sync.WaitGroup{}
			mu := sync.Mutex{}
			ok := 0
			for i := 0; i < r.cfg.Concurrency; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					st, _, err := r.doJSON(ctx, http.MethodPost, url, map[string]any{
						"sessionId": sess.ID,
						"message":   fmt.Sprintf("도시 %d", i),
					})
					if err != nil {
						return
					}
					mu.Lock()
					if st == http.StatusOK {
						ok++
					}
					mu.Unlock()
				}(i)
			}
			wg.Wait()

			if ok != r.cfg.Concurrency {
				return Result{Status: "FAIL", Note: fmt.Sprintf("ok=%d/%d", ok, r.cfg.Concurrency)}
			}
			return Result{Status: "PASS", Note: fmt.Sprintf("ok=%d", ok)}
		},
	}
}

func streamRecommend(ctx context.Context, r *Runner, url string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(`{"preferences":{"mood":"romantic"}}`))
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		return Result{Status: "FAIL", Note: "content-type=" + ct}
	}

	frames := 0
	last := ""
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var f struct {
			Type string `json:"type"`
		}
		if json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &f) == nil {
			frames++
			last = f.Type
		}
	}
	latency := time.Since(start)
	switch last {
	case "complete":
		return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("frames=%d", frames)}
	case "error":
		return Result{Status: "PENDING", Latency: latency, Note: "agent reported error"}
	default:
		return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("frames=%d last=%q", frames, last)}
	}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					if ctx.Err() != nil {
						return
					}
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
