package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"avtovybor/internal/config"
	"avtovybor/internal/http/handlers"
	applog "avtovybor/internal/log"
	"avtovybor/internal/notify"
	"avtovybor/internal/repos"
)

func testConfig() config.Config {
	return config.Config{
		TemplatesDir: "../../web/templates",
		StaticDir:    "../../web/static",
		CORSOrigins:  "*",
		BcryptCost:   bcrypt.MinCost,
		DB:           config.DBConfig{QueryTimeout: time.Second},
	}
}

// newTestApp builds the full application over an in-memory database.
// mut may adjust the config before wiring.
func newTestApp(t *testing.T, mut func(*config.Config)) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(config.DriverSQLite, ":memory:", 0)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := testConfig()
	if mut != nil {
		mut(&cfg)
	}
	app := handlers.NewApp(cfg, handlers.NewDeps(db, cfg, notify.Nop{}), io.Discard)
	return app, db
}

type apiResp struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	Field           string `json:"field"`
	RequestID       int64  `json:"requestId"`
	Estimate        int64  `json:"estimate"`
	EstimateDisplay string `json:"estimateDisplay"`
	User            struct {
		Email string `json:"email"`
	} `json:"user"`
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, raw
}

func decode(t *testing.T, raw []byte) apiResp {
	t.Helper()
	var r apiResp
	if err := json.Unmarshal(raw, &r); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return r
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

// captureLogs points the application logger at a buffer while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	applog.SetOutput(&lockedWriter{w: &buf, mu: &mu})
	defer applog.SetOutput(os.Stdout)

	fn()

	mu.Lock()
	defer mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

func countRequests(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM tradein_requests`); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
