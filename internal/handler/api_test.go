package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jobtracker/jobtracker/internal/auth"
	"github.com/jobtracker/jobtracker/internal/metrics"
	"github.com/jobtracker/jobtracker/internal/repository/memory"
	"github.com/jobtracker/jobtracker/internal/service"
	"github.com/jobtracker/jobtracker/internal/testutil"
)

// testAPI is the full router over the in-memory store.
type testAPI struct {
	t        *testing.T
	router   http.Handler
	recorder *metrics.InMemoryRecorder
	tokens   *auth.TokenService
}

// testStore is the storage the router needs: transactions plus a ping.
type testStore interface {
	service.Store
	HealthChecker
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithStore(t, memory.New())
}

func newTestAPIWithStore(t *testing.T, store testStore) *testAPI {
	t.Helper()

	tokens := auth.NewTokenService(testutil.TestSecret, time.Hour)
	recorder := metrics.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(RouterConfig{
		Logger:             logger,
		Accounts:           service.NewAccountService(store, testutil.FastHasher(), tokens, recorder),
		Applications:       service.NewApplicationService(store, recorder),
		Notes:              service.NewNoteService(store, recorder),
		Tokens:             tokens,
		Store:              store,
		Metrics:            recorder,
		IsDevelopment:      true,
		MaxRequestBodySize: 1 << 20,
	})

	return &testAPI{t: t, router: router, recorder: recorder, tokens: tokens}
}

// do sends a request through the router. body may be nil, a string (sent
// verbatim) or any value encoded as JSON.
func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	_, rec := a.request(method, path, token, body)
	return rec
}

// request is do that also returns the request it sent.
func (a *testAPI) request(method, path, token string, body any) (*http.Request, *httptest.ResponseRecorder) {
	a.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return req, rec
}

// signUp registers an account and returns a bearer token for it.
func (a *testAPI) signUp(email string) string {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
		"fullName": "Test User",
	})
	expectStatus(a.t, rec, http.StatusCreated)

	rec = a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	expectStatus(a.t, rec, http.StatusOK)

	var login struct {
		Token string `json:"token"`
	}
	decodeBody(a.t, rec, &login)
	return login.Token
}

// createApplication posts a minimal valid application and returns its id.
func (a *testAPI) createApplication(token, company string) int64 {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/applications", token, applicationBody(company))
	expectStatus(a.t, rec, http.StatusCreated)

	var app struct {
		ID int64 `json:"id"`
	}
	decodeBody(a.t, rec, &app)
	return app.ID
}

func (a *testAPI) createNote(token string, appID int64, content string) int64 {
	a.t.Helper()

	rec := a.do(http.MethodPost, appPath(appID)+"/notes", token, map[string]string{"content": content})
	expectStatus(a.t, rec, http.StatusCreated)

	var note struct {
		ID int64 `json:"id"`
	}
	decodeBody(a.t, rec, &note)
	return note.ID
}

func applicationBody(company string) map[string]any {
	return map[string]any{
		"companyName":     company,
		"positionTitle":   "Backend Engineer",
		"status":          "APPLIED",
		"applicationDate": "2024-03-01",
	}
}

func appPath(id int64) string {
	return "/api/applications/" + strconv.FormatInt(id, 10)
}

func notePath(appID, noteID int64) string {
	return appPath(appID) + "/notes/" + strconv.FormatInt(noteID, 10)
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	return body["error"]
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}
