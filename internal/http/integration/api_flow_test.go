package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/api/internal/config"
	"github.com/taskhub/api/internal/domain/task"
	apphttp "github.com/taskhub/api/internal/http"
	"github.com/taskhub/api/internal/repo/memory"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() config.Config {
	return config.Config{
		Env:                "test",
		Port:               0,
		JWTSecret:          "test-secret-key",
		TokenTTL:           30 * 24 * time.Hour,
		BcryptCost:         bcrypt.MinCost,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		RateLimit:          1000,
		RateLimitWindow:    time.Minute,
	}
}

func setupTestRouter(t *testing.T) (*gin.Engine, *memory.UsersRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	users := memory.NewUsersRepo()
	tasks := memory.NewTasksRepo()

	router := apphttp.NewRouterWithStores(logger, testConfig(), users, tasks, nil, nil, nil)

	return router, users
}

func doRequest(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), out)
	if err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

func doLoginFailure(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", "fixed-for-comparison")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

type authResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func register(t *testing.T, router http.Handler, name, email, password string) authResponse {
	t.Helper()

	w := doRequest(router, http.MethodPost, "/api/users/register",
		`{"name": "`+name+`", "email": "`+email+`", "password": "`+password+`"}`, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("register got %d, body=%s", w.Code, w.Body.String())
	}

	var resp authResponse
	mustReadJSON(t, w, &resp)

	if resp.Token == "" || resp.ID == "" {
		t.Fatalf("register response incomplete: %s", w.Body.String())
	}

	return resp
}

func TestRegisterLoginFlow(t *testing.T) {
	router, _ := setupTestRouter(t)

	reg := register(t, router, "John Doe", "john@example.com", "secret1")

	// a second registration with the same email is a conflict
	w := doRequest(router, http.MethodPost, "/api/users/register",
		`{"name": "Impostor", "email": "john@example.com", "password": "secret2"}`, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register got %d, want 400, body=%s", w.Code, w.Body.String())
	}

	// login with the right password works and issues a fresh token
	w = doRequest(router, http.MethodPost, "/api/users/login",
		`{"email": "john@example.com", "password": "secret1"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("login got %d, body=%s", w.Code, w.Body.String())
	}

	var login authResponse
	mustReadJSON(t, w, &login)

	if login.ID != reg.ID {
		t.Fatalf("login identity %q differs from registration %q", login.ID, reg.ID)
	}

	if login.Token == "" {
		t.Fatalf("login response missing token: %s", w.Body.String())
	}

	// wrong password and unknown email answer identically; pin the
	// request id so the bodies can be compared byte for byte
	wrongPassword := doLoginFailure(router, `{"email": "john@example.com", "password": "wrong-password"}`)
	unknownEmail := doLoginFailure(router, `{"email": "nobody@example.com", "password": "secret1"}`)

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("login failures got %d and %d, want 401 for both", wrongPassword.Code, unknownEmail.Code)
	}

	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("login failures are distinguishable:\n%s\n%s",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestTaskLifecycle(t *testing.T) {
	router, _ := setupTestRouter(t)

	alice := register(t, router, "Alice", "alice@example.com", "secret1")

	// unauthorized without a token
	w := doRequest(router, http.MethodGet, "/api/tasks", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token got %d, want 401", w.Code)
	}

	// create with the canonical example payload
	w = doRequest(router, http.MethodPost, "/api/tasks", `{
		"title": "Buy groceries",
		"description": "Milk, Bread, Cheese",
		"status": "pending",
		"dueDate": "2024-09-30"
	}`, alice.Token)

	if w.Code != http.StatusCreated {
		t.Fatalf("create got %d, body=%s", w.Code, w.Body.String())
	}

	var created task.Task
	mustReadJSON(t, w, &created)

	if created.ID == "" {
		t.Fatalf("created task has no id: %s", w.Body.String())
	}

	if created.OwnerID != alice.ID {
		t.Fatalf("created task owner %q, want %q", created.OwnerID, alice.ID)
	}

	// round trip through the listing
	w = doRequest(router, http.MethodGet, "/api/tasks", "", alice.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("list got %d, body=%s", w.Code, w.Body.String())
	}

	var listing []task.Task
	mustReadJSON(t, w, &listing)

	if len(listing) != 1 {
		t.Fatalf("got %d tasks, want 1: %s", len(listing), w.Body.String())
	}

	got := listing[0]
	if got.ID != created.ID ||
		got.Title != "Buy groceries" ||
		got.Description != "Milk, Bread, Cheese" ||
		got.Status != task.StatusPending ||
		got.OwnerID != alice.ID {
		t.Fatalf("listed task does not match created one: %+v", got)
	}

	// partial update: empty title keeps the stored title
	w = doRequest(router, http.MethodPut, "/api/tasks/"+created.ID,
		`{"title": "", "status": "completed"}`, alice.Token)

	if w.Code != http.StatusOK {
		t.Fatalf("update got %d, body=%s", w.Code, w.Body.String())
	}

	var updated task.Task
	mustReadJSON(t, w, &updated)

	if updated.Title != "Buy groceries" {
		t.Fatalf("empty title should keep existing, got %q", updated.Title)
	}

	if updated.Status != task.StatusCompleted {
		t.Fatalf("status not updated: %+v", updated)
	}

	// delete, then delete again
	w = doRequest(router, http.MethodDelete, "/api/tasks/"+created.ID, "", alice.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete got %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodDelete, "/api/tasks/"+created.ID, "", alice.Token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete got %d, want 404, body=%s", w.Code, w.Body.String())
	}
}

func TestCrossUserIsolation(t *testing.T) {
	router, _ := setupTestRouter(t)

	alice := register(t, router, "Alice", "alice@example.com", "secret1")
	bob := register(t, router, "Bob", "bob@example.com", "secret2")

	w := doRequest(router, http.MethodPost, "/api/tasks",
		`{"title": "Alice's task", "dueDate": "2024-09-30"}`, alice.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create got %d, body=%s", w.Code, w.Body.String())
	}

	var created task.Task
	mustReadJSON(t, w, &created)

	// bob sees an empty list
	w = doRequest(router, http.MethodGet, "/api/tasks", "", bob.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("list got %d, body=%s", w.Code, w.Body.String())
	}

	var bobsTasks []task.Task
	mustReadJSON(t, w, &bobsTasks)

	if len(bobsTasks) != 0 {
		t.Fatalf("bob can see alice's tasks: %+v", bobsTasks)
	}

	// bob's update and delete both read as not found
	w = doRequest(router, http.MethodPut, "/api/tasks/"+created.ID,
		`{"title": "hijacked"}`, bob.Token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-user update got %d, want 404, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodDelete, "/api/tasks/"+created.ID, "", bob.Token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-user delete got %d, want 404, body=%s", w.Code, w.Body.String())
	}

	// the task is untouched
	w = doRequest(router, http.MethodGet, "/api/tasks", "", alice.Token)
	var alicesTasks []task.Task
	mustReadJSON(t, w, &alicesTasks)

	if len(alicesTasks) != 1 || alicesTasks[0].Title != "Alice's task" {
		t.Fatalf("alice's task was modified: %+v", alicesTasks)
	}
}

func TestDeletedUserTokenRejected(t *testing.T) {
	router, users := setupTestRouter(t)

	ghost := register(t, router, "Ghost", "ghost@example.com", "secret1")

	users.Delete(t.Context(), ghost.ID)

	w := doRequest(router, http.MethodGet, "/api/tasks", "", ghost.Token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("deleted user's token got %d, want 401, body=%s", w.Code, w.Body.String())
	}
}

func TestUnhandledRoute(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/nope", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown route got %d, want 404, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	mustReadJSON(t, w, &resp)

	if resp.Error.Message == "" {
		t.Fatalf("404 body missing message: %s", w.Body.String())
	}
}
