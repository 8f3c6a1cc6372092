package admins

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vetrina.ru/catalog-bot/internal/features/auth"
	"vetrina.ru/catalog-bot/internal/kv"
)

const superAdmin = "@Lapsus00"

type adminsTestEnv struct {
	handler *Handler
	tokens  *auth.TokenManager
	service *Service
}

func newHandlerTestEnv(t *testing.T) *adminsTestEnv {
	t.Helper()
	service := NewService(NewRepository(kv.NewMemory()))
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)
	authz := auth.NewService(superAdmin, service)
	return &adminsTestEnv{
		handler: NewHandler(service, tokens, authz),
		tokens:  tokens,
		service: service,
	}
}

func (e *adminsTestEnv) request(t *testing.T, method, path, body, username string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if username != "" {
		token, err := e.tokens.Issue(username)
		if err != nil {
			t.Fatalf("Issue returned error: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	if strings.HasPrefix(path, "/admins/") {
		e.handler.Item(rec, req)
	} else {
		e.handler.Collection(rec, req)
	}
	return rec
}

func decodeAdmins(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body adminsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return body.Admins
}

func TestCollectionRequiresSession(t *testing.T) {
	env := newHandlerTestEnv(t)

	rec := env.request(t, http.MethodGet, "/admins", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}
}

func TestCollectionGetRequiresAdmin(t *testing.T) {
	env := newHandlerTestEnv(t)

	// валидная сессия, но не член множества
	rec := env.request(t, http.MethodGet, "/admins", "", "@stranger")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non admin, got %d", rec.Code)
	}

	rec = env.request(t, http.MethodGet, "/admins", "", superAdmin)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for super admin, got %d", rec.Code)
	}
}

func TestCollectionPostSuperAdminOnly(t *testing.T) {
	env := newHandlerTestEnv(t)

	if _, err := env.service.Add(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "@alice"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	// обычный админ не может добавлять
	rec := env.request(t, http.MethodPost, "/admins", `{"username":"@bob"}`, "@alice")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for regular admin, got %d", rec.Code)
	}

	rec = env.request(t, http.MethodPost, "/admins", `{}`, superAdmin)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "username is required") {
		t.Fatalf("expected 400 username is required, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodPost, "/admins", `{"username":"@bob"}`, superAdmin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	list := decodeAdmins(t, rec)
	if !containsMember(list, "@bob") || !containsMember(list, "@alice") {
		t.Fatalf("unexpected list after add: %v", list)
	}
}

func TestItemDeleteAdmin(t *testing.T) {
	env := newHandlerTestEnv(t)

	if _, err := env.service.Add(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "@alice"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	rec := env.request(t, http.MethodDelete, "/admins/@alice", "", "@alice")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for regular admin, got %d", rec.Code)
	}

	rec = env.request(t, http.MethodDelete, "/admins/@alice", "", superAdmin)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = env.request(t, http.MethodGet, "/admins", "", superAdmin)
	if containsMember(decodeAdmins(t, rec), "@alice") {
		t.Fatalf("expected @alice removed, got %s", rec.Body.String())
	}
}

func TestItemMethodNotAllowed(t *testing.T) {
	env := newHandlerTestEnv(t)

	rec := env.request(t, http.MethodGet, "/admins/@alice", "", superAdmin)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodDelete {
		t.Fatalf("expected Allow: DELETE, got %q", allow)
	}
}
