package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gradportal/internal/auth"
	"gradportal/internal/dashboard"
	"gradportal/internal/directory"
	"gradportal/internal/identity"
	"gradportal/internal/monitor"
	"gradportal/internal/session"
)

type memStore struct {
	roles       []directory.Role
	users       []directory.User
	userInserts int
}

func (m *memStore) SelectRoles(ctx context.Context) ([]directory.Role, error) {
	return append([]directory.Role(nil), m.roles...), nil
}

func (m *memStore) InsertRoles(ctx context.Context, roles []directory.Role) error {
	for _, role := range roles {
		m.roles = append(m.roles, role)
	}
	return nil
}

func (m *memStore) SelectUsers(ctx context.Context, limit int) ([]directory.User, error) {
	if limit <= 0 || limit > len(m.users) {
		limit = len(m.users)
	}
	return append([]directory.User(nil), m.users[:limit]...), nil
}

func (m *memStore) InsertUser(ctx context.Context, u directory.User) error {
	m.userInserts++
	m.users = append(m.users, u)
	return nil
}

func (m *memStore) CountUsers(ctx context.Context) (int, error) { return len(m.users), nil }

type emptySource struct{}

func (emptySource) LatestHealth(ctx context.Context) (*monitor.Health, error)       { return nil, nil }
func (emptySource) ActiveAlerts(ctx context.Context) ([]monitor.Alert, error)       { return nil, nil }
func (emptySource) LatestUsage(ctx context.Context) (*monitor.Usage, error)         { return nil, nil }
func (emptySource) LatestBackup(ctx context.Context) (*monitor.Backup, error)       { return nil, nil }
func (emptySource) LatestAnalytics(ctx context.Context) (*monitor.Analytics, error) { return nil, nil }

const (
	testIssuer = "gradportal-test"
	testKey    = "test-signing-key"
)

func newTestRouter(t *testing.T, ms *memStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewStore(identity.NewFixedResolver(identity.DemoIdentities()))
	dir := directory.NewService(ms, nil, time.Second)
	mon := monitor.NewService(emptySource{})
	boards := dashboard.NewRegistry(dir, mon, 50)
	h := New(sessions, dir, mon, boards, testIssuer, testKey, time.Hour, 50)

	r := gin.New()
	r.POST("/v1/auth/login", h.Login)
	authGroup := r.Group("/v1", auth.SessionAuth(testKey, testIssuer))
	authGroup.GET("/auth/me", h.Me)
	authGroup.POST("/auth/switch-role", h.SwitchRole)
	authGroup.POST("/auth/logout", h.Logout)
	authGroup.GET("/view", h.View)
	authGroup.GET("/dashboard", h.Dashboard)
	authGroup.GET("/roles", h.ListRoles)
	authGroup.GET("/users", h.ListUsers)
	authGroup.POST("/users", h.CreateUser)
	authGroup.GET("/admin/overview", h.AdminOverview)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/v1/auth/login", "", gin.H{"email": email, "password": "anything"})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	return resp.Token
}

func TestLoginUnknownEmail(t *testing.T) {
	r := newTestRouter(t, &memStore{})
	w := doJSON(t, r, http.MethodPost, "/v1/auth/login", "", gin.H{"email": "nobody@university.edu", "password": "x"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginSwitchRoleLogoutFlow(t *testing.T) {
	r := newTestRouter(t, &memStore{})
	token := login(t, r, "faculty@university.edu")

	w := doJSON(t, r, http.MethodGet, "/v1/view", token, nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"faculty"`)) {
		t.Fatalf("expected faculty view, got %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/v1/auth/switch-role", token, gin.H{"role": "admin"})
	if w.Code != http.StatusOK {
		t.Fatalf("switch role failed: %d %s", w.Code, w.Body.String())
	}
	var switched struct {
		Identity identity.Identity `json:"identity"`
		View     string            `json:"view"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &switched); err != nil {
		t.Fatalf("decode switch response: %v", err)
	}
	if switched.View != "admin" {
		t.Fatalf("expected admin view after switch, got %s", switched.View)
	}
	if switched.Identity.Email != "faculty@university.edu" {
		t.Fatalf("expected identity preserved across switch, got %s", switched.Identity.Email)
	}

	w = doJSON(t, r, http.MethodPost, "/v1/auth/logout", token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout failed: %d", w.Code)
	}

	// Token is still parseable but the session is gone: back to login view.
	w = doJSON(t, r, http.MethodGet, "/v1/view", token, nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"login"`)) {
		t.Fatalf("expected login view after logout, got %d %s", w.Code, w.Body.String())
	}
}

func TestSwitchRoleRejectsUnknownRole(t *testing.T) {
	r := newTestRouter(t, &memStore{})
	token := login(t, r, "student@university.edu")

	w := doJSON(t, r, http.MethodPost, "/v1/auth/switch-role", token, gin.H{"role": "superuser"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", w.Code)
	}
}

func TestAuthGroupRequiresToken(t *testing.T) {
	r := newTestRouter(t, &memStore{})
	w := doJSON(t, r, http.MethodGet, "/v1/users", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/v1/users", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}
}

func TestRolesSeededOnFirstRead(t *testing.T) {
	ms := &memStore{}
	r := newTestRouter(t, ms)
	token := login(t, r, "admin@university.edu")

	w := doJSON(t, r, http.MethodGet, "/v1/roles", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list roles failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Roles []directory.Role `json:"roles"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode roles: %v", err)
	}
	want := []string{"admin", "faculty", "student", "finance", "administration"}
	if len(resp.Roles) != len(want) {
		t.Fatalf("expected %d roles, got %d", len(want), len(resp.Roles))
	}
	for i, name := range want {
		if resp.Roles[i].Name != name {
			t.Fatalf("expected role %d to be %s, got %s", i, name, resp.Roles[i].Name)
		}
	}
}

func TestCreateUserAndList(t *testing.T) {
	ms := &memStore{}
	r := newTestRouter(t, ms)
	token := login(t, r, "admin@university.edu")

	w := doJSON(t, r, http.MethodPost, "/v1/users", token, gin.H{
		"name": "Jane Doe", "email": "jane@university.edu", "role_id": "r1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}
	var created directory.User
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created user: %v", err)
	}
	if created.Status != directory.StatusActive {
		t.Fatalf("expected defaulted active status, got %s", created.Status)
	}

	w = doJSON(t, r, http.MethodGet, "/v1/users", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}
	var listed struct {
		Users []directory.User `json:"users"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(listed.Users) != 1 || listed.Users[0].ID != created.ID {
		t.Fatalf("expected created user listed, got %+v", listed.Users)
	}
}

func TestCreateUserValidationMakesNoWrite(t *testing.T) {
	ms := &memStore{}
	r := newTestRouter(t, ms)
	token := login(t, r, "admin@university.edu")

	w := doJSON(t, r, http.MethodPost, "/v1/users", token, gin.H{
		"name": "", "email": "a@b.com", "role_id": "r1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", w.Code, w.Body.String())
	}
	if ms.userInserts != 0 {
		t.Fatalf("expected zero writes, got %d", ms.userInserts)
	}
}

func TestDashboardFollowsRole(t *testing.T) {
	r := newTestRouter(t, &memStore{})
	token := login(t, r, "student@university.edu")

	w := doJSON(t, r, http.MethodGet, "/v1/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard failed: %d %s", w.Code, w.Body.String())
	}
	var payload dashboard.Payload
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.View != "student" {
		t.Fatalf("expected student dashboard, got %s", payload.View)
	}
	if payload.Greeting != "Welcome, John Student" {
		t.Fatalf("unexpected greeting %q", payload.Greeting)
	}
}

func TestAdminOverviewAlwaysRenders(t *testing.T) {
	r := newTestRouter(t, &memStore{})
	token := login(t, r, "admin@university.edu")

	w := doJSON(t, r, http.MethodGet, "/v1/admin/overview", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("overview failed: %d", w.Code)
	}
	var ov monitor.Overview
	if err := json.Unmarshal(w.Body.Bytes(), &ov); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if ov.Health != nil || ov.Usage != nil {
		t.Fatalf("expected empty datasets to be null, got %+v", ov)
	}
}
