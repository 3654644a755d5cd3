package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gradportal/internal/auth"
	"gradportal/internal/dashboard"
	"gradportal/internal/directory"
	"gradportal/internal/identity"
	"gradportal/internal/monitor"
	"gradportal/internal/obs"
	"gradportal/internal/portal"
	"gradportal/internal/session"
)

// Handler binds the portal HTTP surface to the session store, directory
// gateway and monitor service.
type Handler struct {
	sessions   *session.Store
	directory  *directory.Service
	monitor    *monitor.Service
	dashboards *dashboard.Registry

	jwtIssuer  string
	jwtKey     string
	sessionTTL time.Duration
	userLimit  int
}

// New creates a handler.
func New(sessions *session.Store, dir *directory.Service, mon *monitor.Service, boards *dashboard.Registry, jwtIssuer, jwtKey string, sessionTTL time.Duration, userLimit int) *Handler {
	return &Handler{
		sessions:   sessions,
		directory:  dir,
		monitor:    mon,
		dashboards: boards,
		jwtIssuer:  jwtIssuer,
		jwtKey:     jwtKey,
		sessionTTL: sessionTTL,
		userLimit:  userLimit,
	}
}

// ---------- Auth ----------

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

// Login authenticates the credential pair and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.sessions.Authenticate(req.Email, req.Password)
	if err != nil {
		obs.LoginFailures.Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, exp, err := auth.Issue(id.ID, string(id.Role), h.jwtIssuer, h.jwtKey, h.sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}

	obs.Logins.Inc()
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp.Unix(),
		"identity":   id,
		"view":       portal.SelectView(id, true),
	})
}

// Me returns the active session identity.
func (h *Handler) Me(c *gin.Context) {
	id, ok := h.sessions.Current()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"identity": id})
}

type switchRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SwitchRole overwrites the session's role. No permission check: this is
// the demo role selector, not an authorization boundary.
func (h *Handler) SwitchRole(c *gin.Context) {
	var req switchRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.sessions.SwitchRole(role)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	obs.RoleSwitches.Inc()
	c.JSON(http.StatusOK, gin.H{
		"identity": id,
		"view":     portal.SelectView(id, true),
	})
}

// Logout drops the session. Always succeeds.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Clear()
	c.Status(http.StatusNoContent)
}

// ---------- Views ----------

// View reports which screen the client should render for the current
// session state.
func (h *Handler) View(c *gin.Context) {
	id, ok := h.sessions.Current()
	c.JSON(http.StatusOK, gin.H{"view": portal.SelectView(id, ok)})
}

// Dashboard returns the presenter payload for the current view.
func (h *Handler) Dashboard(c *gin.Context) {
	id, ok := h.sessions.Current()
	view := portal.SelectView(id, ok)

	payload, found, err := h.dashboards.Present(c.Request.Context(), view, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"view": view})
		return
	}
	c.JSON(http.StatusOK, payload)
}

// ---------- Directory ----------

// ListRoles returns all roles, seeding the defaults on a fresh store.
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.directory.ListRoles(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// ListUsers returns directory entries with their role names.
func (h *Handler) ListUsers(c *gin.Context) {
	limit := h.userLimit
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	users, err := h.directory.ListUsers(c.Request.Context(), limit)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateUser validates and persists a new directory entry.
func (h *Handler) CreateUser(c *gin.Context) {
	var req directory.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.directory.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// ---------- Admin ----------

// AdminOverview returns the metric fan-out. Missing datasets come back
// null; the endpoint itself never fails.
func (h *Handler) AdminOverview(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.Overview(c.Request.Context()))
}

// storeError maps gateway errors onto HTTP statuses.
func (h *Handler) storeError(c *gin.Context, err error) {
	var verr *directory.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "missing": verr.Missing})
		return
	}
	var werr *directory.WriteError
	if errors.As(err, &werr) {
		log.Printf("store write failed: %v", werr)
		c.JSON(http.StatusBadGateway, gin.H{"error": werr.Error()})
		return
	}
	log.Printf("store read failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
