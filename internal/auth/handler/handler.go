// Package handler exposes the authentication endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pinboard/internal/auth"
	"pinboard/internal/identity"
	"pinboard/pkg/apiresult"
	"pinboard/pkg/requestcontext"
)

// Handler wires the auth endpoints to the auth service.
type Handler struct {
	service *auth.Service
	logger  *slog.Logger
}

func New(service *auth.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the auth endpoints. Login and logout stay outside the
// session guard: login has no session yet, and logout must be able to report
// ALREADY_LOGGED_OUT for a token the guard would reject.
func (h *Handler) Register(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Post("/api/auth/login", h.HandleLogin)
	r.Post("/api/auth/logout", h.HandleLogout)
	r.Group(func(gr chi.Router) {
		gr.Use(guard)
		gr.Get("/api/auth/me", h.HandleMe)
		gr.Get("/api/auth/sessions", h.HandleSessions)
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  identity.Public `json:"user"`
	Token string          `json:"token"`
}

// HandleLogin handles POST /api/auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req loginRequest
	// An absent body reads as EOF and is treated as empty, not malformed,
	// so it falls through to the required-field check.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apiresult.WriteFailureMessage(w, apiresult.InvalidInput, "Request body must be valid JSON.")
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		h.logger.WarnContext(ctx, "login rejected - missing credentials",
			"request_id", requestID,
			"ip", requestcontext.ClientIP(ctx),
		)
		apiresult.WriteFailureMessage(w, apiresult.MissingRequiredField, "Both username and password are required.")
		return
	}

	result, ok, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "session issuance failed",
			"request_id", requestID,
			"username", req.Username,
			"error", err,
		)
		apiresult.WriteFailure(w, apiresult.TokenGenerationError)
		return
	}
	if !ok {
		// Identical response for a wrong username and a wrong password.
		h.logger.WarnContext(ctx, "login rejected - invalid credentials",
			"request_id", requestID,
			"username", req.Username,
			"ip", requestcontext.ClientIP(ctx),
		)
		apiresult.WriteFailure(w, apiresult.LoginFailed)
		return
	}

	h.logger.InfoContext(ctx, "user logged in",
		"request_id", requestID,
		"username", result.User.Username,
		"ip", requestcontext.ClientIP(ctx),
	)
	apiresult.WriteSuccess(w, loginResponse{User: result.User.Public(), Token: result.Token})
}

type logoutResponse struct {
	Message string `json:"message"`
}

// HandleLogout handles POST /api/auth/logout. It extracts the bearer token
// itself so a second logout of the same token reaches the registry and comes
// back as ALREADY_LOGGED_OUT rather than a gate rejection.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		apiresult.WriteFailure(w, apiresult.NotAuthenticated)
		return
	}

	if !h.service.Logout(ctx, token) {
		h.logger.WarnContext(ctx, "logout without active session", "request_id", requestID)
		apiresult.WriteFailure(w, apiresult.AlreadyLoggedOut)
		return
	}

	h.logger.InfoContext(ctx, "user logged out", "request_id", requestID)
	apiresult.WriteSuccess(w, logoutResponse{Message: "Logged out."})
}

type meResponse struct {
	User identity.Public `json:"user"`
}

// HandleMe handles GET /api/auth/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := requestcontext.PrincipalFrom(r.Context())
	if !ok {
		apiresult.WriteFailure(w, apiresult.NotAuthenticated)
		return
	}
	apiresult.WriteSuccess(w, meResponse{User: identity.Public{ID: p.ID, Username: p.Username}})
}

type sessionsResponse struct {
	Sessions []auth.SessionSummary `json:"sessions"`
}

// HandleSessions handles GET /api/auth/sessions, listing the caller's active
// sessions.
func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := requestcontext.PrincipalFrom(ctx)
	if !ok {
		apiresult.WriteFailure(w, apiresult.NotAuthenticated)
		return
	}
	summaries := h.service.Sessions(ctx, p.ID, requestcontext.SessionToken(ctx))
	apiresult.WriteSuccess(w, sessionsResponse{Sessions: summaries})
}
