// Package handler exposes the board endpoints. Every route sits behind the
// session guard applied by the router.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pinboard/internal/audit"
	"pinboard/internal/board"
	"pinboard/internal/platform/metrics"
	"pinboard/pkg/apiresult"
	"pinboard/pkg/requestcontext"
)

// Handler wires the board endpoints to the post store.
type Handler struct {
	posts   board.Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(posts board.Store, auditor *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{posts: posts, auditor: auditor, metrics: m, logger: logger}
}

// Register mounts the board endpoints on the guarded router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/posts", h.HandleList)
	r.Post("/api/posts", h.HandleCreate)
	r.Get("/api/posts/{postID}", h.HandleGet)
}

// HandleList handles GET /api/posts, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	apiresult.WriteSuccess(w, h.posts.List(r.Context()))
}

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HandleCreate handles POST /api/posts.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	principal, ok := requestcontext.PrincipalFrom(ctx)
	if !ok {
		apiresult.WriteFailure(w, apiresult.NotAuthenticated)
		return
	}

	var req createRequest
	// An absent body reads as EOF and is treated as empty, not malformed,
	// so it falls through to the required-field check.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apiresult.WriteFailureMessage(w, apiresult.InvalidInput, "Request body must be valid JSON.")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		h.logger.WarnContext(ctx, "post rejected - missing title or content",
			"request_id", requestID,
			"username", principal.Username,
		)
		apiresult.WriteFailureMessage(w, apiresult.MissingRequiredField, "Both title and content are required.")
		return
	}

	post := h.posts.Create(ctx, board.Post{
		Title:          req.Title,
		Content:        req.Content,
		AuthorID:       principal.ID,
		AuthorUsername: principal.Username,
		CreatedAt:      requestcontext.Now(ctx),
	})

	h.metrics.PostsCreated.Inc()
	h.auditor.Record(ctx, audit.ActionPostCreated, principal.Username)
	h.logger.InfoContext(ctx, "post created",
		"request_id", requestID,
		"username", principal.Username,
		"post_id", post.ID,
	)
	apiresult.WriteSuccessStatus(w, http.StatusCreated, post)
}

// HandleGet handles GET /api/posts/{postID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		apiresult.WriteFailure(w, apiresult.InvalidPostIDFormat)
		return
	}

	post, ok := h.posts.FindByID(r.Context(), id)
	if !ok {
		apiresult.WriteFailure(w, apiresult.PostNotFound)
		return
	}
	apiresult.WriteSuccess(w, post)
}
