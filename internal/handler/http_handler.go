package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
	"github.com/pesio-ai/be-hr-leave/internal/errors"
	"github.com/pesio-ai/be-hr-leave/internal/logger"
	"github.com/pesio-ai/be-hr-leave/internal/middleware"
	"github.com/pesio-ai/be-hr-leave/internal/service"
)

// HTTPHandler handles HTTP requests
type HTTPHandler struct {
	service  *service.LeaveService
	validate *validator.Validate
	log      *logger.Logger
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(service *service.LeaveService, log *logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Routes mounts the leave API on a chi router.
func (h *HTTPHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Actor)

	r.Get("/users", h.ListUsers)
	r.Post("/users", h.RegisterUser)

	r.Route("/leaves", func(r chi.Router) {
		r.Get("/", h.SearchLeaves)
		r.Post("/", h.SubmitLeave)
		r.Get("/{id}", h.GetLeave)
		r.Get("/{id}/actions", h.AvailableActions)
		r.Post("/{id}/steps/{role}/{decision}", h.ActOnStep)
	})

	r.Get("/me/leaves", h.MyLeaves)
	r.Get("/supervisor/leaves", h.SupervisorLeaves)
	r.Get("/mentor/leaves", h.MentorLeaves)
	r.Get("/notifications", h.PendingCount)
	r.Get("/stats", h.Stats)
	return r
}

// RegisterUser handles directory registration
func (h *HTTPHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterUserRequest
	if !h.decode(w, r, &req) {
		return
	}
	user, err := h.service.RegisterUser(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// ListUsers returns the directory for administrators
func (h *HTTPHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users, "total": len(users)})
}

// SubmitLeave handles leave submissions by the acting user
func (h *HTTPHandler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitLeaveRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Requester = middleware.GetActor(r.Context())

	result, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// SearchLeaves handles the administrator list with optional ?q= keyword
func (h *HTTPHandler) SearchLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.service.Search(r.Context(), middleware.GetActor(r.Context()), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leaves": leaves,
		"total":  len(leaves),
	})
}

// GetLeave returns one request with its aggregate status
func (h *HTTPHandler) GetLeave(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// AvailableActions lists what the acting user may do on a request
func (h *HTTPHandler) AvailableActions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.service.AvailableActions(r.Context(), chi.URLParam(r, "id"), middleware.GetActor(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"actions": actions})
}

// ActOnStep handles approve / reject on a single step
func (h *HTTPHandler) ActOnStep(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Note string `json:"note" validate:"max=1024"`
	}
	// the body is optional
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, errors.InvalidInput("body", "invalid request body"))
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		h.writeError(w, r, errors.InvalidInput("note", err.Error()))
		return
	}

	view, err := h.service.Act(r.Context(), &service.ActRequest{
		LeaveID:  chi.URLParam(r, "id"),
		Role:     approval.Role(chi.URLParam(r, "role")),
		Decision: approval.Decision(chi.URLParam(r, "decision")),
		Actor:    middleware.GetActor(r.Context()),
		Note:     body.Note,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// MyLeaves returns the acting user's history
func (h *HTTPHandler) MyLeaves(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if actor == "" {
		h.writeError(w, r, errors.New(errors.ErrCodeUnauthorized, "acting user is required"))
		return
	}
	history, err := h.service.ListForRequester(r.Context(), actor)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// SupervisorLeaves returns the supervisor's department queue
func (h *HTTPHandler) SupervisorLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.service.ListForSupervisor(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leaves": leaves})
}

// MentorLeaves returns the mentor's intern queue
func (h *HTTPHandler) MentorLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.service.ListForMentor(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leaves": leaves})
}

// PendingCount returns the notification counter for ?role=
func (h *HTTPHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	role := approval.Role(r.URL.Query().Get("role"))
	count, err := h.service.PendingCount(r.Context(), middleware.GetActor(r.Context()), role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"role": role, "pending": count})
}

// Stats returns administrator statistics
func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, r, errors.InvalidInput("body", "invalid request body"))
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		field := ""
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field = verrs[0].Field()
		}
		h.writeError(w, r, errors.InvalidInput(field, err.Error()))
		return false
	}
	return true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	body := map[string]interface{}{
		"code":    errors.CodeOf(err),
		"message": err.Error(),
	}
	var appErr *errors.Error
	if errors.As(err, &appErr) && appErr.Field != "" {
		body["field"] = appErr.Field
	}
	var gatingErr *approval.GatingError
	if errors.As(err, &gatingErr) {
		body["precondition"] = gatingErr.Precondition
	}

	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
