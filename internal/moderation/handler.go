// HTTP handlers for the moderation service.
//
// All routes expect x-actor-* headers forwarded by the Gateway after
// authentication; the service itself never resolves sessions.
//
// Routes:
//
//	POST /moderation/{kind}/{id}/transition → apply a status transition
//	GET  /moderation/{kind}/targets?from=S  → legal target statuses
//	GET  /moderation/{kind}/explain         → denial reason for a role/edge
//	POST /jobs/{id}/resubmit                → employer edit reset to pending
package moderation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Handler exposes the Service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts all moderation routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/moderation/", h.handleModeration)
	mux.HandleFunc("/jobs/", h.handleJobAction)
}

// ─── Route dispatch ───────────────────────────────────────────────────────────

// handleModeration dispatches /moderation/{kind}/... paths.
func (h *Handler) handleModeration(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}

	kind, err := ParseEntityKind(parts[1])
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	switch {
	case len(parts) == 3 && parts[2] == "targets" && r.Method == http.MethodGet:
		h.listLegalTargets(w, r, kind)
	case len(parts) == 3 && parts[2] == "explain" && r.Method == http.MethodGet:
		h.explainDenial(w, r, kind)
	case len(parts) == 4 && parts[3] == "transition" && r.Method == http.MethodPost:
		h.requestTransition(w, r, kind, parts[2])
	default:
		jsonError(w, "invalid path", http.StatusNotFound)
	}
}

// handleJobAction dispatches POST /jobs/{id}/resubmit.
func (h *Handler) handleJobAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] != "resubmit" {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	h.resubmitJob(w, r, parts[1])
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) requestTransition(w http.ResponseWriter, r *http.Request, kind EntityKind, id string) {
	actor, ok := actorFromHeaders(w, r)
	if !ok {
		return
	}

	var body struct {
		ToStatus string `json:"toStatus"`
		Reason   string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ToStatus == "" {
		jsonError(w, "body must contain toStatus", http.StatusBadRequest)
		return
	}

	to, err := ParseStatus(kind, body.ToStatus)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.RequestTransition(r.Context(), kind, id, actor, to, body.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonOK(w, transitionResponse(res))
}

func (h *Handler) resubmitJob(w http.ResponseWriter, r *http.Request, jobID string) {
	actor, ok := actorFromHeaders(w, r)
	if !ok {
		return
	}
	res, err := h.svc.ResubmitJob(r.Context(), jobID, actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonOK(w, transitionResponse(res))
}

func (h *Handler) listLegalTargets(w http.ResponseWriter, r *http.Request, kind EntityKind) {
	from, err := ParseStatus(kind, r.URL.Query().Get("from"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	targets := LegalTargets(kind, from)
	if targets == nil {
		targets = []Status{}
	}
	jsonOK(w, map[string]any{"from": from, "targets": targets})
}

func (h *Handler) explainDenial(w http.ResponseWriter, r *http.Request, kind EntityKind) {
	q := r.URL.Query()
	role, err := ParseRole(q.Get("role"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	from, err := ParseStatus(kind, q.Get("from"))
	if err != nil {
		jsonError(w, fmt.Sprintf("from: %v", err), http.StatusBadRequest)
		return
	}
	to, err := ParseStatus(kind, q.Get("to"))
	if err != nil {
		jsonError(w, fmt.Sprintf("to: %v", err), http.StatusBadRequest)
		return
	}
	jsonOK(w, map[string]any{"reason": ExplainDenial(kind, role, from, to)})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// actorFromHeaders builds the explicit Actor from gateway headers. A
// missing identity or role is rejected before any domain logic runs.
func actorFromHeaders(w http.ResponseWriter, r *http.Request) (Actor, bool) {
	id := r.Header.Get("x-actor-id")
	if id == "" {
		jsonError(w, "missing x-actor-id header", http.StatusUnauthorized)
		return Actor{}, false
	}
	role, err := ParseRole(r.Header.Get("x-actor-role"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnauthorized)
		return Actor{}, false
	}
	return Actor{
		ID:             id,
		Role:           role,
		CompanyID:      r.Header.Get("x-actor-company"),
		IsCompanyAdmin: r.Header.Get("x-actor-company-admin") == "true",
	}, true
}

// transitionResponse is the JSON shape returned for a committed
// transition.
func transitionResponse(res *TransitionResult) map[string]any {
	return map[string]any{
		"id":               res.NewSnapshot.ID,
		"status":           res.NewSnapshot.Status,
		"moderationReason": res.NewSnapshot.ModerationReason,
		"updatedAt":        res.NewSnapshot.UpdatedAt,
		"affirmed":         res.Affirmed,
		"cascades":         res.Cascades,
	}
}

// writeDomainError maps domain errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var it *InvalidTransitionError
	var pd *PermissionDeniedError
	switch {
	case errors.As(err, &it):
		jsonError(w, it.Error(), http.StatusConflict)
	case errors.As(err, &pd):
		jsonError(w, pd.Reason, http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrStaleSnapshot):
		// Only reached when the automatic retry also hit a conflict.
		jsonError(w, "entity was modified concurrently, please retry", http.StatusConflict)
	default:
		jsonError(w, "internal server error", http.StatusInternalServerError)
	}
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
