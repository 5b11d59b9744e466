package handlers

import (
	"net/http"

	"priceoffers/internal/market"
	"priceoffers/models"
)

type updateProfileRequest struct {
	Name models.Optional[string] `json:"name"`
}

// ProfileHandler обрабатывает GET /api/user
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	u, err := h.Svc.Profile(r.Context(), callerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// UpdateProfileHandler обрабатывает PATCH /api/user
func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	u, err := h.Svc.UpdateProfile(r.Context(), callerID, market.ProfilePatch{Name: req.Name})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	notifications, err := h.Svc.ListNotifications(r.Context(), callerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *Handler) DeleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	notificationID, ok := pathUUID(w, r, "notificationId")
	if !ok {
		return
	}
	if err := h.Svc.DeleteNotification(r.Context(), callerID, notificationID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
