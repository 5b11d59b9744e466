package handlers

import "net/http"

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// SendMessageHandler обрабатывает POST /api/negotiations/{negotiationId}/messages
func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	negotiationID, ok := pathUUID(w, r, "negotiationId")
	if !ok {
		return
	}
	var req sendMessageRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	m, err := h.Svc.SendMessage(r.Context(), callerID, negotiationID, req.Content)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
