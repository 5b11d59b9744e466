package handlers

import (
	"net/http"

	"priceoffers/internal/market"
	"priceoffers/models"

	"github.com/google/uuid"
)

type createNegotiationRequest struct {
	CompanyID string  `json:"companyId" validate:"required,uuid"`
	Price     float64 `json:"price"`
}

type updateNegotiationRequest struct {
	Status models.Optional[string]  `json:"status"`
	Price  models.Optional[float64] `json:"price"`
}

// CreateNegotiationHandler обрабатывает POST /api/demands/{demandId}/negotiations
func (h *Handler) CreateNegotiationHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	demandID, ok := pathUUID(w, r, "demandId")
	if !ok {
		return
	}
	var req createNegotiationRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		writeDesc(w, http.StatusBadRequest, "invalid companyId")
		return
	}

	n, err := h.Svc.CreateNegotiation(r.Context(), callerID, demandID, companyID, req.Price)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// ListNegotiationsHandler возвращает переговоры, в которых участвует пользователь, с историей сообщений
func (h *Handler) ListNegotiationsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	negotiations, err := h.Svc.ListNegotiations(r.Context(), callerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, negotiations)
}

// UpdateNegotiationHandler меняет либо статус (автор запроса), либо цену (владелец компании).
func (h *Handler) UpdateNegotiationHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	negotiationID, ok := pathUUID(w, r, "negotiationId")
	if !ok {
		return
	}
	var req updateNegotiationRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	n, err := h.Svc.UpdateNegotiation(r.Context(), callerID, negotiationID, market.NegotiationPatch{
		Status: req.Status,
		Price:  req.Price,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}
