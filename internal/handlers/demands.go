package handlers

import (
	"net/http"
	"time"

	"priceoffers/internal/market"
	"priceoffers/models"
)

type createDemandRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Budget      float64   `json:"budget"`
	Description string    `json:"description" validate:"max=500"`
	Until       time.Time `json:"until"`
}

type updateDemandRequest struct {
	Name        models.Optional[string]    `json:"name"`
	Budget      models.Optional[float64]   `json:"budget"`
	Description models.Optional[string]    `json:"description"`
	Until       models.Optional[time.Time] `json:"until"`
}

// CreateDemandHandler обрабатывает POST /api/demands
func (h *Handler) CreateDemandHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	var req createDemandRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	d, err := h.Svc.CreateDemand(r.Context(), callerID, market.DemandInput{
		Name:        req.Name,
		Budget:      req.Budget,
		Description: req.Description,
		Until:       req.Until,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ListDemandsHandler возвращает все открытые запросы
func (h *Handler) ListDemandsHandler(w http.ResponseWriter, r *http.Request) {
	demands, err := h.Svc.ListOpenDemands(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, demands)
}

// ListMyDemandsHandler возвращает открытые запросы текущего пользователя
func (h *Handler) ListMyDemandsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	demands, err := h.Svc.ListMyDemands(r.Context(), callerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, demands)
}

// UpdateDemandHandler обрабатывает PATCH /api/demands/{demandId}; отсутствующие поля не меняются.
func (h *Handler) UpdateDemandHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	demandID, ok := pathUUID(w, r, "demandId")
	if !ok {
		return
	}
	var req updateDemandRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	d, err := h.Svc.UpdateDemand(r.Context(), callerID, demandID, market.DemandPatch{
		Name:        req.Name,
		Budget:      req.Budget,
		Description: req.Description,
		Until:       req.Until,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDemandHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	demandID, ok := pathUUID(w, r, "demandId")
	if !ok {
		return
	}
	if err := h.Svc.CloseDemand(r.Context(), callerID, demandID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
