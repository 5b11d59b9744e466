package handlers

import (
	"net/http"

	"priceoffers/internal/market"
	"priceoffers/models"
)

type createCompanyRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	Residence         string `json:"residence" validate:"max=100"`
	Specialization    string `json:"specialization" validate:"max=100"`
	Phone             string `json:"phone" validate:"max=30"`
	ExternalCompanyID string `json:"externalCompanyId" validate:"required,max=50"`
}

type updateCompanyRequest struct {
	Name              models.Optional[string] `json:"name"`
	Residence         models.Optional[string] `json:"residence"`
	Specialization    models.Optional[string] `json:"specialization"`
	Phone             models.Optional[string] `json:"phone"`
	ExternalCompanyID models.Optional[string] `json:"externalCompanyId"`
}

func (h *Handler) CreateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	var req createCompanyRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	c, err := h.Svc.CreateCompany(r.Context(), callerID, market.CompanyInput{
		Name:              req.Name,
		Residence:         req.Residence,
		Specialization:    req.Specialization,
		Phone:             req.Phone,
		ExternalCompanyID: req.ExternalCompanyID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) ListCompaniesHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	companies, err := h.Svc.ListCompanies(r.Context(), callerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (h *Handler) UpdateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	companyID, ok := pathUUID(w, r, "companyId")
	if !ok {
		return
	}
	var req updateCompanyRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	c, err := h.Svc.UpdateCompany(r.Context(), callerID, companyID, market.CompanyPatch{
		Name:              req.Name,
		Residence:         req.Residence,
		Specialization:    req.Specialization,
		Phone:             req.Phone,
		ExternalCompanyID: req.ExternalCompanyID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCompanyHandler помечает компанию удалённой
func (h *Handler) DeleteCompanyHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := caller(w, r)
	if !ok {
		return
	}
	companyID, ok := pathUUID(w, r, "companyId")
	if !ok {
		return
	}
	if err := h.Svc.DeleteCompany(r.Context(), callerID, companyID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
