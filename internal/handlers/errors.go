package handlers

import (
	"net/http"

	"priceoffers/internal/market"
)

type descResponse struct {
	Desc string `json:"desc"`
}

func writeDesc(w http.ResponseWriter, status int, desc string) {
	writeJSON(w, status, descResponse{Desc: desc})
}

func statusFor(kind market.Kind) int {
	switch kind {
	case market.KindNotFound:
		return http.StatusNotFound
	case market.KindForbidden:
		return http.StatusForbidden
	case market.KindConflict, market.KindInvalidState:
		return http.StatusConflict
	case market.KindInvalidInput:
		return http.StatusBadRequest
	case market.KindGone:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// writeError отдаёт доменную ошибку клиенту; внутренние ошибки только логируются.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(market.KindOf(err))
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeDesc(w, status, "internal server error")
		return
	}
	writeDesc(w, status, err.Error())
}
