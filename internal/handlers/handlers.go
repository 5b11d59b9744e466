package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"priceoffers/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Ограничение размера тела, чтобы избежать DoS
const maxBodyBytes = 1 << 20

// Handler оборачивает сервис рынка для HTTP
type Handler struct {
	Svc      MarketService
	log      *logger.Logger
	validate *validator.Validate
}

// NewHandler создает новый Handler
func NewHandler(svc MarketService, log *logger.Logger) *Handler {
	return &Handler{
		Svc:      svc,
		log:      log.With("component", "http"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// decodeBody читает JSON-тело и проверяет теги validate.
// При ошибке ответ уже записан, вызывающему остаётся только выйти.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeDesc(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	defer r.Body.Close()

	if err := json.Unmarshal(body, dst); err != nil {
		writeDesc(w, http.StatusBadRequest, "invalid JSON format")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeDesc(w, http.StatusBadRequest, validationDesc(err))
		return false
	}
	return true
}

func validationDesc(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("field %s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("field %s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// pathUUID разбирает параметр пути chi как uuid.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeDesc(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
