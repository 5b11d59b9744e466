package handlers

import (
	"net/http"

	"priceoffers/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router собирает маршруты API.
func Router(h *Handler, auth *Authenticator, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			// пользователь и уведомления
			r.Get("/user", h.ProfileHandler)
			r.Patch("/user", h.UpdateProfileHandler)
			r.Get("/user/notifications", h.ListNotificationsHandler)
			r.Delete("/user/notifications/{notificationId}", h.DeleteNotificationHandler)

			// компании
			r.Post("/companies", h.CreateCompanyHandler)
			r.Get("/companies", h.ListCompaniesHandler)
			r.Patch("/companies/{companyId}", h.UpdateCompanyHandler)
			r.Delete("/companies/{companyId}", h.DeleteCompanyHandler)

			// запросы
			r.Post("/demands", h.CreateDemandHandler)
			r.Get("/demands", h.ListDemandsHandler)
			r.Get("/demands/my", h.ListMyDemandsHandler)
			r.Patch("/demands/{demandId}", h.UpdateDemandHandler)
			r.Delete("/demands/{demandId}", h.DeleteDemandHandler)
			r.Post("/demands/{demandId}/negotiations", h.CreateNegotiationHandler)

			// переговоры
			r.Get("/negotiations", h.ListNegotiationsHandler)
			r.Patch("/negotiations/{negotiationId}", h.UpdateNegotiationHandler)
			r.Post("/negotiations/{negotiationId}/messages", h.SendMessageHandler)
		})
	})
	return r
}
