package router

import (
	"net/http"

	"github.com/denmor86/ya-orderbot/internal/network/handlers"
	"github.com/denmor86/ya-orderbot/internal/network/middleware"
	"github.com/denmor86/ya-orderbot/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router - служебный HTTP API бота: проверка живости, метрики и управление уведомлениями
type Router struct {
	Identity      *services.Identity
	Notifications handlers.NotificationsToggle
	Probe         handlers.BackendProbe
	Gatherer      prometheus.Gatherer
}

func NewRouter(identity *services.Identity, toggle handlers.NotificationsToggle,
	probe handlers.BackendProbe, gatherer prometheus.Gatherer) *Router {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Router{
		Identity:      identity,
		Notifications: toggle,
		Probe:         probe,
		Gatherer:      gatherer,
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Identity.GetTokenAuth()
	r := chi.NewRouter()
	r.Use(middleware.LogHandle)
	r.Get("/healthz", handlers.HealthHandler(router.Probe))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(router.Gatherer, promhttp.HandlerOpts{}))
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(jwtauth.Authenticator(ja))
			r.Get("/notifications", handlers.GetNotificationsHandler(router.Notifications))
			r.Put("/notifications", handlers.SetNotificationsHandler(router.Notifications))
		})
	})
	return r
}
