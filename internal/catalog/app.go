package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"OnlineShop/internal/auth"
	"OnlineShop/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry
	Auth     *auth.Server

	MetricsEnabled bool
	MetricsToken   string
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if s.Log == nil {
		s.Log = deps.Log
	}

	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, s, deps)
	setupRoutes(r, s, deps)

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, s *Server, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	r.Use(kit.NewMetrics(deps.Registry).Middleware(deps.Service))
	s.metrics = newShopMetrics(deps.Registry, s.Shop)

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func setupRoutes(r *chi.Mux, s *Server, deps HTTPDeps) {
	jwt := deps.Auth.JWT
	staff := auth.RequireRole(jwt, auth.RoleStaff)
	buyer := auth.RequireRole(jwt, auth.RoleCustomer, auth.RoleStaff)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.readyz)

	r.Mount("/auth", deps.Auth.Routes())

	r.Route("/computers", func(cr chi.Router) {
		cr.Get("/", s.listComputers)
		cr.Get("/{id}", s.getComputer)

		cr.With(staff).Post("/", s.addComputer)
		cr.With(staff).Post("/{id}/components", s.addComponent)
		cr.With(staff).Delete("/{id}/components/{variant}", s.removeComponent)
		cr.With(staff).Post("/{id}/peripherals", s.addPeripheral)
		cr.With(staff).Delete("/{id}/peripherals/{variant}", s.removePeripheral)

		cr.With(buyer).Post("/{id}/purchase", s.buyComputer)
	})

	r.Route("/purchases", func(pr chi.Router) {
		pr.Use(buyer)
		pr.Get("/", s.listPurchases)
		pr.Post("/best", s.buyBest)
		pr.Get("/{id}", s.getPurchase)
	})
}
