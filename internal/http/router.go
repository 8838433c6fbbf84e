package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/daileit/wedding-planner/internal/http/account"
	"github.com/daileit/wedding-planner/internal/http/authn"
	"github.com/daileit/wedding-planner/internal/http/catalog"
	"github.com/daileit/wedding-planner/internal/http/category"
	"github.com/daileit/wedding-planner/internal/http/item"
	"github.com/daileit/wedding-planner/internal/http/plan"
	"github.com/daileit/wedding-planner/internal/http/respond"
	"github.com/daileit/wedding-planner/internal/metrics"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Timeout        time.Duration
	AllowedOrigins []string
	Tokens         authn.TokenParser
	DB             Pinger
	Registry       *prometheus.Registry
}

func New(
	opts Options,
	accountV1 *account.Handler,
	plansV1 *plan.Handler,
	categoriesV1 *category.Handler,
	itemsV1 *item.Handler,
	vendorsV1 *catalog.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(metrics.NewHTTP(opts.Registry).Middleware)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", healthz(opts.DB))
	router.Handle("/metrics", metrics.Handler(opts.Registry))

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Timeout > 0 {
			r.Use(middleware.Timeout(opts.Timeout))
		}

		r.Use(authn.Authenticate(opts.Tokens))

		r.Route("/auth", accountV1.AuthRoutes)
		r.Route("/me", accountV1.MeRoutes)
		r.Route("/vendors", vendorsV1.Routes)

		r.Group(func(r chi.Router) {
			r.Use(authn.Require)

			r.Get("/dashboard", plansV1.Dashboard)

			r.Route("/plans", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				plansV1.Routes(r)
			})

			r.Route("/categories", categoriesV1.Routes)
			r.Route("/items", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				itemsV1.Routes(r)
			})
		})
	})

	return router
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}

		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
