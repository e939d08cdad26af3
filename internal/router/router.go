package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/codecourse-api/internal/aiquiz"
	"github.com/saulo-duarte/codecourse-api/internal/auth"
	"github.com/saulo-duarte/codecourse-api/internal/config"
	"github.com/saulo-duarte/codecourse-api/internal/course"
	"github.com/saulo-duarte/codecourse-api/internal/metrics"
	"github.com/saulo-duarte/codecourse-api/internal/middlewares"
	"github.com/saulo-duarte/codecourse-api/internal/order"
	"github.com/saulo-duarte/codecourse-api/internal/user"
)

type RouterConfig struct {
	UserHandler   *user.Handler
	CourseHandler *course.Handler
	OrderHandler  *order.Handler
	AIQuizHandler *aiquiz.Handler
	UserChecker   auth.UserChecker
	CorsOrigins   []string
	Ready         func() error
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.CorsOrigins))
	r.Use(metrics.Middleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"message": "Welcome to the home page!"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil {
			if err := cfg.Ready(); err != nil {
				config.WithContext(r.Context()).WithError(err).Warn("Readiness check failed")
				config.Error(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Mount("/auth", user.Routes(cfg.UserHandler))
	r.Mount("/gemini", aiquiz.Routes(cfg.AIQuizHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.UserChecker))

		r.Mount("/courses", course.Routes(cfg.CourseHandler))
		r.Mount("/orders", order.Routes(cfg.OrderHandler))
	})
	return r
}
