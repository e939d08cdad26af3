package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codecourse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codecourse_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// status: success, format_error, upstream_error
	QuizGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codecourse_quiz_generations_total",
			Help: "Quiz generation attempts by outcome",
		},
		[]string{"status"},
	)

	QuizScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codecourse_quiz_score_percent",
			Help:    "Distribution of graded quiz scores",
			Buckets: []float64{10, 25, 50, 70, 90, 100},
		},
	)

	ActiveQuizSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codecourse_quiz_sessions_active",
			Help: "Quiz sessions currently held in memory",
		},
	)

	QuizSessionsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codecourse_quiz_sessions_evicted_total",
			Help: "Quiz sessions removed by the expiry sweep",
		},
	)

	GeminiDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codecourse_gemini_request_duration_seconds",
			Help:    "Latency of content generation calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		},
		[]string{"status"},
	)

	// status: success, not_found, failure
	Checkouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codecourse_checkouts_total",
			Help: "Checkout attempts by outcome",
		},
		[]string{"status"},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency labelled by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
