package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/chainops/wsprobe/internal/counter"
	"github.com/chainops/wsprobe/internal/metrics"
)

// Server exposes the probe counters for Prometheus scraping. It only reads
// the counters; the monitor loop owns all writes.
type Server struct {
	Logger   *zap.Logger
	Counters *counter.Counters
	Endpoint string
}

func NewServer(l *zap.Logger, c *counter.Counters, endpoint string) *Server {
	return &Server{Logger: l, Counters: c, Endpoint: endpoint}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/metrics", s.handleMetrics)

	return r
}

// handleMetrics renders a point-in-time snapshot. A scrape always succeeds
// regardless of how the probing itself is going.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	success, failure := s.Counters.Snapshot()

	body, contentType, err := metrics.Render(s.Endpoint, success, failure)
	if err != nil {
		s.Logger.Error("metrics_render_error", zap.Error(err))
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.Logger.Warn("metrics_write_error", zap.Error(err))
	}
}
