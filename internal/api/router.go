package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// statusRecorder remembers the status written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logger logs one line per request: [time] status - latency method path
func Logger(l *log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			l.Printf("[%s] %d - %s %s %s",
				start.Format("15:04:05"), rec.status, time.Since(start), r.Method, r.URL.Path)
		})
	}
}

// NewRouter wires the handlers under /api. A non-positive rps disables
// rate limiting.
func NewRouter(h *Handler, rps, burst int) *mux.Router {
	if h.Logger == nil {
		h.Logger = log.Default()
	}

	r := mux.NewRouter()
	r.Use(Logger(h.Logger))

	api := r.PathPrefix("/api").Subrouter()
	if rps > 0 {
		limiter := NewIPRateLimiter(rate.Limit(rps), burst)
		api.Use(limiter.LimitMiddleware)
	}

	api.HandleFunc("/health", Health).Methods("GET")
	api.HandleFunc("/combinations", h.ListCombinations).Methods("GET")
	api.HandleFunc("/analyze", h.Analyze).Methods("POST")

	api.HandleFunc("/models", h.ListModels).Methods("GET")
	api.HandleFunc("/models", h.SaveModel).Methods("POST")
	api.HandleFunc("/models/{id}", h.GetModel).Methods("GET")
	api.HandleFunc("/models/{id}", h.DeleteModel).Methods("DELETE")
	api.HandleFunc("/models/{id}/analysis", h.AnalyzeModel).Methods("GET")

	return r
}
