package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rustref/internal/config"
	"rustref/internal/services"

	"github.com/9ssi7/nanoid"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type (
	// structure for storing response details captured by the logging middleware
	responseData struct {
		status int
		size   int
	}

	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// Redirect responses are cacheable by the CDN for a fixed TTL; misses get a
// shorter one so new rules become visible without a purge.
const (
	redirectCacheTTL = 24 * time.Hour
	notFoundCacheTTL = 5 * time.Minute
)

// Controller handles the HTTP surface of the redirect service.
type Controller struct {
	service services.RedirectService
	sugar   *zap.SugaredLogger
	conf    *config.Config
}

// NewController creates and returns a new instance of the Controller.
func NewController(service services.RedirectService, sugar *zap.SugaredLogger, conf *config.Config) *Controller {
	return &Controller{service: service, sugar: sugar, conf: conf}
}

func cacheControl(ttl time.Duration) string {
	return fmt.Sprintf("public, max-age=%d", int(ttl.Seconds()))
}

// RedirectHandler resolves {short} to its destination URL and answers with
// a 302. The trailing path, if any, is appended to the destination so
// ex.rustref.com/primitives.html lands on the matching page.
func (con *Controller) RedirectHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		short := chi.URLParam(req, "short")
		rest := chi.URLParam(req, "*")

		target, err := con.service.Resolve(short)
		if errors.Is(err, services.ErrNotLoaded) {
			http.Error(res, "redirect table not initialized", http.StatusServiceUnavailable)
			return
		}
		if err != nil {
			res.Header().Set("Cache-Control", cacheControl(notFoundCacheTTL))
			http.NotFound(res, req)
			return
		}

		if rest != "" {
			target = target + "/" + rest
		}

		res.Header().Set("Cache-Control", cacheControl(redirectCacheTTL))
		http.Redirect(res, req, target, http.StatusFound)
	}
}

// PingHandler reports whether the service is in serving state.
func (con *Controller) PingHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if !con.service.Loaded() {
			http.Error(res, "redirect table not initialized", http.StatusServiceUnavailable)
			return
		}
		res.WriteHeader(http.StatusOK)
	}
}

// APIRedirects returns every redirect rule as JSON, sorted by short.
func (con *Controller) APIRedirects() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		entries, err := con.service.Entries()
		if err != nil {
			http.Error(res, "redirect table not initialized", http.StatusServiceUnavailable)
			return
		}

		res.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(res).Encode(entries); err != nil {
			con.sugar.Errorf("error encoding redirects response: %v", err)
		}
	}
}

// LoggingMiddleware logs every request through zap, tagging it with the
// client's X-Request-Id or a generated one.
func (con *Controller) LoggingMiddleware(h http.Handler) http.Handler {
	logFn := func(res http.ResponseWriter, req *http.Request) {
		start := time.Now()

		reqID := req.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID, _ = nanoid.New()
		}
		res.Header().Set("X-Request-Id", reqID)

		responseData := &responseData{}
		lw := loggingResponseWriter{
			ResponseWriter: res,
			responseData:   responseData,
		}
		h.ServeHTTP(&lw, req)

		con.sugar.Infoln(
			"uri", req.RequestURI,
			"method", req.Method,
			"status", responseData.status,
			"size", responseData.size,
			"duration", time.Since(start),
			"request_id", reqID,
		)
	}

	return http.HandlerFunc(logFn)
}

// PanicRecoveryMiddleware logs a panic before chi's Recoverer turns it into a 500.
func (con *Controller) PanicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				con.sugar.Errorw("panic while serving request",
					"uri", req.RequestURI, "panic", rec)
				panic(rec)
			}
		}()
		next.ServeHTTP(res, req)
	})
}
