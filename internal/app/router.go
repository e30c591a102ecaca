package app

import (
	"time"

	"rustref/internal/config"
	"rustref/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// InitMiddleware - initializes middleware handlers for the router.
func InitMiddleware(r *chi.Mux, conf *config.Config, ctrl *handlers.Controller) {
	r.Use(ctrl.PanicRecoveryMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(conf.Timeout) * time.Second))
	r.Use(ctrl.LoggingMiddleware)
	r.Mount("/debug", middleware.Profiler())
}

// Routing - registers routes for the redirect controller.
// Registered routes:
//   - GET "/": renders the index page listing every redirect through ctrl.IndexHandler().
//   - GET "/redirect/{short}": 302 to the destination URL through ctrl.RedirectHandler().
//   - GET "/redirect/{short}/*": 302 preserving the trailing path.
//   - GET "/ping": serving-state check through ctrl.PingHandler().
//   - GET "/api/redirects": JSON list of redirect rules through ctrl.APIRedirects().
//   - POST "/github/webhook": signed reload trigger through ctrl.WebhookHandler().
func Routing(r *chi.Mux, ctrl *handlers.Controller) {
	r.Get("/", ctrl.IndexHandler())
	r.Get("/redirect/{short}", ctrl.RedirectHandler())
	r.Get("/redirect/{short}/*", ctrl.RedirectHandler())
	r.Get("/ping", ctrl.PingHandler())
	r.Get("/api/redirects", ctrl.APIRedirects())
	r.Post("/github/webhook", ctrl.WebhookHandler())
}
