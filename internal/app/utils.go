package app

import (
	"net/http"
	"time"

	"rustref/internal/config"
	"rustref/internal/source"

	"go.uber.org/zap"
)

// SelectSource - selects where the redirect configuration comes from:
// database, remote URL, or local file.
func SelectSource(c *config.Config, sugar *zap.SugaredLogger) source.ConfigSource {
	if c.DBConnection != "" {
		sugar.Infof("loading redirects from DB")
		s, err := source.NewSourceDB(c.DBConnection)
		if err == nil {
			if err := s.UpDBMigrations(); err != nil {
				sugar.Errorf("migrations error: %v", err)
			} else {
				return s
			}
		} else {
			sugar.Errorf("error using DB: %v", err)
		}
	}

	if c.RedirectsURL != "" {
		sugar.Infof("loading redirects from %s", c.RedirectsURL)
		return source.NewSourceHTTP(c.RedirectsURL)
	}

	sugar.Infof("loading redirects from %s", c.RedirectsFile)
	return source.NewSourceFile(c.RedirectsFile)
}

// CreateServer creates and configures an HTTP server.
func CreateServer(c *config.Config, handler http.Handler, sugar *zap.SugaredLogger) *http.Server {
	sugar.Infof("Redirector at %s\n", c.Addr)

	return &http.Server{
		Addr:              c.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 20 * time.Second,
	}
}
