package main

import (
	"context"
	"log"

	"rustref/internal/app"
	"rustref/internal/config"
	"rustref/internal/handlers"
	"rustref/internal/logger"
	"rustref/internal/services"

	"github.com/go-chi/chi/v5"
)

func main() {
	c := config.NewConfig()
	if err := config.Init(c); err != nil {
		log.Fatalf("Failed to init config: %v", err)
	}

	sugar, err := logger.NewLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	src := app.SelectSource(c, sugar)
	service := services.NewRedirectService(src, sugar)

	// the initial load is fail-closed: without a valid table the service
	// must not start serving redirects
	if err := service.Reload(context.Background()); err != nil {
		sugar.Fatalf("initial redirects load failed: %v", err)
	}

	controller := handlers.NewController(service, sugar, c)

	r := chi.NewRouter()
	app.InitMiddleware(r, c, controller)
	app.Routing(r, controller)

	server := app.CreateServer(c, r, sugar)
	if err := server.ListenAndServe(); err != nil {
		sugar.Fatalf("Failed to start server: %v", err)
	}
}
