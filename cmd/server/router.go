package main

import (
	"net/http"
	"strings"

	"github.com/adboard/adboard-api/internal/api"
	apiMiddleware "github.com/adboard/adboard-api/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// defaultMediaPrefix is used when the configured media URL is not a path on
// this server.
const defaultMediaPrefix = "/media"

// setupRouter builds the HTTP handler with middleware, resource routes,
// health, metrics and media endpoints.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(app.metrics.Middleware)

	imageURL := app.images.URL
	handlers := api.Handlers{
		Ads:        api.NewAdHandler(app.adService, imageURL, app.config.Storage.MaxUploadBytes, app.logger),
		Categories: api.NewCategoryHandler(app.categoryStore, app.logger),
		Selections: api.NewSelectionHandler(app.selectionService, imageURL, app.logger),
		Locations:  api.NewLocationHandler(app.locationStore, app.logger),
		Users:      api.NewUserHandler(app.userService, app.logger),
		Auth:       api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier, app.logger),
	}
	handlers.Register(r, apiMiddleware.NewAuthMiddleware(app.jwtService))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	prefix := mediaPrefix(app.config.Storage.MediaURL)
	files := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(app.images.Dir())))
	r.Method(http.MethodGet, prefix+"/*", files)
	r.Method(http.MethodHead, prefix+"/*", files)

	return r
}

// mediaPrefix returns the route prefix for media files. Absolute media URLs
// point at another host, in which case files are still served locally under
// the default prefix.
func mediaPrefix(mediaURL string) string {
	prefix := strings.TrimRight(mediaURL, "/")
	if !strings.HasPrefix(prefix, "/") || prefix == "" {
		return defaultMediaPrefix
	}
	return prefix
}
