package api

import (
	"github.com/adboard/adboard-api/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

// Handlers groups the resource handlers mounted by Register.
type Handlers struct {
	Ads        *AdHandler
	Categories *CategoryHandler
	Selections *SelectionHandler
	Locations  *LocationHandler
	Users      *UserHandler
	Auth       *AuthHandler
}

// Register mounts the resource routes on r. Every route accepts an optional
// bearer token; the routes that need an authenticated user also require it.
func (h Handlers) Register(r chi.Router, authMW *middleware.AuthMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMW.Optional)

		r.Route("/ad", func(r chi.Router) {
			r.Get("/", h.Ads.List)
			r.Post("/create/", h.Ads.Create)
			r.Put("/{id:[0-9]+}/upload_image/", h.Ads.UploadImage)
			r.Patch("/{id:[0-9]+}/upload_image/", h.Ads.UploadImage)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Authenticate)
				r.Get("/{id:[0-9]+}/", h.Ads.Get)
				r.Put("/{id:[0-9]+}/update/", h.Ads.Update)
				r.Patch("/{id:[0-9]+}/update/", h.Ads.Update)
				r.Delete("/{id:[0-9]+}/delete/", h.Ads.Delete)
			})
		})

		r.Route("/cat", func(r chi.Router) {
			r.Get("/", h.Categories.List)
			r.Get("/{id:[0-9]+}/", h.Categories.Get)
			r.Post("/create/", h.Categories.Create)
			r.Delete("/{id:[0-9]+}/delete/", h.Categories.Delete)
		})

		r.Route("/selection", func(r chi.Router) {
			r.Get("/", h.Selections.List)
			r.Get("/{id:[0-9]+}/", h.Selections.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Authenticate)
				r.Post("/create/", h.Selections.Create)
				r.Put("/{id:[0-9]+}/update/", h.Selections.Update)
				r.Patch("/{id:[0-9]+}/update/", h.Selections.Update)
				r.Delete("/{id:[0-9]+}/delete/", h.Selections.Delete)
			})
		})

		r.Route("/location", func(r chi.Router) {
			r.Get("/", h.Locations.List)
			r.Post("/", h.Locations.Create)
			r.Get("/{id:[0-9]+}/", h.Locations.Get)
			r.Put("/{id:[0-9]+}/", h.Locations.Update)
			r.Patch("/{id:[0-9]+}/", h.Locations.Update)
			r.Delete("/{id:[0-9]+}/", h.Locations.Delete)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/", h.Users.List)
			r.Post("/", h.Users.Create)
			r.Post("/token/", h.Auth.Token)
			r.Post("/token/refresh/", h.Auth.Refresh)
			r.Get("/{id:[0-9]+}/", h.Users.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Authenticate)
				r.Put("/{id:[0-9]+}/", h.Users.Update)
				r.Patch("/{id:[0-9]+}/", h.Users.Update)
				r.Delete("/{id:[0-9]+}/", h.Users.Delete)
			})
		})
	})
}
