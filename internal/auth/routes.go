package auth

import (
	"net/http"

	"github.com/DoyleJ11/user-manager/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
		r.Post("/update-password", h.UpdatePassword)
	})

	return r
}
