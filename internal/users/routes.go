package users

import (
	"net/http"

	"github.com/DoyleJ11/user-manager/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequireAuth)

	r.Get("/", ListHandler)
	r.Get("/{id}", GetHandler)

	r.Patch("/{id}/username", UpdateUsernameHandler)
	r.Patch("/{id}/email", UpdateEmailHandler)
	r.Patch("/{id}/active", UpdateActiveHandler)
	r.Patch("/{id}/role", UpdateRoleHandler)
	r.Delete("/{id}", DeleteHandler)

	return r
}
