package profile

import (
	"net/http"

	"github.com/DoyleJ11/user-manager/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequireAuth)

	r.Get("/{name}", GetHandler)

	r.Patch("/{name}/avatar", UpdateAvatarHandler)
	r.Patch("/{name}/first-name", UpdateFirstNameHandler)
	r.Patch("/{name}/last-name", UpdateLastNameHandler)
	r.Patch("/{name}/phone", UpdatePhoneHandler)
	r.Patch("/{name}/bio", UpdateBioHandler)

	return r
}
