package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/DoyleJ11/user-manager/internal/auth"
	"github.com/DoyleJ11/user-manager/internal/config"
	"github.com/DoyleJ11/user-manager/internal/db"
	"github.com/DoyleJ11/user-manager/internal/middleware"
	"github.com/DoyleJ11/user-manager/internal/profile"
	"github.com/DoyleJ11/user-manager/internal/users"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	db.Connect(cfg.DatabaseURL)
	auth.Init()

	sessions := auth.NewService(
		auth.GormSessionStore{DB: db.DB},
		auth.GormUserStore{DB: db.DB},
	)
	handler := &auth.Handler{
		Sessions: sessions,
		Boot:     auth.NewBootstrapper(auth.GormRegistrationStore{DB: db.DB}),
		Secure:   cfg.Production(),
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SessionGate(sessions, cfg.Production()))
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes(handler))
	r.Mount("/users", users.SetupRoutes())
	r.Mount("/profiles", profile.SetupRoutes())

	log.Printf("Server listening on port :%s...", cfg.Port)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
