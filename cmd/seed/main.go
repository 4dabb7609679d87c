// Command seed loads development fixtures: an admin account plus a couple of
// regular users, each with a paired profile. Idempotent; existing usernames
// are skipped.
package main

import (
	"context"
	"log"
	"os"

	"github.com/DoyleJ11/user-manager/internal/auth"
	"github.com/DoyleJ11/user-manager/internal/db"
	"github.com/joho/godotenv"
)

type fixture struct {
	username string
	email    string
	password string
}

var fixtures = []fixture{
	// First registration bootstraps the admin role.
	{"admin", "admin@example.com", "Admin123!pass"},
	{"maria.k", "maria@example.com", "Maria123!pass"},
	{"j.doe", "jdoe@example.com", "JDoe1234!pass"},
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect(os.Getenv("DATABASE_URL"))
	auth.Init()

	boot := auth.NewBootstrapper(auth.GormRegistrationStore{DB: db.DB})
	ctx := context.Background()

	for _, f := range fixtures {
		var existing auth.User
		if err := db.DB.First(&existing, "username = ?", f.username).Error; err == nil {
			log.Printf("seed: %s already exists, skipping", f.username)
			continue
		}

		hashed, err := auth.HashPassword(f.password)
		if err != nil {
			log.Fatalf("seed: hashing password for %s: %v", f.username, err)
		}

		user, err := boot.Register(ctx, f.username, f.email, hashed)
		if err != nil {
			log.Fatalf("seed: creating %s: %v", f.username, err)
		}

		// Non-first users start locked; unlock fixtures so they can log in.
		if !user.Active {
			if err := db.DB.Model(user).Update("active", true).Error; err != nil {
				log.Fatalf("seed: activating %s: %v", f.username, err)
			}
		}
		log.Printf("seed: created %s (%s)", user.Username, user.Role)
	}
}
