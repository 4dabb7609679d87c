package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DoyleJ11/user-manager/internal/auth"
	"github.com/DoyleJ11/user-manager/internal/db"
	"github.com/DoyleJ11/user-manager/internal/httpx"
	"github.com/DoyleJ11/user-manager/internal/permissions"
	"github.com/DoyleJ11/user-manager/internal/utils"
	"github.com/DoyleJ11/user-manager/internal/validation"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// Profiles are viewable by their owner or an admin; field edits are owner-only.

func GetHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var profile auth.Profile
	err := db.DB.First(&profile, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.WriteError(w, httpx.ErrNotFound)
		return
	}
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	if !permissions.IsAdmin(actor) && !permissions.CanEditOwn(actor, profile.UserID) {
		httpx.WriteError(w, httpx.ErrForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func UpdateAvatarHandler(w http.ResponseWriter, r *http.Request) {
	updateField(w, r, "avatar", func(input map[string]string) (string, error) {
		avatar := input["avatar"]
		return avatar, validation.ValidateAvatar(avatar)
	})
}

func UpdateFirstNameHandler(w http.ResponseWriter, r *http.Request) {
	updateField(w, r, "first_name", func(input map[string]string) (string, error) {
		return input["first_name"], nil
	})
}

func UpdateLastNameHandler(w http.ResponseWriter, r *http.Request) {
	updateField(w, r, "last_name", func(input map[string]string) (string, error) {
		return input["last_name"], nil
	})
}

func UpdatePhoneHandler(w http.ResponseWriter, r *http.Request) {
	updateField(w, r, "phone", func(input map[string]string) (string, error) {
		phone := input["phone"]
		return phone, validation.ValidatePhone(phone)
	})
}

func UpdateBioHandler(w http.ResponseWriter, r *http.Request) {
	updateField(w, r, "bio", func(input map[string]string) (string, error) {
		return input["bio"], nil
	})
}

// updateField loads the profile, checks the owner-only policy, validates and
// writes one column.
func updateField(w http.ResponseWriter, r *http.Request, column string, extract func(map[string]string) (string, error)) {
	name := chi.URLParam(r, "name")

	var profile auth.Profile
	err := db.DB.First(&profile, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.WriteError(w, httpx.ErrNotFound)
		return
	}
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	if !permissions.CanEditOwn(actor, profile.UserID) {
		httpx.WriteError(w, httpx.ErrForbidden)
		return
	}

	var input map[string]string
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	value, err := extract(input)
	if err != nil {
		httpx.ValidationError(w, column, err.Error())
		return
	}

	if err := db.DB.Model(&profile).Update(column, value).Error; err != nil {
		httpx.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Profile updated\n"))
}
