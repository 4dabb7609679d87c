package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/DoyleJ11/user-manager/internal/auth"
	"github.com/DoyleJ11/user-manager/internal/db"
	"github.com/DoyleJ11/user-manager/internal/httpx"
	"github.com/DoyleJ11/user-manager/internal/permissions"
	"github.com/DoyleJ11/user-manager/internal/utils"
	"github.com/DoyleJ11/user-manager/internal/validation"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// Management surface over accounts. Every mutation runs exactly one policy
// check before touching the store: username/email are self-or-admin,
// active/role/delete are admin-only with the actor's own account exempt.

type listEntry struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	Avatar    string    `json:"avatar,omitempty"`
}

func ListHandler(w http.ResponseWriter, r *http.Request) {
	var users []auth.User
	if err := db.DB.Preload("Profile").Order("username asc").Find(&users).Error; err != nil {
		httpx.WriteError(w, err)
		return
	}

	entries := make([]listEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, listEntry{
			UserID:    u.UserID,
			Username:  u.Username,
			Role:      u.Role,
			Active:    u.Active,
			CreatedAt: u.CreatedAt,
			Avatar:    u.Profile.Avatar,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var user auth.User
	err := db.DB.Preload("Profile").First(&user, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.WriteError(w, httpx.ErrNotFound)
		return
	}
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func UpdateUsernameHandler(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	actor := utils.GetActorFromContext(r.Context())

	if !permissions.IsAdmin(actor) && !permissions.CanEditOwn(actor, targetID) {
		httpx.WriteError(w, httpx.ErrForbidden)
		return
	}

	var input struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	username := validation.NormalizeUsername(input.Username)
	if err := validation.ValidateUsername(username); err != nil {
		httpx.ValidationError(w, "username", err.Error())
		return
	}

	var other auth.User
	if err := db.DB.Where("username = ? AND user_id <> ?", username, targetID).
		First(&other).Error; err == nil {
		httpx.WriteError(w, &httpx.FieldError{Field: "username", Message: "Username already exist!"})
		return
	}

	if err := updateUserField(targetID, "username", username); err != nil {
		httpx.WriteError(w, err)
		return
	}

	// The profile display name mirrors the username.
	if err := db.DB.Model(&auth.Profile{}).
		Where("user_id = ?", targetID).
		Update("name", username).Error; err != nil {
		httpx.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Username updated\n"))
}

func UpdateEmailHandler(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	actor := utils.GetActorFromContext(r.Context())

	if !permissions.IsAdmin(actor) && !permissions.CanEditOwn(actor, targetID) {
		httpx.WriteError(w, httpx.ErrForbidden)
		return
	}

	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(input.Email); err != nil {
		httpx.ValidationError(w, "email", err.Error())
		return
	}

	var other auth.User
	if err := db.DB.Where("email = ? AND user_id <> ?", input.Email, targetID).
		First(&other).Error; err == nil {
		httpx.WriteError(w, &httpx.FieldError{Field: "email", Message: "Email already in use!"})
		return
	}

	if err := updateUserField(targetID, "email", input.Email); err != nil {
		httpx.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Email updated\n"))
}

func UpdateActiveHandler(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	actor := utils.GetActorFromContext(r.Context())

	if !permissions.CanManageUser(actor, targetID) {
		httpx.WriteError(w, httpx.ErrForbidden)
		return
	}

	var input struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := updateUserField(targetID, "active", input.Active); err != nil {
		httpx.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("User updated\n"))
}

func UpdateRoleHandler(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	actor := utils.GetActorFromContext(r.Context())

	if !permissions.CanManageUser(actor, targetID) {
		httpx.WriteError(w, httpx.ErrForbidden)
		return
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if !permissions.ValidRole(input.Role) {
		httpx.ValidationError(w, "role", "Invalid role")
		return
	}

	if err := updateUserField(targetID, "role", input.Role); err != nil {
		httpx.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("User updated\n"))
}

func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	actor := utils.GetActorFromContext(r.Context())

	if !permissions.CanManageUser(actor, targetID) {
		httpx.WriteError(w, httpx.ErrForbidden)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var user auth.User
		if err := tx.First(&user, "user_id = ?", targetID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&auth.Session{}, "user_id = ?", targetID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&auth.Profile{}, "user_id = ?", targetID).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.WriteError(w, httpx.ErrNotFound)
		return
	}
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("User deleted\n"))
}

func updateUserField(id, column string, value any) error {
	res := db.DB.Model(&auth.User{}).Where("user_id = ?", id).Update(column, value)
	if res.Error != nil {
		if httpx.IsUniqueViolation(res.Error) {
			return httpx.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
