package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DoyleJ11/user-manager/internal/db"
	"github.com/DoyleJ11/user-manager/internal/httpx"
	"github.com/DoyleJ11/user-manager/internal/middleware"
	"github.com/DoyleJ11/user-manager/internal/utils"
	"github.com/DoyleJ11/user-manager/internal/validation"
	"gorm.io/gorm"
)

// Handler carries the auth dependencies; routes.go wires it up.
type Handler struct {
	Sessions *Service
	Boot     *Bootstrapper
	Secure   bool
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
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
	if err := validation.ValidateEmail(input.Email); err != nil {
		httpx.ValidationError(w, "email", err.Error())
		return
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		httpx.ValidationError(w, "password", err.Error())
		return
	}
	if input.PasswordConfirm != "" && input.PasswordConfirm != input.Password {
		httpx.ValidationError(w, "password_confirm", "Passwords do not match")
		return
	}

	// Advisory uniqueness checks. The unique indexes still catch races at
	// commit time; this just gives the nicer field-level message.
	var existing User
	if err := db.DB.First(&existing, "username = ?", username).Error; err == nil {
		httpx.WriteError(w, &httpx.FieldError{Field: "username", Message: "Username already exist!"})
		return
	}
	if err := db.DB.First(&existing, "email = ?", input.Email).Error; err == nil {
		httpx.WriteError(w, &httpx.FieldError{Field: "email", Message: "Email already in use!"})
		return
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	user, err := h.Boot.Register(r.Context(), username, input.Email, hashed)
	if errors.Is(err, httpx.ErrConflict) {
		httpx.WriteError(w, &httpx.FieldError{Field: "username", Message: "Username already exist!"})
		return
	}
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"user_id":  user.UserID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	username := validation.NormalizeUsername(input.Username)

	var user User
	err := db.DB.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.ValidationError(w, "username", "User does not exist!")
		return
	}
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if !user.Active {
		httpx.ValidationError(w, "username",
			"Your account has not yet been unlocked! Please contact your administrator.")
		return
	}

	ok, err := VerifyPassword(user.HashedPassword, input.Password)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if !ok {
		httpx.ValidationError(w, "password", "Wrong password!")
		return
	}

	token, session, err := h.Sessions.Issue(r.Context(), user.UserID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token, session.ExpiresAt, h.Secure)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"user_id":  user.UserID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session := utils.GetSessionFromContext(r.Context())
	if session == nil {
		httpx.WriteError(w, httpx.ErrUnauthenticated)
		return
	}

	if err := h.Sessions.Invalidate(r.Context(), session.SessionID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	middleware.DeleteSessionCookie(w, h.Secure)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Logout successful\n"))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())
	if actor == nil {
		httpx.WriteError(w, httpx.ErrUnauthenticated)
		return
	}

	var user User
	err := db.DB.Preload("Profile").First(&user, "user_id = ?", actor.ID).Error
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

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())
	if actor == nil {
		httpx.WriteError(w, httpx.ErrUnauthenticated)
		return
	}

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Current and new password are required", http.StatusBadRequest)
		return
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", actor.ID).Error; err != nil {
		httpx.WriteError(w, httpx.ErrNotFound)
		return
	}

	ok, err := VerifyPassword(user.HashedPassword, input.CurrentPassword)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if !ok {
		httpx.ValidationError(w, "current_password", "Invalid current password")
		return
	}

	if err := validation.ValidatePassword(input.NewPassword); err != nil {
		httpx.ValidationError(w, "new_password", err.Error())
		return
	}

	hashed, err := HashPassword(input.NewPassword)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := db.DB.Model(&user).Update("hashed_password", hashed).Error; err != nil {
		httpx.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Password updated\n"))
}
