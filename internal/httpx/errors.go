package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// The five error kinds every handler maps its failures onto.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("not authorized")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrStoreFailure    = errors.New("storage failure")
)

// FieldError carries a validation or conflict message tied to a single form
// field, so the client can render it next to the input.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// WriteError maps an error kind to its HTTP response. Unknown errors are
// treated as store failures: logged server-side, generic message to the
// client.
func WriteError(w http.ResponseWriter, err error) {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"field": fieldErr.Field,
			"error": fieldErr.Message,
		})
		return
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "Not authorized", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, "Already exists", http.StatusConflict)
	default:
		log.Printf("[httpx] store failure: %v", err)
		http.Error(w, "Something went wrong, please try again", http.StatusInternalServerError)
	}
}

// ValidationError writes a 400 with a field-scoped message.
func ValidationError(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"field": field,
		"error": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// IsUniqueViolation reports whether err is a duplicate-key failure, either as
// translated by gorm or as the raw postgres error (SQLSTATE 23505). Uniqueness
// pre-checks are advisory only; a race can still surface the violation at
// commit time and must land here.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
