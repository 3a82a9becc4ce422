package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

const HeaderName = "x-auth-token"

type ctxKey struct{}

// AdminChecker reports whether a user carries the admin flag.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int) (bool, error)
}

type Middleware struct {
	Tokens *TokenManager
	Admins AdminChecker
}

func NewMiddleware(tokens *TokenManager, admins AdminChecker) *Middleware {
	return &Middleware{Tokens: tokens, Admins: admins}
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ctxKey{}).(int)
	return id, ok && id > 0
}

func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.Tokens.Verify(r.Header.Get(HeaderName))
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := UserID(r.Context())
		isAdmin, err := m.Admins.IsAdmin(r.Context(), userID)
		if err != nil && !errors.Is(err, ErrUnknownUser) {
			log.Printf("ERROR: admin check for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		if !isAdmin {
			writeError(w, http.StatusForbidden, "Access denied. Admin only.")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// ErrUnknownUser lets AdminChecker implementations report a missing user as a plain 403.
var ErrUnknownUser = errors.New("user not found")

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
