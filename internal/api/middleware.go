package api

import (
	"context"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"ayurhealth-backend/internal/database"
)

type userIdKey struct{}

// UserIdentity extracts the authenticated user id from the X-User-Id header.
// The id is opaque and trusted as validated upstream; a missing header is a
// 401. The user row is created on first sight.
func UserIdentity(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userId := r.Header.Get("X-User-Id")
			if userId == "" {
				http.Error(w, "missing X-User-Id header", http.StatusUnauthorized)
				return
			}

			if _, err := database.EnsureUser(r.Context(), db, userId); err != nil {
				slog.Error("error resolving user", "user_id", userId, "error", err)
				http.Error(w, "error resolving user", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userIdKey{}, userId)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserId(r *http.Request) string {
	id, _ := r.Context().Value(userIdKey{}).(string)
	return id
}
