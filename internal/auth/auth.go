package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Resolver is the single owner of the admin question. Handlers never decide
// admin status themselves.
type Resolver interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// PGResolver resolves roles from the users table kept in sync with the
// external identity provider.
type PGResolver struct {
	DB *sqlx.DB
}

func NewPGResolver(db *sqlx.DB) *PGResolver {
	return &PGResolver{DB: db}
}

func (r *PGResolver) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var role string
	err := r.DB.GetContext(ctx, &role, `SELECT role FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role == "admin", nil
}

// AdminOnly guards a route with the resolver. The identity provider sits in
// front of this service; it is trusted to have authenticated X-User-ID.
func AdminOnly(resolver Resolver, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				http.Error(w, `{"error":"missing user authentication"}`, http.StatusUnauthorized)
				return
			}

			isAdmin, err := resolver.IsAdmin(r.Context(), userID)
			if err != nil {
				log.Error("role resolution failed", zap.String("user_id", userID), zap.Error(err))
				http.Error(w, `{"error":"failed to resolve role"}`, http.StatusInternalServerError)
				return
			}
			if !isAdmin {
				http.Error(w, `{"error":"admin access required"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
