package http

import (
	"context"
	"net/http"
	"net/url"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

// UserIDKey holds the authenticated user's id in the request context.
const UserIDKey contextKey = "user_id"

// WithUser resolves the access_token cookie into a user id when present.
// It never rejects the request; handlers that need an identity check the
// context themselves or sit behind RequireUser.
func WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := userFromCookie(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), UserIDKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser guards HTML routes: anonymous requests are sent to the
// login page with the original path as the return URL.
func RequireUser(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Value(UserIDKey).(uuid.UUID); !ok {
				target := loginPath + "?next=" + url.QueryEscape(r.URL.Path)
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUserJSON guards API routes with a plain 401.
func RequireUserJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(UserIDKey).(uuid.UUID); !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userFromCookie(r *http.Request) (uuid.UUID, bool) {
	cookie, err := r.Cookie("access_token")
	if err != nil || cookie.Value == "" {
		return uuid.Nil, false
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
