package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/google/uuid"
)

const (
	SessionHeader    = "X-Session-ID"
	SessionCookie    = "rawline_session"
	AdminTokenHeader = "X-Admin-Token"

	sessionCookieMaxAge = 72 * time.Hour
)

type sessionKey struct{}

// sessionIDFromCtx возвращает идентификатор сессии, выставленный withSession.
func sessionIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// withSession определяет сессию по заголовку или cookie. Если сессии нет, выдаёт новый uuid
// и возвращает его в заголовке и cookie.
func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
		if sessionID == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				sessionID = strings.TrimSpace(c.Value)
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(sessionCookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(SessionHeader, sessionID)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sessionID)))
	})
}

// adminToken достаёт токен из Authorization: Bearer или X-Admin-Token.
func adminToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(AdminTokenHeader))
}

// requireAdmin пропускает запрос только с действующим токеном админки.
func requireAdmin(auth usecase.AuthUC, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.Authorize(r.Context(), adminToken(r)); err != nil {
				log.Warnf("%d %s %s: %v", http.StatusUnauthorized, r.Method, r.URL.Path, err)
				WriteError(w, e.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
