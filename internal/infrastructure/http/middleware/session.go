package middleware

import (
	"context"
	"net/http"

	"github.com/yuzvak/herbal-storefront/internal/pkg/generator"
)

type ctxKey int

const ctxKeySession ctxKey = iota

const sessionMaxAge = 365 * 24 * 60 * 60

type SessionConfig struct {
	CookieName string
	Secure     bool
}

// NewSessionMiddleware resolves the visitor's session id from its cookie and
// issues a fresh one when the cookie is missing or malformed.
func NewSessionMiddleware(cfg SessionConfig, codeGen *generator.CodeGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(cfg.CookieName); err == nil && generator.IsSessionID(c.Value) {
				id = c.Value
			}

			if id == "" {
				id = codeGen.GenerateSessionID()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   sessionMaxAge,
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySession, id)
}

func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeySession).(string)
	return id
}
