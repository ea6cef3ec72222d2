package api

import (
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/layby/internal/auth"
)

// TokenParser turns a bearer token into the acting identity.
type TokenParser interface {
	Parse(raw string) (auth.Actor, error)
}

// Authenticate requires an "Authorization: Bearer <token>" header and puts
// the parsed actor into the request context.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, raw, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
				Error(w, r, auth.ErrUnauthenticated)
				return
			}

			actor, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

// Actor returns the authenticated actor, writing a 401 when there is none.
func Actor(w http.ResponseWriter, r *http.Request) (auth.Actor, bool) {
	a, err := auth.FromContext(r.Context())
	if err != nil {
		Error(w, r, err)
		return auth.Actor{}, false
	}

	return a, true
}
