package middleware

import (
	"net/http"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/auth"
	"github.com/aarambh-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token. Refresh,
// reset and SSE tokens carry a different "type" claim and are not accepted
// here.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			switch {
			case err != nil:
				response.Unauthorized(w, err.Error())
				return
			case token == nil:
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if kind, _ := claims["type"].(string); kind != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
