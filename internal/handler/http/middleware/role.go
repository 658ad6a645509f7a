package middleware

import (
	"net/http"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/user"
	"github.com/aarambh-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// ManagementOnly requires the management role carried in the access token.
func ManagementOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrManagementAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok || user.Role(roleStr) != user.RoleManagement {
			response.HandleError(w, user.ErrManagementAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
