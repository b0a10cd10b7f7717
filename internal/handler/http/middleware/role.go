package middleware

import (
	"net/http"

	"github.com/danny20232023/hris-sub003/internal/domain/auth"
	"github.com/danny20232023/hris-sub003/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireRole gates a route to the listed roles, read from the access
// token's role claim.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if _, ok := allowed[role]; !ok {
				response.Forbidden(w, "Insufficient role for this operation")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
