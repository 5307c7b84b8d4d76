package middleware

import (
	"net/http"

	"github.com/Nayelic98/backend-spring-01/internal/domain"

	"go.uber.org/zap"
)

// RequireAdmin middleware ensures the principal holds the ADMIN role
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole([]domain.Role{domain.RoleAdmin}, logger)
}

// RequireRole middleware ensures the principal holds at least one of the
// specified roles
func RequireRole(allowedRoles []domain.Role, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				logger.Warn("Principal not found in context")
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if !principal.HasAnyRole(allowedRoles...) {
				logger.Warn("Principal role not authorized",
					zap.Int64("user_id", principal.ID),
					zap.Any("roles", principal.Roles),
					zap.Any("allowed_roles", allowedRoles),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
