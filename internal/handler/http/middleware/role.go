package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/rbac"
	"github.com/go-chi/chi/v5"
)

// RequireRole requires the caller to hold exactly role.
func RequireRole(role user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if p.Role != role {
				if role == user.RoleAdmin {
					response.HandleError(w, user.ErrAdminPrivilegeRequired)
					return
				}
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission checks if user has specific permission
func RequirePermission(authorizer rbac.Authorizer, permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			allowed, err := authorizer.Can(p.Role, permission)
			if err != nil {
				slog.ErrorContext(r.Context(), "permission check failed", "error", err)
				response.InternalServerError(w, "An unexpected error occurred")
				return
			}
			if !allowed {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s:%s', but user role is '%s'", permission.Object, permission.Action, p.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEmployee rejects callers whose account has no employee record.
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if p.EmployeeID == nil {
			response.HandleError(w, user.ErrNotAnEmployee)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwnershipOrAdmin lets administrators through and otherwise requires
// the URL parameter param to name the caller's own employee record.
func RequireOwnershipOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if p.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			if p.EmployeeID == nil || *p.EmployeeID != chi.URLParam(r, param) {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
