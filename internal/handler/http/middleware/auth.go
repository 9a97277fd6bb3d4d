package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type principalKey struct{}

// Principal is the authenticated caller as read from the access token.
type Principal struct {
	UserID     string
	Email      string
	EmployeeID *string
	Role       user.Role
	Token      string
	ExpiresAt  int64
}

func (p Principal) IsAdmin() bool {
	return p.Role == user.RoleAdmin
}

// PrincipalFrom returns the caller stored by AuthRequired.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			if jwtService.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, _ := claims["user_id"].(string)
			role, _ := claims["role"].(string)
			if userID == "" || !user.Role(role).IsValid() {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			p := Principal{
				UserID:    userID,
				Role:      user.Role(role),
				Token:     raw,
				ExpiresAt: token.Expiration().Unix(),
			}
			p.Email, _ = claims["email"].(string)
			if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
				p.EmployeeID = &employeeID
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		}
		return http.HandlerFunc(hfn)
	}
}
