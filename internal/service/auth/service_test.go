package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

func seedUser(t *testing.T, store *memory.Store, email, password string, role user.Role, withEmployee bool) (user.User, *employee.Employee) {
	t.Helper()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := store.Users().Create(ctx, user.User{Email: email, PasswordHash: string(hash), Role: role})
	require.NoError(t, err)
	if !withEmployee {
		return u, nil
	}

	e, err := store.Employees().Create(ctx, employee.Employee{UserID: u.ID, FullName: "Test Person"})
	require.NoError(t, err)
	return u, &e
}

func newTestAuthService(store *memory.Store) (auth.AuthService, jwt.Service) {
	jwtService := jwt.NewJWTService(testSecret, time.Hour)
	return NewAuthService(store.Users(), store.Employees(), jwtService), jwtService
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("employee receives token with employee_id claim", func(t *testing.T) {
		store := memory.NewStore()
		u, emp := seedUser(t, store, "jane@example.com", "password123", user.RoleEmployee, true)
		svc, jwtService := newTestAuthService(store)

		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "  Jane@Example.com ", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, u.ID, resp.UserID)
		require.NotNil(t, resp.EmployeeID)
		assert.Equal(t, emp.ID, *resp.EmployeeID)
		assert.Equal(t, user.RoleEmployee, resp.Role)

		token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
		require.NoError(t, err)
		claims, err := token.AsMap(ctx)
		require.NoError(t, err)
		assert.Equal(t, emp.ID, claims["employee_id"])
	})

	t.Run("admin without employee profile can log in", func(t *testing.T) {
		store := memory.NewStore()
		seedUser(t, store, "root@example.com", "password123", user.RoleAdmin, false)
		svc, _ := newTestAuthService(store)

		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "root@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Nil(t, resp.EmployeeID)
		assert.Equal(t, user.RoleAdmin, resp.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		store := memory.NewStore()
		seedUser(t, store, "jane@example.com", "password123", user.RoleEmployee, true)
		svc, _ := newTestAuthService(store)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "nope"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		store := memory.NewStore()
		svc, _ := newTestAuthService(store)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		store := memory.NewStore()
		svc, _ := newTestAuthService(store)

		_, err := svc.Login(ctx, auth.LoginRequest{})
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "email")
		assert.Contains(t, errs.ToMap(), "password")
	})
}

func TestLogout(t *testing.T) {
	store := memory.NewStore()
	svc, jwtService := newTestAuthService(store)

	require.NoError(t, svc.Logout(context.Background(), "token-value", time.Now().Add(time.Hour).Unix()))
	assert.True(t, jwtService.IsTokenRevoked("token-value"))

	assert.ErrorIs(t, svc.Logout(context.Background(), "", 0), auth.ErrInvalidToken)
}
