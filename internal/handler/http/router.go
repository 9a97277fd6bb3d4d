package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/rbac"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level
	LoginRate      rate.Limit
	LoginBurst     int
	// Logger defaults to an ECS JSON logger on stdout.
	Logger *slog.Logger
}

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Audit      AuditHandler
}

func NewRouter(opts RouterOptions, jwtService jwt.Service, authorizer rbac.Authorizer, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       opts.LogLevel,
			ReplaceAttr: logFormat.ReplaceAttr,
		})).With(
			slog.String("app", "hrms-backend"),
			slog.String("env", opts.Env),
		)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	perm := func(p user.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(authorizer, p)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimitByIP(opts.LoginRate, opts.LoginBurst)).Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService))
				r.Post("/logout", h.Auth.Logout)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/employees", func(r chi.Router) {
				r.With(perm(user.PermissionEmployeeViewOwn)).Get("/me", h.Employee.Me)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleAdmin))
					r.Use(perm(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Get("/", h.Employee.List)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Use(perm(user.PermissionAttendanceCheck))
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
				})

				r.Route("/employees/{employeeID}", func(r chi.Router) {
					r.Use(perm(user.PermissionAttendanceViewOwn))
					r.Use(middleware.RequireOwnershipOrAdmin("employeeID"))
					r.Get("/", h.Attendance.History)
					r.Get("/stats", h.Attendance.MonthlyStats)
					r.Get("/export", h.Attendance.Export)
				})

				r.With(middleware.RequireRole(user.RoleAdmin), perm(user.PermissionAttendanceOverride)).
					Put("/override", h.Attendance.Override)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.With(perm(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
					r.With(perm(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.GetMyRequests)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleAdmin))
					r.With(perm(user.PermissionLeaveViewAll)).Get("/pending", h.Leave.ListPending)
					r.With(perm(user.PermissionLeaveApprove)).Post("/{id}/approve", h.Leave.ApproveRequest)
					r.With(perm(user.PermissionLeaveApprove)).Post("/{id}/reject", h.Leave.RejectRequest)
				})

				// Ownership is checked against the loaded request.
				r.With(perm(user.PermissionLeaveViewOwn)).Get("/{id}", h.Leave.GetRequest)
			})

			r.With(middleware.RequireRole(user.RoleAdmin), perm(user.PermissionAuditView)).
				Get("/audit-logs", h.Audit.List)
		})
	})
	return r
}
