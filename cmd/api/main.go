package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/rbac"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hrms-backend-go/internal/service/attendance"
	auditService "github.com/cmlabs-hris/hrms-backend-go/internal/service/audit"
	serviceAuth "github.com/cmlabs-hris/hrms-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hrms-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/leave"
	"golang.org/x/time/rate"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveApprovalRepo := postgresql.NewLeaveApprovalRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	outboxRepo := postgresql.NewOutboxRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authorizer, err := rbac.NewDefaultEnforcer()
	if err != nil {
		return fmt.Errorf("build authorizer: %w", err)
	}

	authService := serviceAuth.NewAuthService(userRepo, employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(txManager, userRepo, employeeRepo, auditRepo)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, employeeRepo, auditRepo)
	leaveService := leave.NewLeaveService(txManager, leaveRequestRepo, leaveApprovalRepo, employeeRepo, attendanceRepo, auditRepo, outboxRepo)
	auditSvc := auditService.NewAuditService(auditRepo)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		LoginRate:      rate.Limit(cfg.App.LoginRateLimit),
		LoginBurst:     cfg.App.LoginBurst,
	}, JWTService, authorizer, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveService),
		Audit:      appHTTP.NewAuditHandler(auditSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	slog.Info("shutting down server")
	return server.Shutdown(shutdownCtx)
}
