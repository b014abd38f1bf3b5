package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"leavehub/internal/auditlog"
	"leavehub/internal/identity"
	"leavehub/internal/leavebalance"
	"leavehub/internal/leaverequest"
	"leavehub/internal/messaging/kafka"
	"leavehub/internal/notification"
	"leavehub/internal/rbac"
)

type Registry struct {
	AuditRecorder auditlog.Recorder
	OutboxRepo    kafka.OutboxRepository
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) (*Registry, error) {
	// --- Repositories ---
	identityRepo := identity.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	auditLogRepo := auditlog.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer(
		filepath.Join("configs", "rbac", "model.conf"),
		filepath.Join("configs", "rbac", "policy.csv"),
	)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	auditRecorder := auditlog.NewRecorder(auditLogRepo)
	notificationDispatcher := notification.NewDispatcher(db, notificationRepo, outboxRepo)
	leaveBalanceService := leavebalance.NewService(leaveBalanceRepo, auditRecorder)
	leaveRequestService := leaverequest.NewService(
		db,
		leaveRequestRepo,
		identityRepo,
		leaveBalanceService,
		auditRecorder,
		notificationDispatcher,
	)

	// --- Handlers ---
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)
	leaveBalanceHandler := leavebalance.NewHandler(leaveBalanceService)
	auditLogHandler := auditlog.NewHandler(auditRecorder)
	notificationHandler := notification.NewHandler(notificationDispatcher, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leaverequest.RegisterRoutes(api, leaveRequestHandler, enforcer, rdb)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler, enforcer)
		auditlog.RegisterRoutes(api, auditLogHandler, enforcer)
		notification.RegisterRoutes(api, notificationHandler, enforcer)
	}

	return &Registry{
		AuditRecorder: auditRecorder,
		OutboxRepo:    outboxRepo,
	}, nil
}
