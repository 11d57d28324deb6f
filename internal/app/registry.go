package app

import (
	"database/sql"

	"swiftpay/internal/attendance"
	"swiftpay/internal/audit"
	"swiftpay/internal/employee"
	"swiftpay/internal/messaging/kafka"
	"swiftpay/internal/payroll"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	clockPublisher attendance.EventPublisher,
) {
	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)

	// --- Services ---
	recorder := audit.NewRecorder(auditRepo)
	employeeService := employee.NewService(db, employeeRepo, recorder)
	attendanceService := attendance.NewService(
		db,
		attendanceRepo,
		attendance.DefaultClockConfig(),
		recorder,
		clockPublisher,
	)
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		outboxRepo,
		employeeService,
		attendanceService,
		payroll.DefaultTransitionPolicy(),
		recorder,
	)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditRepo)
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		audit.RegisterRoutes(api, auditHandler)
		employee.RegisterRoutes(api, employeeHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
	}
}
