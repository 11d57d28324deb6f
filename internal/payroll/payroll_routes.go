package payroll

import (
	"swiftpay/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	payrolls := r.Group("/payroll-runs")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.POST("",
			middleware.RoleMiddleware("admin", "hr"),
			middleware.Idempotency(rdb),
			handler.Generate,
		)
		payrolls.GET("", handler.List)
		payrolls.GET("/summary", handler.Summary)
		payrolls.GET("/:id", handler.GetById)
		payrolls.GET("/:id/line-items", handler.GetLineItems)
		payrolls.GET("/:id/line-items/employees/:employee_id", handler.Payslip)
		payrolls.PATCH("/:id/status", middleware.RoleMiddleware("admin", "hr"), handler.UpdateStatus)
		payrolls.DELETE("/:id", middleware.RoleMiddleware("admin"), handler.Delete)
	}
}
