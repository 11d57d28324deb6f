package attendance

import (
	"swiftpay/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/time-in", handler.TimeIn)
		attendances.POST("/time-out", handler.TimeOut)
		attendances.POST("/absence", middleware.RoleMiddleware("admin", "hr"), handler.RecordAbsence)
		attendances.POST("/leave", middleware.RoleMiddleware("admin", "hr"), handler.RecordLeave)
		attendances.GET("", handler.ListRange)
		attendances.GET("/employees/:employee_id", handler.GetByEmployeeAndDate)
		attendances.GET("/employees/:employee_id/summary", handler.Summary)
		attendances.PUT("/:id", middleware.RoleMiddleware("admin", "hr"), handler.Update)
		attendances.DELETE("/:id", middleware.RoleMiddleware("admin"), handler.Delete)
	}
}
