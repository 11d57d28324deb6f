package employee

import (
	"swiftpay/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:id", handler.GetById)
		employees.POST("", middleware.RoleMiddleware("admin", "hr"), handler.Create)
		employees.PUT("/:id", middleware.RoleMiddleware("admin", "hr"), handler.Update)
		employees.DELETE("/:id", middleware.RoleMiddleware("admin"), handler.Deactivate)
	}
}
