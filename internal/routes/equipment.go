package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(api *echo.Group, ctrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/equipment", authMW.Auth)

	g.GET("", ctrl.GetEquipment)
	g.GET("/:id", ctrl.FindEquipment)
	g.POST("", ctrl.CreateEquipment)
	g.PUT("/:id", ctrl.UpdateEquipment)
	g.DELETE("/:id", ctrl.DeleteEquipment)
}
