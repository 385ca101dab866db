package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runWorkCenterRouter(api *echo.Group, ctrl *controllers.WorkCenterController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/work-centers", authMW.Auth)

	g.GET("", ctrl.GetWorkCenters)
	g.GET("/:id", ctrl.FindWorkCenter)
	g.POST("", ctrl.CreateWorkCenter)
	g.PUT("/:id", ctrl.UpdateWorkCenter)
	g.DELETE("/:id", ctrl.DeleteWorkCenter)
}
