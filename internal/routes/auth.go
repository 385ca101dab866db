package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/auth")

	g.POST("/login", ctrl.Login)
	g.POST("/refresh", ctrl.Refresh)
	g.GET("/me", ctrl.Me, authMW.Auth)
}
