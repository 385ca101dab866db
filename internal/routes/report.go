package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runReportRouter(api *echo.Group, ctrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/reports", authMW.Auth)

	g.GET("/dashboard", ctrl.GetDashboard)
	g.GET("/requests/export", ctrl.ExportRequests)
}
