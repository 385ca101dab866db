package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runTeamRouter(api *echo.Group, ctrl *controllers.TeamController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/teams", authMW.Auth)

	g.GET("", ctrl.GetTeams)
	g.GET("/:id", ctrl.FindTeam)
	g.POST("", ctrl.CreateTeam)
	g.PUT("/:id", ctrl.UpdateTeam)
	g.DELETE("/:id", ctrl.DeleteTeam)
}
