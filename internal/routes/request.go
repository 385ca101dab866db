package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runRequestRouter(api *echo.Group, ctrl *controllers.RequestController, authMW *middleware.AuthMiddleware) {
	g := api.Group("/requests", authMW.Auth)

	g.GET("", ctrl.GetRequests)
	g.GET("/board", ctrl.GetKanbanBoard)
	g.GET("/new", ctrl.NewRequest)
	g.POST("/prefill", ctrl.Prefill)
	g.GET("/:id", ctrl.FindRequest)
	g.POST("", ctrl.CreateRequest)
	g.PUT("/:id", ctrl.UpdateRequest)
	g.DELETE("/:id", ctrl.DeleteRequest)

	g.PUT("/:id/stage", ctrl.MoveStage)

	g.POST("/:id/worksheet", ctrl.AddWorksheetItem)
	g.PUT("/:id/worksheet/:itemId", ctrl.UpdateWorksheetItemTitle)
	g.PUT("/:id/worksheet/:itemId/toggle", ctrl.ToggleWorksheetItem)
	g.DELETE("/:id/worksheet/:itemId", ctrl.RemoveWorksheetItem)
}
