package controllers

import (
	"net/http"

	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReportController struct {
	reportingService services.ReportingServiceInterface
	logger           *zap.Logger
}

func NewReportController(reportingService services.ReportingServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportingService: reportingService, logger: logger}
}

// GetDashboard — KPI-карточки и серии для графиков страницы отчётов.
func (c *ReportController) GetDashboard(ctx echo.Context) error {
	res, err := c.reportingService.Dashboard(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Отчёт успешно сформирован", http.StatusOK)
}

// ExportRequests — выгрузка отфильтрованных заявок в Excel.
func (c *ReportController) ExportRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL)
	data, err := c.reportingService.ExportRequests(filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="maintenance_requests.xlsx"`)
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
