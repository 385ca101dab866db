package controllers

import (
	"net/http"
	"strconv"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RequestController struct {
	workflowService  services.WorkflowServiceInterface
	reportingService services.ReportingServiceInterface
	logger           *zap.Logger
}

func NewRequestController(
	workflowService services.WorkflowServiceInterface,
	reportingService services.ReportingServiceInterface,
	logger *zap.Logger,
) *RequestController {
	return &RequestController{
		workflowService:  workflowService,
		reportingService: reportingService,
		logger:           logger,
	}
}

func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный ID",
			err,
			map[string]interface{}{"param": ctx.Param(name)},
		)
	}
	return id, nil
}

// GetRequests — плоский список заявок с фильтром, сортировкой и пагинацией.
func (c *RequestController) GetRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL)
	list, total := c.reportingService.ListRequests(filter)
	return utils.SuccessResponse(ctx, list, "Список заявок успешно получен", http.StatusOK, total)
}

// GetKanbanBoard — заявки, разложенные по колонкам стадий.
func (c *RequestController) GetKanbanBoard(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL)
	board := c.reportingService.KanbanBoard(filter.Search, filter.Team)
	return utils.SuccessResponse(ctx, board, "Канбан-доска успешно получена", http.StatusOK)
}

// NewRequest — заготовка формы с дефолтами.
func (c *RequestController) NewRequest(ctx echo.Context) error {
	defaults := c.workflowService.NewRequestDefaults(ctx.Request().Context())
	return utils.SuccessResponse(ctx, defaults, "Заготовка заявки сформирована", http.StatusOK)
}

// Prefill — автозаполнение после выбора оборудования или команды.
func (c *RequestController) Prefill(ctx echo.Context) error {
	var payload dto.PrefillRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	req := payload.Request
	switch payload.Field {
	case "equipment":
		c.workflowService.SelectEquipment(&req, payload.Value)
	case "team":
		c.workflowService.SelectTeam(&req, payload.Value)
	}
	return utils.SuccessResponse(ctx, req, "Поля заявки заполнены", http.StatusOK)
}

func (c *RequestController) FindRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	req, ok := c.reportingService.FindRequest(id)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrNotFound, c.logger)
	}
	return utils.SuccessResponse(ctx, req, "Заявка успешно найдена", http.StatusOK)
}

func (c *RequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.SaveRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	req, err := c.workflowService.SaveRequest(ctx.Request().Context(), 0, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.reportingService.InvalidateDashboard(ctx.Request().Context())
	return utils.SuccessResponse(ctx, req, "Заявка успешно создана", http.StatusCreated)
}

func (c *RequestController) UpdateRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SaveRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	req, err := c.workflowService.SaveRequest(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.reportingService.InvalidateDashboard(ctx.Request().Context())
	return utils.SuccessResponse(ctx, req, "Заявка успешно обновлена", http.StatusOK)
}

func (c *RequestController) DeleteRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.workflowService.DeleteRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.reportingService.InvalidateDashboard(ctx.Request().Context())
	return utils.SuccessResponse(ctx, nil, "Заявка успешно удалена", http.StatusOK)
}

// MoveStage — перетаскивание карточки между колонками канбана.
func (c *RequestController) MoveStage(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.MoveStageDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	req, err := c.workflowService.MoveToStage(ctx.Request().Context(), id, payload.Stage)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.reportingService.InvalidateDashboard(ctx.Request().Context())
	return utils.SuccessResponse(ctx, req, "Стадия заявки изменена", http.StatusOK)
}

func (c *RequestController) AddWorksheetItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	req, err := c.workflowService.AddWorksheetItem(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, req, "Пункт чек-листа добавлен", http.StatusCreated)
}

func (c *RequestController) UpdateWorksheetItemTitle(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.WorksheetTitleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}

	req, err := c.workflowService.UpdateWorksheetItemTitle(ctx.Request().Context(), id, ctx.Param("itemId"), payload.Title)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, req, "Пункт чек-листа обновлён", http.StatusOK)
}

func (c *RequestController) ToggleWorksheetItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	req, err := c.workflowService.ToggleWorksheetItem(ctx.Request().Context(), id, ctx.Param("itemId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, req, "Пункт чек-листа переключён", http.StatusOK)
}

func (c *RequestController) RemoveWorksheetItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	req, err := c.workflowService.RemoveWorksheetItem(ctx.Request().Context(), id, ctx.Param("itemId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, req, "Пункт чек-листа удалён", http.StatusOK)
}
