package routes

import (
	"context"
	"time"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	"maintenance-system/internal/store"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InitRouter собирает репозитории, сервисы и контроллеры и вешает
// маршруты под /api. Снимок данных загружается до старта сервера.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) error {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// Репозитории.
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	teamRepo := repositories.NewTeamRepository(dbConn)
	workCenterRepo := repositories.NewWorkCenterRepository(dbConn)
	requestRepo := repositories.NewRequestRepository(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Снимок коллекций в памяти.
	dataStore := store.NewMaintenanceStore(equipmentRepo, teamRepo, workCenterRepo, requestRepo, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := dataStore.Load(ctx); err != nil {
		return err
	}

	// Сервисы.
	workflowService := services.NewWorkflowService(requestRepo, dataStore, logger, nil)
	reportingService := services.NewReportingService(dataStore, cacheRepo, logger, nil, cfg.Reporting.DashboardCacheTTL)
	equipmentService := services.NewEquipmentService(equipmentRepo, dataStore, logger)
	teamService := services.NewTeamService(teamRepo, dataStore, logger)
	workCenterService := services.NewWorkCenterService(workCenterRepo, dataStore, logger)
	authService := services.NewAuthService(userRepo, jwtSvc, logger)

	// Контроллеры.
	requestCtrl := controllers.NewRequestController(workflowService, reportingService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	teamCtrl := controllers.NewTeamController(teamService, logger)
	workCenterCtrl := controllers.NewWorkCenterController(workCenterService, logger)
	reportCtrl := controllers.NewReportController(reportingService, logger)
	authCtrl := controllers.NewAuthController(authService, logger)

	runAuthRouter(api, authCtrl, authMW)
	runRequestRouter(api, requestCtrl, authMW)
	runEquipmentRouter(api, equipmentCtrl, authMW)
	runTeamRouter(api, teamCtrl, authMW)
	runWorkCenterRouter(api, workCenterCtrl, authMW)
	runReportRouter(api, reportCtrl, authMW)

	logger.Info("маршруты инициализированы")
	return nil
}
