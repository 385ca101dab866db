package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/store"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stageTransitions — таблица разрешённых переходов. Сейчас разрешены все
// рёбра: канбан позволяет перетащить карточку в любую колонку, терминальной
// блокировки у Repaired/Scrap нет. Запрет конкретного перехода — правка
// одной строки здесь, вызывающий код не меняется.
var stageTransitions = map[string]map[string]bool{
	entities.StageNew: {
		entities.StageInProgress: true,
		entities.StageRepaired:   true,
		entities.StageScrap:      true,
	},
	entities.StageInProgress: {
		entities.StageNew:      true,
		entities.StageRepaired: true,
		entities.StageScrap:    true,
	},
	entities.StageRepaired: {
		entities.StageNew:        true,
		entities.StageInProgress: true,
		entities.StageScrap:      true,
	},
	entities.StageScrap: {
		entities.StageNew:        true,
		entities.StageInProgress: true,
		entities.StageRepaired:   true,
	},
}

func canTransition(from, to string) bool {
	return stageTransitions[from][to]
}

// keyedMutex сериализует записи по id сущности: вторая запись той же заявки
// ждёт завершения первой.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func (k *keyedMutex) lock(id uint64) *sync.Mutex {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[uint64]*sync.Mutex)
	}
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m
}

type WorkflowServiceInterface interface {
	NewRequestDefaults(ctx context.Context) entities.MaintenanceRequest
	SaveRequest(ctx context.Context, id uint64, payload dto.SaveRequestDTO) (*entities.MaintenanceRequest, error)
	DeleteRequest(ctx context.Context, id uint64) error
	MoveToStage(ctx context.Context, id uint64, newStage string) (*entities.MaintenanceRequest, error)
	SelectEquipment(req *entities.MaintenanceRequest, equipmentName string)
	SelectTeam(req *entities.MaintenanceRequest, teamName string)
	AddWorksheetItem(ctx context.Context, requestID uint64) (*entities.MaintenanceRequest, error)
	UpdateWorksheetItemTitle(ctx context.Context, requestID uint64, itemID, title string) (*entities.MaintenanceRequest, error)
	ToggleWorksheetItem(ctx context.Context, requestID uint64, itemID string) (*entities.MaintenanceRequest, error)
	RemoveWorksheetItem(ctx context.Context, requestID uint64, itemID string) (*entities.MaintenanceRequest, error)
	IsOverdue(req *entities.MaintenanceRequest) bool
}

type WorkflowService struct {
	requestRepo repositories.RequestRepositoryInterface
	store       *store.MaintenanceStore
	logger      *zap.Logger
	now         func() time.Time
	writes      keyedMutex
}

func NewWorkflowService(
	requestRepo repositories.RequestRepositoryInterface,
	st *store.MaintenanceStore,
	logger *zap.Logger,
	now func() time.Time,
) *WorkflowService {
	if now == nil {
		now = time.Now
	}
	return &WorkflowService{
		requestRepo: requestRepo,
		store:       st,
		logger:      logger,
		now:         now,
	}
}

// NewRequestDefaults — заготовка новой заявки с дефолтами формы.
func (s *WorkflowService) NewRequestDefaults(ctx context.Context) entities.MaintenanceRequest {
	today := s.now().Format(utils.DateLayout)
	createdBy, _ := utils.GetUserNameFromCtx(ctx)
	return entities.MaintenanceRequest{
		CreatedBy:       createdBy,
		MaintenanceFor:  entities.MaintenanceForEquipment,
		RequestDate:     today,
		CreatedDate:     today,
		MaintenanceType: entities.MaintenanceTypeCorrective,
		Duration:        "00:00",
		Priority:        entities.PriorityMedium,
		Stage:           entities.StageNew,
		Worksheet:       []entities.WorksheetItem{},
	}
}

// validateRequest проверяет обязательные поля и инвариант цели обслуживания
// до любой мутации.
func (s *WorkflowService) validateRequest(req *entities.MaintenanceRequest) error {
	if req.Subject == "" {
		return apperrors.NewValidationError("поле 'Subject' обязательно")
	}
	switch req.MaintenanceFor {
	case entities.MaintenanceForEquipment:
		if req.Equipment == "" {
			return apperrors.NewValidationError("для цели 'Equipment' нужно выбрать оборудование")
		}
		if req.WorkCenter != "" {
			return apperrors.NewValidationError("заявка на оборудование не может ссылаться на рабочий центр")
		}
	case entities.MaintenanceForWorkCenter:
		if req.WorkCenter == "" {
			return apperrors.NewValidationError("для цели 'Work Center' нужно выбрать рабочий центр")
		}
		if req.Equipment != "" {
			return apperrors.NewValidationError("заявка на рабочий центр не может ссылаться на оборудование")
		}
	default:
		return apperrors.NewValidationError("недопустимая цель обслуживания: %s", req.MaintenanceFor)
	}
	return nil
}

// syncCompletedDate держит дату завершения согласованной со стадией:
// вход в Repaired проставляет её, выход — очищает.
func (s *WorkflowService) syncCompletedDate(req *entities.MaintenanceRequest) {
	if req.Stage == entities.StageRepaired {
		if req.CompletedDate == "" {
			req.CompletedDate = s.now().Format(utils.DateLayout)
		}
		return
	}
	req.CompletedDate = ""
}

// SaveRequest создаёт заявку (id == 0, id назначает хранилище) или обновляет
// существующую. Снимок в памяти меняется только после успешной записи.
func (s *WorkflowService) SaveRequest(ctx context.Context, id uint64, payload dto.SaveRequestDTO) (*entities.MaintenanceRequest, error) {
	if id == 0 {
		req := s.NewRequestDefaults(ctx)
		applySavePayload(&req, payload)
		if err := s.validateRequest(&req); err != nil {
			return nil, err
		}
		s.syncCompletedDate(&req)

		created, err := s.requestRepo.CreateRequest(ctx, req)
		if err != nil {
			s.logger.Error("не удалось создать заявку", zap.Error(err))
			return nil, apperrors.NewPersistenceError("create request", err)
		}
		s.store.UpsertRequest(*created)
		s.logger.Info("заявка создана", zap.Uint64("id", created.ID), zap.String("subject", created.Subject))
		return created, nil
	}

	// Читаем и пишем под одним замком, чтобы гонка двух сохранений
	// не перемешала состояния.
	lock := s.writes.lock(id)
	defer lock.Unlock()

	req, ok := s.store.FindRequest(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	applySavePayload(&req, payload)
	if err := s.validateRequest(&req); err != nil {
		return nil, err
	}
	s.syncCompletedDate(&req)

	updated, err := s.requestRepo.UpdateRequest(ctx, id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("не удалось обновить заявку", zap.Uint64("id", id), zap.Error(err))
		return nil, apperrors.NewPersistenceError("update request", err)
	}
	s.store.UpsertRequest(*updated)
	return updated, nil
}

func applySavePayload(req *entities.MaintenanceRequest, payload dto.SaveRequestDTO) {
	req.Subject = payload.Subject
	if payload.MaintenanceFor != "" {
		req.MaintenanceFor = payload.MaintenanceFor
	}
	req.Equipment = payload.Equipment
	req.EquipmentID = payload.EquipmentID
	req.WorkCenter = payload.WorkCenter
	req.Category = payload.Category
	if payload.RequestDate != "" {
		req.RequestDate = payload.RequestDate
	}
	if payload.MaintenanceType != "" {
		req.MaintenanceType = payload.MaintenanceType
	}
	req.Team = payload.Team
	req.Technician = payload.Technician
	req.ScheduledDate = payload.ScheduledDate
	req.ScheduledTime = payload.ScheduledTime
	if payload.Duration != "" {
		req.Duration = payload.Duration
	}
	if payload.Priority != 0 {
		req.Priority = payload.Priority
	}
	req.Company = payload.Company
	if payload.Stage != "" {
		req.Stage = payload.Stage
	}
	req.Notes = payload.Notes
	req.Instructions = payload.Instructions
	if payload.Worksheet != nil {
		req.Worksheet = payload.Worksheet
	}
}

// DeleteRequest удаляет заявку безвозвратно. Подтверждение пользователя —
// обязанность вызывающей стороны.
func (s *WorkflowService) DeleteRequest(ctx context.Context, id uint64) error {
	lock := s.writes.lock(id)
	defer lock.Unlock()

	if err := s.requestRepo.DeleteRequest(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.logger.Error("не удалось удалить заявку", zap.Uint64("id", id), zap.Error(err))
		return apperrors.NewPersistenceError("delete request", err)
	}
	s.store.RemoveRequest(id)
	s.logger.Info("заявка удалена", zap.Uint64("id", id))
	return nil
}

// MoveToStage переводит заявку в новую стадию. Перенос в текущую стадию —
// no-op без ошибки.
func (s *WorkflowService) MoveToStage(ctx context.Context, id uint64, newStage string) (*entities.MaintenanceRequest, error) {
	if !entities.IsValidStage(newStage) {
		return nil, apperrors.NewValidationError("неизвестная стадия: %s", newStage)
	}

	lock := s.writes.lock(id)
	defer lock.Unlock()

	req, ok := s.store.FindRequest(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if req.Stage == newStage {
		return &req, nil
	}
	if !canTransition(req.Stage, newStage) {
		return nil, apperrors.NewValidationError("переход %s → %s запрещён", req.Stage, newStage)
	}

	req.Stage = newStage
	s.syncCompletedDate(&req)

	if err := s.requestRepo.UpdateStage(ctx, id, req.Stage, req.CompletedDate); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("не удалось сменить стадию", zap.Uint64("id", id), zap.String("stage", newStage), zap.Error(err))
		return nil, apperrors.NewPersistenceError("update stage", err)
	}
	s.store.UpsertRequest(req)
	s.logger.Info("стадия заявки изменена", zap.Uint64("id", id), zap.String("stage", newStage))
	return &req, nil
}

// SelectEquipment — автозаполнение при выборе оборудования: копируем
// category/team со снимка оборудования. Промах по имени — тихий no-op,
// сохраняется только введённое имя.
func (s *WorkflowService) SelectEquipment(req *entities.MaintenanceRequest, equipmentName string) {
	req.Equipment = equipmentName
	eq, ok := s.store.FindEquipmentByName(equipmentName)
	if !ok {
		return
	}
	req.EquipmentID = &eq.ID
	req.Category = eq.Category
	req.Team = eq.Team
}

// SelectTeam подставляет первого участника команды как техника.
// Пустая или неизвестная команда — техник сбрасывается.
func (s *WorkflowService) SelectTeam(req *entities.MaintenanceRequest, teamName string) {
	req.Team = teamName
	team, ok := s.store.FindTeamByName(teamName)
	if ok && len(team.Members) > 0 {
		req.Technician = team.Members[0]
		return
	}
	req.Technician = ""
}

func (s *WorkflowService) mutateWorksheet(ctx context.Context, requestID uint64, mutate func(*entities.MaintenanceRequest) bool) (*entities.MaintenanceRequest, error) {
	lock := s.writes.lock(requestID)
	defer lock.Unlock()

	req, ok := s.store.FindRequest(requestID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !mutate(&req) {
		// Документированный no-op: пункт не найден, состояние не трогаем.
		return &req, nil
	}

	updated, err := s.requestRepo.UpdateRequest(ctx, requestID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("не удалось сохранить чек-лист", zap.Uint64("id", requestID), zap.Error(err))
		return nil, apperrors.NewPersistenceError("update worksheet", err)
	}
	s.store.UpsertRequest(*updated)
	return updated, nil
}

// AddWorksheetItem добавляет пустой пункт чек-листа со свежим id.
func (s *WorkflowService) AddWorksheetItem(ctx context.Context, requestID uint64) (*entities.MaintenanceRequest, error) {
	return s.mutateWorksheet(ctx, requestID, func(req *entities.MaintenanceRequest) bool {
		req.Worksheet = append(req.Worksheet, entities.WorksheetItem{
			ID:     uuid.NewString(),
			Title:  "",
			IsDone: false,
		})
		return true
	})
}

func (s *WorkflowService) UpdateWorksheetItemTitle(ctx context.Context, requestID uint64, itemID, title string) (*entities.MaintenanceRequest, error) {
	return s.mutateWorksheet(ctx, requestID, func(req *entities.MaintenanceRequest) bool {
		for i := range req.Worksheet {
			if req.Worksheet[i].ID == itemID {
				req.Worksheet[i].Title = title
				return true
			}
		}
		return false
	})
}

func (s *WorkflowService) ToggleWorksheetItem(ctx context.Context, requestID uint64, itemID string) (*entities.MaintenanceRequest, error) {
	return s.mutateWorksheet(ctx, requestID, func(req *entities.MaintenanceRequest) bool {
		for i := range req.Worksheet {
			if req.Worksheet[i].ID == itemID {
				req.Worksheet[i].IsDone = !req.Worksheet[i].IsDone
				return true
			}
		}
		return false
	})
}

func (s *WorkflowService) RemoveWorksheetItem(ctx context.Context, requestID uint64, itemID string) (*entities.MaintenanceRequest, error) {
	return s.mutateWorksheet(ctx, requestID, func(req *entities.MaintenanceRequest) bool {
		for i := range req.Worksheet {
			if req.Worksheet[i].ID == itemID {
				req.Worksheet = append(req.Worksheet[:i], req.Worksheet[i+1:]...)
				return true
			}
		}
		return false
	})
}

// IsOverdue: дата планового обслуживания назначена, строго в прошлом,
// и заявка ещё не в Repaired/Scrap.
func (s *WorkflowService) IsOverdue(req *entities.MaintenanceRequest) bool {
	return IsOverdueAt(req, s.now())
}

// IsOverdueAt — та же проверка с явной текущей датой.
func IsOverdueAt(req *entities.MaintenanceRequest, now time.Time) bool {
	if req.Stage == entities.StageRepaired || req.Stage == entities.StageScrap {
		return false
	}
	scheduled, ok := utils.ParseDate(req.ScheduledDate)
	if !ok {
		return false
	}
	return scheduled.Before(utils.DayOf(now))
}
