package services

import (
	"context"
	"sort"
	"strings"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/store"
	"maintenance-system/pkg/types"
	"maintenance-system/pkg/utils"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentResponseDTO, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentResponseDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentResponseDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentResponseDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	repo   repositories.EquipmentRepositoryInterface
	store  *store.MaintenanceStore
	logger *zap.Logger
}

func NewEquipmentService(repo repositories.EquipmentRepositoryInterface, st *store.MaintenanceStore, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{repo: repo, store: st, logger: logger}
}

func (s *EquipmentService) toResponse(e *entities.Equipment, requests []entities.MaintenanceRequest) *dto.EquipmentResponseDTO {
	return &dto.EquipmentResponseDTO{
		ID:               e.ID,
		Name:             e.Name,
		SerialNumber:     e.SerialNumber,
		Category:         e.Category,
		Department:       e.Department,
		Company:          e.Company,
		Employee:         e.Employee,
		Technician:       e.Technician,
		Team:             e.Team,
		OpenRequestCount: OpenRequestCount(requests, e.Name),
		CreatedAt:        utils.TimePtrToString(e.CreatedAt),
		UpdatedAt:        utils.TimePtrToString(e.UpdatedAt),
	}
}

// GetEquipment отдаёт инвентарь со счётчиком незакрытых заявок на карточке.
// Поиск идёт по имени, серийному номеру и категории.
func (s *EquipmentService) GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentResponseDTO, error) {
	list := s.store.Equipment()

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		matched := make([]entities.Equipment, 0, len(list))
		for _, e := range list {
			if strings.Contains(strings.ToLower(e.Name), needle) ||
				strings.Contains(strings.ToLower(e.SerialNumber), needle) ||
				strings.Contains(strings.ToLower(e.Category), needle) {
				matched = append(matched, e)
			}
		}
		list = matched
	}

	// Ключи применяются с конца: первый ключ запроса — основной.
	for i := len(filter.Sort) - 1; i >= 0; i-- {
		sortEquipment(list, filter.Sort[i].Field, filter.Sort[i].Direction)
	}

	requests := s.store.Requests()
	out := make([]dto.EquipmentResponseDTO, 0, len(list))
	for i := range list {
		out = append(out, *s.toResponse(&list[i], requests))
	}
	return out, nil
}

func sortEquipment(list []entities.Equipment, key, direction string) {
	var less func(a, b entities.Equipment) bool
	switch key {
	case "name":
		less = func(a, b entities.Equipment) bool { return a.Name < b.Name }
	case "serial_number":
		less = func(a, b entities.Equipment) bool { return a.SerialNumber < b.SerialNumber }
	case "category":
		less = func(a, b entities.Equipment) bool { return a.Category < b.Category }
	case "team":
		less = func(a, b entities.Equipment) bool { return a.Team < b.Team }
	case "id":
		less = func(a, b entities.Equipment) bool { return a.ID < b.ID }
	default:
		return
	}
	desc := strings.EqualFold(direction, "desc")
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentResponseDTO, error) {
	e, err := s.repo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(e, s.store.Requests()), nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentResponseDTO, error) {
	e, err := s.repo.CreateEquipment(ctx, payload)
	if err != nil {
		s.logger.Error("не удалось создать оборудование", zap.Error(err))
		return nil, err
	}
	s.refreshSnapshot(ctx)
	s.logger.Info("оборудование создано", zap.Uint64("id", e.ID), zap.String("name", e.Name))
	return s.toResponse(e, s.store.Requests()), nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentResponseDTO, error) {
	e, err := s.repo.UpdateEquipment(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.refreshSnapshot(ctx)
	return s.toResponse(e, s.store.Requests()), nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.repo.DeleteEquipment(ctx, id); err != nil {
		return err
	}
	s.refreshSnapshot(ctx)
	s.logger.Info("оборудование удалено", zap.Uint64("id", id))
	return nil
}

func (s *EquipmentService) refreshSnapshot(ctx context.Context) {
	if err := s.store.Load(ctx); err != nil {
		s.logger.Warn("снимок не обновлён после записи", zap.Error(err))
	}
}
