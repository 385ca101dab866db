package services

import (
	"context"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/store"
	"maintenance-system/pkg/utils"

	"go.uber.org/zap"
)

type WorkCenterServiceInterface interface {
	GetWorkCenters(ctx context.Context) ([]dto.WorkCenterResponseDTO, error)
	FindWorkCenter(ctx context.Context, id uint64) (*dto.WorkCenterResponseDTO, error)
	CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*dto.WorkCenterResponseDTO, error)
	UpdateWorkCenter(ctx context.Context, id uint64, payload dto.UpdateWorkCenterDTO) (*dto.WorkCenterResponseDTO, error)
	DeleteWorkCenter(ctx context.Context, id uint64) error
}

type WorkCenterService struct {
	repo   repositories.WorkCenterRepositoryInterface
	store  *store.MaintenanceStore
	logger *zap.Logger
}

func NewWorkCenterService(repo repositories.WorkCenterRepositoryInterface, st *store.MaintenanceStore, logger *zap.Logger) *WorkCenterService {
	return &WorkCenterService{repo: repo, store: st, logger: logger}
}

func workCenterToResponse(wc *entities.WorkCenter) *dto.WorkCenterResponseDTO {
	return &dto.WorkCenterResponseDTO{
		ID:        wc.ID,
		Name:      wc.Name,
		CreatedAt: utils.TimePtrToString(wc.CreatedAt),
		UpdatedAt: utils.TimePtrToString(wc.UpdatedAt),
	}
}

func (s *WorkCenterService) GetWorkCenters(ctx context.Context) ([]dto.WorkCenterResponseDTO, error) {
	list := s.store.WorkCenters()
	out := make([]dto.WorkCenterResponseDTO, 0, len(list))
	for i := range list {
		out = append(out, *workCenterToResponse(&list[i]))
	}
	return out, nil
}

func (s *WorkCenterService) FindWorkCenter(ctx context.Context, id uint64) (*dto.WorkCenterResponseDTO, error) {
	wc, err := s.repo.FindWorkCenter(ctx, id)
	if err != nil {
		return nil, err
	}
	return workCenterToResponse(wc), nil
}

func (s *WorkCenterService) CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*dto.WorkCenterResponseDTO, error) {
	wc, err := s.repo.CreateWorkCenter(ctx, payload)
	if err != nil {
		s.logger.Error("не удалось создать рабочий центр", zap.Error(err))
		return nil, err
	}
	s.refreshSnapshot(ctx)
	return workCenterToResponse(wc), nil
}

func (s *WorkCenterService) UpdateWorkCenter(ctx context.Context, id uint64, payload dto.UpdateWorkCenterDTO) (*dto.WorkCenterResponseDTO, error) {
	wc, err := s.repo.UpdateWorkCenter(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.refreshSnapshot(ctx)
	return workCenterToResponse(wc), nil
}

func (s *WorkCenterService) DeleteWorkCenter(ctx context.Context, id uint64) error {
	if err := s.repo.DeleteWorkCenter(ctx, id); err != nil {
		return err
	}
	s.refreshSnapshot(ctx)
	return nil
}

func (s *WorkCenterService) refreshSnapshot(ctx context.Context) {
	if err := s.store.Load(ctx); err != nil {
		s.logger.Warn("снимок не обновлён после записи", zap.Error(err))
	}
}
