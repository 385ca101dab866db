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

type TeamServiceInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamResponseDTO, error)
	FindTeam(ctx context.Context, id uint64) (*dto.TeamResponseDTO, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamResponseDTO, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamResponseDTO, error)
	DeleteTeam(ctx context.Context, id uint64) error
}

type TeamService struct {
	repo   repositories.TeamRepositoryInterface
	store  *store.MaintenanceStore
	logger *zap.Logger
}

func NewTeamService(repo repositories.TeamRepositoryInterface, st *store.MaintenanceStore, logger *zap.Logger) *TeamService {
	return &TeamService{repo: repo, store: st, logger: logger}
}

func teamToResponse(t *entities.Team) *dto.TeamResponseDTO {
	members := t.Members
	if members == nil {
		members = []string{}
	}
	return &dto.TeamResponseDTO{
		ID:             t.ID,
		Name:           t.Name,
		Members:        members,
		Specialization: t.Specialization,
		Company:        t.Company,
		Notes:          t.Notes,
		CreatedAt:      utils.TimePtrToString(t.CreatedAt),
		UpdatedAt:      utils.TimePtrToString(t.UpdatedAt),
	}
}

// GetTeams — список команд. Поиск идёт по имени команды и по участникам,
// сортировка по members сравнивает размер состава.
func (s *TeamService) GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamResponseDTO, error) {
	teams := s.store.Teams()

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		matched := make([]entities.Team, 0, len(teams))
		for _, t := range teams {
			if teamMatches(&t, needle) {
				matched = append(matched, t)
			}
		}
		teams = matched
	}

	// Ключи применяются с конца: первый ключ запроса — основной.
	for i := len(filter.Sort) - 1; i >= 0; i-- {
		sortTeams(teams, filter.Sort[i].Field, filter.Sort[i].Direction)
	}

	out := make([]dto.TeamResponseDTO, 0, len(teams))
	for i := range teams {
		out = append(out, *teamToResponse(&teams[i]))
	}
	return out, nil
}

func teamMatches(t *entities.Team, needle string) bool {
	if strings.Contains(strings.ToLower(t.Name), needle) {
		return true
	}
	for _, member := range t.Members {
		if strings.Contains(strings.ToLower(member), needle) {
			return true
		}
	}
	return false
}

func sortTeams(teams []entities.Team, key, direction string) {
	var less func(a, b entities.Team) bool
	switch key {
	case "name":
		less = func(a, b entities.Team) bool { return a.Name < b.Name }
	case "specialization":
		less = func(a, b entities.Team) bool { return a.Specialization < b.Specialization }
	case "members":
		less = func(a, b entities.Team) bool { return len(a.Members) < len(b.Members) }
	case "id":
		less = func(a, b entities.Team) bool { return a.ID < b.ID }
	default:
		return
	}
	desc := strings.EqualFold(direction, "desc")
	sort.SliceStable(teams, func(i, j int) bool {
		if desc {
			return less(teams[j], teams[i])
		}
		return less(teams[i], teams[j])
	})
}

func (s *TeamService) FindTeam(ctx context.Context, id uint64) (*dto.TeamResponseDTO, error) {
	t, err := s.repo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	return teamToResponse(t), nil
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamResponseDTO, error) {
	t, err := s.repo.CreateTeam(ctx, payload)
	if err != nil {
		s.logger.Error("не удалось создать команду", zap.Error(err))
		return nil, err
	}
	s.refreshSnapshot(ctx)
	s.logger.Info("команда создана", zap.Uint64("id", t.ID), zap.String("name", t.Name))
	return teamToResponse(t), nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamResponseDTO, error) {
	t, err := s.repo.UpdateTeam(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.refreshSnapshot(ctx)
	return teamToResponse(t), nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint64) error {
	if err := s.repo.DeleteTeam(ctx, id); err != nil {
		return err
	}
	s.refreshSnapshot(ctx)
	s.logger.Info("команда удалена", zap.Uint64("id", id))
	return nil
}

func (s *TeamService) refreshSnapshot(ctx context.Context) {
	if err := s.store.Load(ctx); err != nil {
		s.logger.Warn("снимок не обновлён после записи", zap.Error(err))
	}
}
