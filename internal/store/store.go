// Package store держит авторитетный снимок коллекций в памяти.
// Читатели получают копии, мутации идут через единственный пишущий
// контекст (сервисы), поэтому блокировок сверх RWMutex не нужно.
package store

import (
	"context"
	"sync"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/types"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type MaintenanceStore struct {
	mu sync.RWMutex

	equipment   []entities.Equipment
	teams       []entities.Team
	workCenters []entities.WorkCenter
	requests    []entities.MaintenanceRequest

	equipmentRepo  repositories.EquipmentRepositoryInterface
	teamRepo       repositories.TeamRepositoryInterface
	workCenterRepo repositories.WorkCenterRepositoryInterface
	requestRepo    repositories.RequestRepositoryInterface
	logger         *zap.Logger
}

func NewMaintenanceStore(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	workCenterRepo repositories.WorkCenterRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	logger *zap.Logger,
) *MaintenanceStore {
	return &MaintenanceStore{
		equipmentRepo:  equipmentRepo,
		teamRepo:       teamRepo,
		workCenterRepo: workCenterRepo,
		requestRepo:    requestRepo,
		logger:         logger,
	}
}

// Load обновляет снимок из хранилища. Четыре коллекции читаются параллельно.
func (s *MaintenanceStore) Load(ctx context.Context) error {
	var (
		equipment   []entities.Equipment
		teams       []entities.Team
		workCenters []entities.WorkCenter
		requests    []entities.MaintenanceRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { equipment, err = s.equipmentRepo.GetEquipment(gctx); return })
	g.Go(func() (err error) { teams, err = s.teamRepo.GetTeams(gctx); return })
	g.Go(func() (err error) { workCenters, err = s.workCenterRepo.GetWorkCenters(gctx); return })
	g.Go(func() (err error) { requests, err = s.requestRepo.GetRequests(gctx, types.Filter{Team: "All"}); return })
	if err := g.Wait(); err != nil {
		s.logger.Error("не удалось загрузить снимок данных", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.equipment = equipment
	s.teams = teams
	s.workCenters = workCenters
	s.requests = requests
	s.mu.Unlock()

	s.logger.Info("снимок данных обновлён",
		zap.Int("equipment", len(equipment)),
		zap.Int("teams", len(teams)),
		zap.Int("work_centers", len(workCenters)),
		zap.Int("requests", len(requests)),
	)
	return nil
}

// Equipment возвращает копию коллекции оборудования.
func (s *MaintenanceStore) Equipment() []entities.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Equipment, len(s.equipment))
	copy(out, s.equipment)
	return out
}

// Teams возвращает копию коллекции команд. Списки участников
// копируются отдельно, чтобы не делить память со стором.
func (s *MaintenanceStore) Teams() []entities.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Team, len(s.teams))
	copy(out, s.teams)
	for i := range out {
		members := make([]string, len(out[i].Members))
		copy(members, out[i].Members)
		out[i].Members = members
	}
	return out
}

func (s *MaintenanceStore) WorkCenters() []entities.WorkCenter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.WorkCenter, len(s.workCenters))
	copy(out, s.workCenters)
	return out
}

// Requests возвращает глубокие копии заявок: чек-листы не должны
// делить память со стором.
func (s *MaintenanceStore) Requests() []entities.MaintenanceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.MaintenanceRequest, 0, len(s.requests))
	for i := range s.requests {
		out = append(out, s.requests[i].Clone())
	}
	return out
}

// FindRequest ищет заявку по id в текущем снимке.
func (s *MaintenanceStore) FindRequest(id uint64) (entities.MaintenanceRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.requests {
		if s.requests[i].ID == id {
			return s.requests[i].Clone(), true
		}
	}
	return entities.MaintenanceRequest{}, false
}

// FindEquipmentByName — точное совпадение имени (автозаполнение формы).
func (s *MaintenanceStore) FindEquipmentByName(name string) (entities.Equipment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.equipment {
		if s.equipment[i].Name == name {
			return s.equipment[i], true
		}
	}
	return entities.Equipment{}, false
}

func (s *MaintenanceStore) FindTeamByName(name string) (entities.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.teams {
		if s.teams[i].Name == name {
			team := s.teams[i]
			members := make([]string, len(team.Members))
			copy(members, team.Members)
			team.Members = members
			return team, true
		}
	}
	return entities.Team{}, false
}

// UpsertRequest кладёт заявку в снимок после успешной записи в хранилище.
func (s *MaintenanceStore) UpsertRequest(req entities.MaintenanceRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == req.ID {
			s.requests[i] = req.Clone()
			return
		}
	}
	s.requests = append(s.requests, req.Clone())
}

// RemoveRequest убирает заявку из снимка. Возвращает false, если её не было.
func (s *MaintenanceStore) RemoveRequest(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return true
		}
	}
	return false
}
