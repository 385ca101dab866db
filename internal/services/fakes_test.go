package services

import (
	"context"
	"sync"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/store"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"

	"go.uber.org/zap"
)

// Фиксированная "сегодняшняя" дата для детерминированных тестов.
var testNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uint64]entities.MaintenanceRequest
	nextID   uint64
	failNext error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[uint64]entities.MaintenanceRequest{}, nextID: 1}
}

func (r *fakeRequestRepo) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *fakeRequestRepo) GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.MaintenanceRequest, 0, len(r.requests))
	for id := uint64(1); id < r.nextID; id++ {
		if req, ok := r.requests[id]; ok {
			out = append(out, req.Clone())
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := req.Clone()
	return &out, nil
}

func (r *fakeRequestRepo) CreateRequest(ctx context.Context, req entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	req.ID = r.nextID
	r.nextID++
	r.requests[req.ID] = req.Clone()
	out := req.Clone()
	return &out, nil
}

func (r *fakeRequestRepo) UpdateRequest(ctx context.Context, id uint64, req entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	if _, ok := r.requests[id]; !ok {
		return nil, apperrors.ErrNotFound
	}
	req.ID = id
	r.requests[id] = req.Clone()
	out := req.Clone()
	return &out, nil
}

func (r *fakeRequestRepo) UpdateStage(ctx context.Context, id uint64, stage, completedDate string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Stage = stage
	req.CompletedDate = completedDate
	r.requests[id] = req
	return nil
}

func (r *fakeRequestRepo) DeleteRequest(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.requests[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

type fakeEquipmentRepo struct{ list []entities.Equipment }

func (r *fakeEquipmentRepo) GetEquipment(ctx context.Context) ([]entities.Equipment, error) {
	return r.list, nil
}
func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	for i := range r.list {
		if r.list[i].ID == id {
			return &r.list[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}
func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	return nil, nil
}
func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	return nil, nil
}
func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error { return nil }

type fakeTeamRepo struct{ list []entities.Team }

func (r *fakeTeamRepo) GetTeams(ctx context.Context) ([]entities.Team, error) { return r.list, nil }
func (r *fakeTeamRepo) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	for i := range r.list {
		if r.list[i].ID == id {
			return &r.list[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}
func (r *fakeTeamRepo) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	return nil, nil
}
func (r *fakeTeamRepo) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error) {
	return nil, nil
}
func (r *fakeTeamRepo) DeleteTeam(ctx context.Context, id uint64) error { return nil }

type fakeWorkCenterRepo struct{ list []entities.WorkCenter }

func (r *fakeWorkCenterRepo) GetWorkCenters(ctx context.Context) ([]entities.WorkCenter, error) {
	return r.list, nil
}
func (r *fakeWorkCenterRepo) FindWorkCenter(ctx context.Context, id uint64) (*entities.WorkCenter, error) {
	return nil, apperrors.ErrNotFound
}
func (r *fakeWorkCenterRepo) CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error) {
	return nil, nil
}
func (r *fakeWorkCenterRepo) UpdateWorkCenter(ctx context.Context, id uint64, payload dto.UpdateWorkCenterDTO) (*entities.WorkCenter, error) {
	return nil, nil
}
func (r *fakeWorkCenterRepo) DeleteWorkCenter(ctx context.Context, id uint64) error { return nil }

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]string{}} }

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	}
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

type testEnv struct {
	requestRepo *fakeRequestRepo
	store       *store.MaintenanceStore
	workflow    *WorkflowService
	reporting   *ReportingService
	cache       *fakeCache
}

func newTestEnv(equipment []entities.Equipment, teams []entities.Team) *testEnv {
	logger := zap.NewNop()
	requestRepo := newFakeRequestRepo()
	st := store.NewMaintenanceStore(
		&fakeEquipmentRepo{list: equipment},
		&fakeTeamRepo{list: teams},
		&fakeWorkCenterRepo{},
		requestRepo,
		logger,
	)
	if err := st.Load(context.Background()); err != nil {
		panic(err)
	}
	cache := newFakeCache()
	return &testEnv{
		requestRepo: requestRepo,
		store:       st,
		workflow:    NewWorkflowService(requestRepo, st, logger, fixedNow),
		reporting:   NewReportingService(st, cache, logger, fixedNow, time.Second*30),
		cache:       cache,
	}
}

func (env *testEnv) reload() {
	if err := env.store.Load(context.Background()); err != nil {
		panic(err)
	}
}

func saveDTO(subject, equipment string) dto.SaveRequestDTO {
	return dto.SaveRequestDTO{
		Subject:        subject,
		MaintenanceFor: entities.MaintenanceForEquipment,
		Equipment:      equipment,
	}
}
