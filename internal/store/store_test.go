package store

import (
	"context"
	"testing"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEquipmentRepo struct{ list []entities.Equipment }

func (r *stubEquipmentRepo) GetEquipment(ctx context.Context) ([]entities.Equipment, error) {
	return r.list, nil
}
func (r *stubEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return nil, apperrors.ErrNotFound
}
func (r *stubEquipmentRepo) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	return nil, nil
}
func (r *stubEquipmentRepo) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	return nil, nil
}
func (r *stubEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error { return nil }

type stubTeamRepo struct{ list []entities.Team }

func (r *stubTeamRepo) GetTeams(ctx context.Context) ([]entities.Team, error) { return r.list, nil }
func (r *stubTeamRepo) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	return nil, apperrors.ErrNotFound
}
func (r *stubTeamRepo) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	return nil, nil
}
func (r *stubTeamRepo) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error) {
	return nil, nil
}
func (r *stubTeamRepo) DeleteTeam(ctx context.Context, id uint64) error { return nil }

type stubWorkCenterRepo struct{}

func (r *stubWorkCenterRepo) GetWorkCenters(ctx context.Context) ([]entities.WorkCenter, error) {
	return []entities.WorkCenter{{ID: 1, Name: "Assembly Line 1"}}, nil
}
func (r *stubWorkCenterRepo) FindWorkCenter(ctx context.Context, id uint64) (*entities.WorkCenter, error) {
	return nil, apperrors.ErrNotFound
}
func (r *stubWorkCenterRepo) CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error) {
	return nil, nil
}
func (r *stubWorkCenterRepo) UpdateWorkCenter(ctx context.Context, id uint64, payload dto.UpdateWorkCenterDTO) (*entities.WorkCenter, error) {
	return nil, nil
}
func (r *stubWorkCenterRepo) DeleteWorkCenter(ctx context.Context, id uint64) error { return nil }

type stubRequestRepo struct{ list []entities.MaintenanceRequest }

func (r *stubRequestRepo) GetRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, error) {
	return r.list, nil
}
func (r *stubRequestRepo) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	return nil, apperrors.ErrNotFound
}
func (r *stubRequestRepo) CreateRequest(ctx context.Context, req entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	return nil, nil
}
func (r *stubRequestRepo) UpdateRequest(ctx context.Context, id uint64, req entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	return nil, nil
}
func (r *stubRequestRepo) UpdateStage(ctx context.Context, id uint64, stage, completedDate string) error {
	return nil
}
func (r *stubRequestRepo) DeleteRequest(ctx context.Context, id uint64) error { return nil }

func newLoadedStore(t *testing.T) *MaintenanceStore {
	t.Helper()
	s := NewMaintenanceStore(
		&stubEquipmentRepo{list: []entities.Equipment{{ID: 1, Name: "Acer Laptop", Category: "Computers"}}},
		&stubTeamRepo{list: []entities.Team{{ID: 1, Name: "Metrology", Members: []string{"Abigail Peterson"}}}},
		&stubWorkCenterRepo{},
		&stubRequestRepo{list: []entities.MaintenanceRequest{
			{ID: 1, Subject: "Leaking pump", Worksheet: []entities.WorksheetItem{{ID: "w1", Title: "Drain"}}},
		}},
		zap.NewNop(),
	)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestLoadPopulatesCollections(t *testing.T) {
	s := newLoadedStore(t)

	assert.Len(t, s.Equipment(), 1)
	assert.Len(t, s.Teams(), 1)
	assert.Len(t, s.WorkCenters(), 1)
	assert.Len(t, s.Requests(), 1)
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := newLoadedStore(t)

	requests := s.Requests()
	requests[0].Subject = "изменено снаружи"
	requests[0].Worksheet[0].Title = "изменено снаружи"

	fresh, ok := s.FindRequest(1)
	require.True(t, ok)
	assert.Equal(t, "Leaking pump", fresh.Subject)
	assert.Equal(t, "Drain", fresh.Worksheet[0].Title)
}

func TestTeamMembersAreCopies(t *testing.T) {
	s := newLoadedStore(t)

	teams := s.Teams()
	require.Len(t, teams, 1)
	teams[0].Members[0] = "изменено снаружи"

	fresh, ok := s.FindTeamByName("Metrology")
	require.True(t, ok)
	assert.Equal(t, []string{"Abigail Peterson"}, fresh.Members)
}

func TestFindByName(t *testing.T) {
	s := newLoadedStore(t)

	eq, ok := s.FindEquipmentByName("Acer Laptop")
	require.True(t, ok)
	assert.Equal(t, "Computers", eq.Category)

	// Точное совпадение, без регистронезависимости.
	_, ok = s.FindEquipmentByName("acer laptop")
	assert.False(t, ok)

	team, ok := s.FindTeamByName("Metrology")
	require.True(t, ok)
	assert.Equal(t, []string{"Abigail Peterson"}, team.Members)

	_, ok = s.FindTeamByName("Unknown")
	assert.False(t, ok)
}

func TestUpsertAndRemove(t *testing.T) {
	s := newLoadedStore(t)

	s.UpsertRequest(entities.MaintenanceRequest{ID: 2, Subject: "Новая"})
	assert.Len(t, s.Requests(), 2)

	s.UpsertRequest(entities.MaintenanceRequest{ID: 2, Subject: "Обновлённая"})
	req, ok := s.FindRequest(2)
	require.True(t, ok)
	assert.Equal(t, "Обновлённая", req.Subject)
	assert.Len(t, s.Requests(), 2)

	assert.True(t, s.RemoveRequest(2))
	assert.False(t, s.RemoveRequest(2))
	assert.Len(t, s.Requests(), 1)
}
