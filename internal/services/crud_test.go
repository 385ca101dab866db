package services

import (
	"context"
	"testing"

	"maintenance-system/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetEquipmentSearchAndSort(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)
	svc := NewEquipmentService(&fakeEquipmentRepo{list: testEquipment}, env.store, zap.NewNop())

	t.Run("поиск по категории", func(t *testing.T) {
		out, err := svc.GetEquipment(context.Background(), types.Filter{Search: "comput"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Acer Laptop", out[0].Name)
	})

	t.Run("сортировка по имени по убыванию", func(t *testing.T) {
		out, err := svc.GetEquipment(context.Background(), types.Filter{Sort: []types.SortKey{{Field: "name", Direction: "desc"}}})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "Drill Press", out[0].Name)
	})
}

func TestGetEquipmentOpenRequestCount(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)
	svc := NewEquipmentService(&fakeEquipmentRepo{list: testEquipment}, env.store, zap.NewNop())

	created, err := env.workflow.SaveRequest(context.Background(), 0, saveDTO("Шумит", "Acer Laptop"))
	require.NoError(t, err)

	out, err := svc.GetEquipment(context.Background(), types.Filter{})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].OpenRequestCount)
	assert.Equal(t, 0, out[1].OpenRequestCount)

	// Закрытая заявка из счётчика уходит.
	_, err = env.workflow.MoveToStage(context.Background(), created.ID, "Repaired")
	require.NoError(t, err)

	out, err = svc.GetEquipment(context.Background(), types.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 0, out[0].OpenRequestCount)
}

func TestGetTeamsSearchAndSort(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)
	svc := NewTeamService(&fakeTeamRepo{list: testTeams}, env.store, zap.NewNop())

	t.Run("поиск по участнику", func(t *testing.T) {
		out, err := svc.GetTeams(context.Background(), types.Filter{Search: "marc"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Internal Maintenance", out[0].Name)
	})

	t.Run("сортировка по размеру состава", func(t *testing.T) {
		out, err := svc.GetTeams(context.Background(), types.Filter{Sort: []types.SortKey{{Field: "members", Direction: "desc"}}})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "Internal Maintenance", out[0].Name)
	})
}
