package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEquipment = []entities.Equipment{
	{ID: 1, Name: "Acer Laptop", Category: "Computers", Team: "Internal Maintenance"},
	{ID: 2, Name: "Drill Press", Category: "Machines", Team: "Metrology"},
}

var testTeams = []entities.Team{
	{ID: 1, Name: "Internal Maintenance", Members: []string{"Mitchell Admin", "Marc Demo"}},
	{ID: 2, Name: "Subcontractor", Members: []string{}},
}

func TestNewRequestDefaults(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)

	req := env.workflow.NewRequestDefaults(context.Background())

	assert.Equal(t, entities.StageNew, req.Stage)
	assert.Equal(t, entities.PriorityMedium, req.Priority)
	assert.Equal(t, "00:00", req.Duration)
	assert.Equal(t, entities.MaintenanceForEquipment, req.MaintenanceFor)
	assert.Equal(t, entities.MaintenanceTypeCorrective, req.MaintenanceType)
	assert.Equal(t, "2024-05-15", req.RequestDate)
	assert.Equal(t, "2024-05-15", req.CreatedDate)
	assert.Empty(t, req.Worksheet)
}

func TestSaveRequestCreate(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)

	created, err := env.workflow.SaveRequest(context.Background(), 0, saveDTO("Сломан вентилятор", "Acer Laptop"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID)
	assert.Equal(t, entities.StageNew, created.Stage)

	stored, ok := env.store.FindRequest(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Сломан вентилятор", stored.Subject)
}

func TestSaveRequestValidation(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)

	cases := []struct {
		name    string
		payload dto.SaveRequestDTO
	}{
		{"пустая тема", dto.SaveRequestDTO{MaintenanceFor: entities.MaintenanceForEquipment, Equipment: "Acer Laptop"}},
		{"оборудование не выбрано", dto.SaveRequestDTO{Subject: "x", MaintenanceFor: entities.MaintenanceForEquipment}},
		{"оборудование и рабочий центр одновременно", dto.SaveRequestDTO{
			Subject: "x", MaintenanceFor: entities.MaintenanceForEquipment,
			Equipment: "Acer Laptop", WorkCenter: "Assembly Line 1",
		}},
		{"рабочий центр не выбран", dto.SaveRequestDTO{Subject: "x", MaintenanceFor: entities.MaintenanceForWorkCenter}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.workflow.SaveRequest(context.Background(), 0, tc.payload)
			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}

	// Ни одна неудачная попытка не должна ничего записать.
	assert.Empty(t, env.store.Requests())
}

func TestSaveRequestUpdateNotFound(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)

	_, err := env.workflow.SaveRequest(context.Background(), 42, saveDTO("x", "Acer Laptop"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSaveRequestPersistenceFailure(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)

	env.requestRepo.failNext = errors.New("connection reset")
	_, err := env.workflow.SaveRequest(context.Background(), 0, saveDTO("x", "Acer Laptop"))

	var persistenceErr *apperrors.PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	// Модель в памяти осталась как до мутации.
	assert.Empty(t, env.store.Requests())
}

func TestSaveRequestRepairedSetsCompletedDate(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)

	payload := saveDTO("x", "Acer Laptop")
	payload.Stage = entities.StageRepaired
	created, err := env.workflow.SaveRequest(context.Background(), 0, payload)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-15", created.CompletedDate)
}

func TestMoveToStage(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)
	created, err := env.workflow.SaveRequest(context.Background(), 0, saveDTO("x", "Acer Laptop"))
	require.NoError(t, err)

	t.Run("обычный переход", func(t *testing.T) {
		moved, err := env.workflow.MoveToStage(context.Background(), created.ID, entities.StageInProgress)
		require.NoError(t, err)
		assert.Equal(t, entities.StageInProgress, moved.Stage)
		assert.Empty(t, moved.CompletedDate)
	})

	t.Run("переход в ту же стадию идемпотентен", func(t *testing.T) {
		moved, err := env.workflow.MoveToStage(context.Background(), created.ID, entities.StageInProgress)
		require.NoError(t, err)
		assert.Equal(t, entities.StageInProgress, moved.Stage)
	})

	t.Run("вход в Repaired проставляет дату завершения", func(t *testing.T) {
		moved, err := env.workflow.MoveToStage(context.Background(), created.ID, entities.StageRepaired)
		require.NoError(t, err)
		assert.Equal(t, "2024-05-15", moved.CompletedDate)
	})

	t.Run("выход из Repaired очищает дату завершения", func(t *testing.T) {
		moved, err := env.workflow.MoveToStage(context.Background(), created.ID, entities.StageNew)
		require.NoError(t, err)
		assert.Empty(t, moved.CompletedDate)
	})

	t.Run("неизвестная заявка", func(t *testing.T) {
		_, err := env.workflow.MoveToStage(context.Background(), 999, entities.StageScrap)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("неизвестная стадия", func(t *testing.T) {
		_, err := env.workflow.MoveToStage(context.Background(), created.ID, "Done")
		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestSelectEquipment(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)

	t.Run("автозаполнение по найденному оборудованию", func(t *testing.T) {
		req := env.workflow.NewRequestDefaults(context.Background())
		env.workflow.SelectEquipment(&req, "Acer Laptop")

		assert.Equal(t, "Acer Laptop", req.Equipment)
		require.NotNil(t, req.EquipmentID)
		assert.Equal(t, uint64(1), *req.EquipmentID)
		assert.Equal(t, "Computers", req.Category)
		assert.Equal(t, "Internal Maintenance", req.Team)
	})

	t.Run("промах сохраняет только имя", func(t *testing.T) {
		req := env.workflow.NewRequestDefaults(context.Background())
		env.workflow.SelectEquipment(&req, "Неизвестный станок")

		assert.Equal(t, "Неизвестный станок", req.Equipment)
		assert.Nil(t, req.EquipmentID)
		assert.Empty(t, req.Category)
		assert.Empty(t, req.Team)
	})
}

func TestSelectTeam(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)

	req := env.workflow.NewRequestDefaults(context.Background())
	env.workflow.SelectTeam(&req, "Internal Maintenance")
	assert.Equal(t, "Mitchell Admin", req.Technician)

	env.workflow.SelectTeam(&req, "Subcontractor")
	assert.Empty(t, req.Technician)

	env.workflow.SelectTeam(&req, "Internal Maintenance")
	env.workflow.SelectTeam(&req, "")
	assert.Empty(t, req.Technician)
}

func TestWorksheetOperations(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)
	created, err := env.workflow.SaveRequest(context.Background(), 0, saveDTO("x", "Acer Laptop"))
	require.NoError(t, err)

	withItem, err := env.workflow.AddWorksheetItem(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, withItem.Worksheet, 1)
	itemID := withItem.Worksheet[0].ID
	assert.NotEmpty(t, itemID)
	assert.False(t, withItem.Worksheet[0].IsDone)

	second, err := env.workflow.AddWorksheetItem(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, second.Worksheet, 2)
	assert.NotEqual(t, itemID, second.Worksheet[1].ID)

	titled, err := env.workflow.UpdateWorksheetItemTitle(context.Background(), created.ID, itemID, "Проверить фильтр")
	require.NoError(t, err)
	assert.Equal(t, "Проверить фильтр", titled.Worksheet[0].Title)

	toggled, err := env.workflow.ToggleWorksheetItem(context.Background(), created.ID, itemID)
	require.NoError(t, err)
	assert.True(t, toggled.Worksheet[0].IsDone)
	assert.Equal(t, 1, toggled.CompletedCount())
	assert.Equal(t, 2, toggled.TotalCount())

	// Неизвестный пункт — тихий no-op.
	same, err := env.workflow.ToggleWorksheetItem(context.Background(), created.ID, "no-such-id")
	require.NoError(t, err)
	assert.True(t, same.Worksheet[0].IsDone)

	removed, err := env.workflow.RemoveWorksheetItem(context.Background(), created.ID, itemID)
	require.NoError(t, err)
	assert.Len(t, removed.Worksheet, 1)
}

func TestDeleteRequest(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)
	created, err := env.workflow.SaveRequest(context.Background(), 0, saveDTO("x", "Acer Laptop"))
	require.NoError(t, err)

	require.NoError(t, env.workflow.DeleteRequest(context.Background(), created.ID))
	_, ok := env.store.FindRequest(created.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, env.workflow.DeleteRequest(context.Background(), created.ID), apperrors.ErrNotFound)
}

func TestIsOverdue(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)

	cases := []struct {
		name      string
		scheduled string
		stage     string
		want      bool
	}{
		{"просрочена в New", "2024-05-01", entities.StageNew, true},
		{"просрочена в In Progress", "2024-05-01", entities.StageInProgress, true},
		{"Repaired не бывает просрочена", "2024-05-01", entities.StageRepaired, false},
		{"Scrap не бывает просрочена", "2024-05-01", entities.StageScrap, false},
		{"сегодняшняя дата не просрочена", "2024-05-15", entities.StageNew, false},
		{"будущая дата не просрочена", "2024-06-01", entities.StageNew, false},
		{"без плановой даты", "", entities.StageNew, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &entities.MaintenanceRequest{ScheduledDate: tc.scheduled, Stage: tc.stage}
			assert.Equal(t, tc.want, env.workflow.IsOverdue(req))
		})
	}
}

func TestConcurrentSavesSerialize(t *testing.T) {
	env := newTestEnv(testEquipment, testTeams)
	created, err := env.workflow.SaveRequest(context.Background(), 0, saveDTO("начальная", "Acer Laptop"))
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			payload := saveDTO(fmt.Sprintf("версия %d", n), "Acer Laptop")
			_, err := env.workflow.SaveRequest(context.Background(), created.ID, payload)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Гонка двух сохранений не должна ни потерять заявку, ни породить дубль.
	stored, ok := env.store.FindRequest(created.ID)
	require.True(t, ok)
	assert.Contains(t, stored.Subject, "версия")
	assert.Len(t, env.store.Requests(), 1)
}
