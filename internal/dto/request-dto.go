package dto

import "maintenance-system/internal/entities"

// SaveRequestDTO — полезная нагрузка формы заявки. Форма всегда шлёт
// полный снимок полей, поэтому create и update используют один DTO.
type SaveRequestDTO struct {
	Subject         string                   `json:"subject" validate:"required"`
	MaintenanceFor  string                   `json:"maintenance_for" validate:"omitempty,oneof='Equipment' 'Work Center'"`
	Equipment       string                   `json:"equipment"`
	EquipmentID     *uint64                  `json:"equipment_id,omitempty"`
	WorkCenter      string                   `json:"work_center"`
	Category        string                   `json:"category"`
	RequestDate     string                   `json:"request_date" validate:"omitempty,datetime=2006-01-02"`
	MaintenanceType string                   `json:"maintenance_type" validate:"omitempty,oneof=Corrective Preventive"`
	Team            string                   `json:"team"`
	Technician      string                   `json:"technician"`
	ScheduledDate   string                   `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime   string                   `json:"scheduled_time"`
	Duration        string                   `json:"duration"`
	Priority        int                      `json:"priority" validate:"omitempty,min=1,max=3"`
	Company         string                   `json:"company"`
	Stage           string                   `json:"stage" validate:"omitempty,oneof=New 'In Progress' Repaired Scrap"`
	Notes           string                   `json:"notes"`
	Instructions    string                   `json:"instructions"`
	Worksheet       []entities.WorksheetItem `json:"worksheet"`
}

type MoveStageDTO struct {
	Stage string `json:"stage" validate:"required,oneof=New 'In Progress' Repaired Scrap"`
}

type WorksheetTitleDTO struct {
	Title string `json:"title"`
}

// PrefillRequestDTO — автозаполнение формы: клиент шлёт текущий снимок
// заявки и имя изменённого селектора, обратно приходит дополненный снимок.
type PrefillRequestDTO struct {
	Field   string                      `json:"field" validate:"required,oneof=equipment team"`
	Value   string                      `json:"value"`
	Request entities.MaintenanceRequest `json:"request"`
}

// StageColumnDTO — колонка канбан-доски.
type StageColumnDTO struct {
	Stage      string                        `json:"stage"`
	StageIndex int                           `json:"stage_index"`
	Requests   []entities.MaintenanceRequest `json:"requests"`
}

type KanbanBoardDTO struct {
	Columns []StageColumnDTO `json:"columns"`
}
