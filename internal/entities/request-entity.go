package entities

import "maintenance-system/pkg/types"

// Стадии заявки. Порядок фиксирован и используется для прогресс-бара,
// переходы между стадиями свободные (канбан позволяет любое перетаскивание).
const (
	StageNew        = "New"
	StageInProgress = "In Progress"
	StageRepaired   = "Repaired"
	StageScrap      = "Scrap"
)

var Stages = []string{StageNew, StageInProgress, StageRepaired, StageScrap}

// StageIndex — позиция стадии в списке Stages, -1 для неизвестной.
// Только для отрисовки степпера, не для валидации переходов.
func StageIndex(stage string) int {
	for i, s := range Stages {
		if s == stage {
			return i
		}
	}
	return -1
}

func IsValidStage(stage string) bool {
	return StageIndex(stage) >= 0
}

// Цель обслуживания: оборудование либо рабочий центр, ровно одно из двух.
const (
	MaintenanceForEquipment  = "Equipment"
	MaintenanceForWorkCenter = "Work Center"
)

const (
	MaintenanceTypeCorrective = "Corrective"
	MaintenanceTypePreventive = "Preventive"
)

const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// WorksheetItem — пункт чек-листа заявки. Принадлежит ровно одной заявке,
// id уникален в пределах заявки.
type WorksheetItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	IsDone bool   `json:"is_done"`
}

// MaintenanceRequest — заявка на обслуживание. Поля equipment/category/team —
// денормализованный снимок на момент выбора оборудования, не живая ссылка.
type MaintenanceRequest struct {
	ID              uint64          `json:"id"`
	Subject         string          `json:"subject"`
	CreatedBy       string          `json:"created_by"`
	MaintenanceFor  string          `json:"maintenance_for"`
	Equipment       string          `json:"equipment"`
	EquipmentID     *uint64         `json:"equipment_id"`
	WorkCenter      string          `json:"work_center"`
	Category        string          `json:"category"`
	RequestDate     string          `json:"request_date"`
	CreatedDate     string          `json:"created_date"`
	MaintenanceType string          `json:"maintenance_type"`
	Team            string          `json:"team"`
	Technician      string          `json:"technician"`
	ScheduledDate   string          `json:"scheduled_date"`
	ScheduledTime   string          `json:"scheduled_time"`
	Duration        string          `json:"duration"`
	Priority        int             `json:"priority"`
	Company         string          `json:"company"`
	Stage           string          `json:"stage"`
	CompletedDate   string          `json:"completed_date"`
	Notes           string          `json:"notes"`
	Instructions    string          `json:"instructions"`
	Worksheet       []WorksheetItem `json:"worksheet"`

	types.BaseEntity
}

// CompletedCount — количество выполненных пунктов чек-листа.
func (r *MaintenanceRequest) CompletedCount() int {
	n := 0
	for _, item := range r.Worksheet {
		if item.IsDone {
			n++
		}
	}
	return n
}

func (r *MaintenanceRequest) TotalCount() int {
	return len(r.Worksheet)
}

// Clone возвращает глубокую копию заявки. Снимки из стора не должны
// делить слайс чек-листа с оригиналом.
func (r *MaintenanceRequest) Clone() MaintenanceRequest {
	clone := *r
	if r.Worksheet != nil {
		clone.Worksheet = make([]WorksheetItem, len(r.Worksheet))
		copy(clone.Worksheet, r.Worksheet)
	}
	if r.EquipmentID != nil {
		id := *r.EquipmentID
		clone.EquipmentID = &id
	}
	return clone
}
