package entities

import (
	"maintenance-system/pkg/types"
)

type Equipment struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
	Department   string `json:"department"`
	Company      string `json:"company"`
	Employee     string `json:"employee"`
	Technician   string `json:"technician"`
	Team         string `json:"team"`

	types.BaseEntity
}
