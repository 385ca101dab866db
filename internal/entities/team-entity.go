package entities

import "maintenance-system/pkg/types"

type Team struct {
	ID             uint64   `json:"id"`
	Name           string   `json:"name"`
	Members        []string `json:"members"`
	Specialization string   `json:"specialization"`
	Company        string   `json:"company"`
	Notes          string   `json:"notes"`

	types.BaseEntity
}
