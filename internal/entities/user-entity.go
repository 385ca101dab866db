package entities

import "maintenance-system/pkg/types"

type User struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Login        string `json:"login"`
	PasswordHash string `json:"-"`

	types.BaseEntity
}
