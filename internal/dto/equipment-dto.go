package dto

type CreateEquipmentDTO struct {
	Name         string `json:"name" validate:"required"`
	SerialNumber string `json:"serial_number" validate:"required"`
	Category     string `json:"category"`
	Department   string `json:"department"`
	Company      string `json:"company"`
	Employee     string `json:"employee"`
	Technician   string `json:"technician"`
	Team         string `json:"team"`
}

type UpdateEquipmentDTO struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1"`
	SerialNumber *string `json:"serial_number,omitempty" validate:"omitempty,min=1"`
	Category     *string `json:"category,omitempty"`
	Department   *string `json:"department,omitempty"`
	Company      *string `json:"company,omitempty"`
	Employee     *string `json:"employee,omitempty"`
	Technician   *string `json:"technician,omitempty"`
	Team         *string `json:"team,omitempty"`
}

type EquipmentResponseDTO struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	SerialNumber     string `json:"serial_number"`
	Category         string `json:"category"`
	Department       string `json:"department"`
	Company          string `json:"company"`
	Employee         string `json:"employee"`
	Technician       string `json:"technician"`
	Team             string `json:"team"`
	OpenRequestCount int    `json:"open_request_count"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}
