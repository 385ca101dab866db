package dto

type CreateWorkCenterDTO struct {
	Name string `json:"name" validate:"required"`
}

type UpdateWorkCenterDTO struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1"`
}

type WorkCenterResponseDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
