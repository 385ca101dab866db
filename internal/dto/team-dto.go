package dto

type CreateTeamDTO struct {
	Name           string   `json:"name" validate:"required"`
	Members        []string `json:"members"`
	Specialization string   `json:"specialization"`
	Company        string   `json:"company"`
	Notes          string   `json:"notes"`
}

type UpdateTeamDTO struct {
	Name           *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Members        *[]string `json:"members,omitempty"`
	Specialization *string   `json:"specialization,omitempty"`
	Company        *string   `json:"company,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
}

type TeamResponseDTO struct {
	ID             uint64   `json:"id"`
	Name           string   `json:"name"`
	Members        []string `json:"members"`
	Specialization string   `json:"specialization"`
	Company        string   `json:"company"`
	Notes          string   `json:"notes"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}
