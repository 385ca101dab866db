package dto

type LoginDTO struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type MeDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
}
