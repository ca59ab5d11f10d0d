package dto

type LoginRequest struct {
	Telefono string `json:"telefono" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest self-registers a customer account. Rol is always "cliente";
// admin accounts are created through POST /api/clientes by another admin.
type RegisterRequest struct {
	Telefono  string  `json:"telefono"  validate:"required,min=6"`
	Nombre    string  `json:"nombre"    validate:"required"`
	Password  string  `json:"password"  validate:"required,min=6"`
	Domicilio *string `json:"domicilio"`
	Email     *string `json:"email"     validate:"omitempty,email"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         ClienteResponse `json:"user"`
}
