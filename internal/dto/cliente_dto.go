package dto

// CrearClienteRequest is used by staff to register customers (and other
// admins). Password is optional for rol=cliente: customers entered at the
// mostrador never log in. For rol=admin it is required (enforced in service).
type CrearClienteRequest struct {
	Telefono  string  `json:"telefono"  validate:"required,min=6"`
	Nombre    string  `json:"nombre"    validate:"required"`
	Domicilio *string `json:"domicilio"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Rol       string  `json:"rol"       validate:"omitempty,oneof=cliente admin"`
	Password  *string `json:"password"  validate:"omitempty,min=6"`
}

type ActualizarClienteRequest struct {
	Telefono  string  `json:"telefono"  validate:"required,min=6"`
	Nombre    string  `json:"nombre"    validate:"required"`
	Domicilio *string `json:"domicilio"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Rol       string  `json:"rol"       validate:"omitempty,oneof=cliente admin"`
	Password  *string `json:"password"  validate:"omitempty,min=6"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Telefono  string  `json:"telefono"`
	Nombre    string  `json:"nombre"`
	Domicilio *string `json:"domicilio"`
	Email     *string `json:"email"`
	Rol       string  `json:"rol"`
	CreatedAt string  `json:"created_at"`
}
