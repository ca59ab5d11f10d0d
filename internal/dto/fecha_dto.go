package dto

// Fechas travel as YYYY-MM-DD strings (parsed in the service layer).

type CrearFechaRequest struct {
	FechaHorneado string  `json:"fecha_horneado" validate:"required,datetime=2006-01-02"`
	FechaLimite   string  `json:"fecha_limite"   validate:"required,datetime=2006-01-02"`
	Abierta       *bool   `json:"abierta"`
	Notas         *string `json:"notas"`
}

type ActualizarFechaRequest struct {
	FechaHorneado string  `json:"fecha_horneado" validate:"required,datetime=2006-01-02"`
	FechaLimite   string  `json:"fecha_limite"   validate:"required,datetime=2006-01-02"`
	Abierta       *bool   `json:"abierta"`
	Notas         *string `json:"notas"`
}

type FechaResponse struct {
	ID            string  `json:"id"`
	FechaHorneado string  `json:"fecha_horneado"`
	FechaLimite   string  `json:"fecha_limite"`
	Abierta       bool    `json:"abierta"`
	Notas         *string `json:"notas"`
}
