package model

import (
	"time"

	"github.com/google/uuid"
)

// FechaProduccion is a scheduled bake date. Pedidos target exactly one fecha
// and may only be created while Abierta is true and before FechaLimite.
type FechaProduccion struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaHorneado time.Time `gorm:"type:date;not null;index"`
	FechaLimite   time.Time `gorm:"type:date;not null"`
	Abierta       bool      `gorm:"not null;default:true"`
	Notas         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default pluralization.
func (FechaProduccion) TableName() string { return "fechas_produccion" }
