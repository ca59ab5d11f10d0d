package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de unidad — las conversiones solo son válidas dentro de un mismo tipo.
const (
	TipoMasa    = "masa"
	TipoVolumen = "volumen"
	TipoUnidad  = "unidad" // piezas, docenas, etc.
)

// Unidad is a measurement unit used by insumos and recetas.
type Unidad struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Simbolo   string    `gorm:"not null"`
	Tipo      string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization (unidads → unidades).
func (Unidad) TableName() string { return "unidades" }

// UnidadConversion is a directed edge of the conversion graph:
// 1 unidad_origen = Factor unidad_destino. The converter also walks each
// edge in reverse with factor 1/Factor, so only one direction needs to be
// stored per pair.
type UnidadConversion struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UnidadOrigenID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_conversion_par,unique"`
	UnidadDestinoID uuid.UUID       `gorm:"type:uuid;not null;index:idx_conversion_par,unique"`
	Factor          decimal.Decimal `gorm:"type:decimal(20,10);not null"`
	CreatedAt       time.Time

	UnidadOrigen  *Unidad `gorm:"foreignKey:UnidadOrigenID"`
	UnidadDestino *Unidad `gorm:"foreignKey:UnidadDestinoID"`
}

func (UnidadConversion) TableName() string { return "unidades_conversiones" }
