package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Insumo is a raw material (harina, manteca, huevos…).
// PrecioPorUnidad is always expressed per ONE unit of its declared base unit;
// recipe quantities are converted to that base unit before any aggregation.
type Insumo struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string          `gorm:"index;not null"`
	UnidadID        uuid.UUID       `gorm:"type:uuid;not null"`
	PrecioPorUnidad decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	StockActual     decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Unidad *Unidad `gorm:"foreignKey:UnidadID"`
}
