package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable bakery item. Its receta lists the insumos needed to
// produce ONE unit; a producto may have zero receta items (its ingredient cost
// is then treated as zero).
type Producto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string          `gorm:"index;not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Descripcion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Receta []RecetaItem `gorm:"foreignKey:ProductoID"`
}

// RecetaItem is one line of a producto's receta: Cantidad of Insumo expressed
// in Unidad, per single unit of producto.
type RecetaItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InsumoID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad   decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	UnidadID   uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt  time.Time

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
	Unidad *Unidad `gorm:"foreignKey:UnidadID"`
}

func (RecetaItem) TableName() string { return "receta_items" }
