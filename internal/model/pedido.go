package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de pedido. Ver PedidoService para la tabla de transiciones;
// entregado y cancelado son terminales.
const (
	EstadoPendiente     = "pendiente"
	EstadoConfirmado    = "confirmado"
	EstadoEnPreparacion = "en_preparacion"
	EstadoEntregado     = "entregado"
	EstadoCancelado     = "cancelado"
)

// Pedido is a customer order tied to one fecha de producción.
// Total must equal the sum of its detalle subtotals at all times.
// Version implements optimistic locking for concurrent staff edits.
type Pedido struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID         uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaProduccionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado            string    `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Notas             *string
	Total             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Version           int             `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Cliente         *Cliente         `gorm:"foreignKey:ClienteID"`
	FechaProduccion *FechaProduccion `gorm:"foreignKey:FechaProduccionID"`
	Detalle         []PedidoDetalle  `gorm:"foreignKey:PedidoID"`
}

// PedidoDetalle is one order line. PrecioUnitario is a snapshot of the
// producto's price at order time — later price changes must never alter
// historical totals.
type PedidoDetalle struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (PedidoDetalle) TableName() string { return "pedido_detalles" }
