package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetalleItemRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type CrearPedidoRequest struct {
	ClienteID         string               `json:"cliente_id"          validate:"required,uuid"`
	FechaProduccionID string               `json:"fecha_produccion_id" validate:"required,uuid"`
	Notas             *string              `json:"notas"`
	Detalle           []DetalleItemRequest `json:"detalle" validate:"required,min=1,dive"`
}

// ActualizarPedidoRequest replaces the detalle of a non-terminal pedido.
// Version, when provided, enables the optimistic-concurrency check: a stale
// version is rejected instead of silently overwriting a concurrent edit.
type ActualizarPedidoRequest struct {
	FechaProduccionID string               `json:"fecha_produccion_id" validate:"required,uuid"`
	Notas             *string              `json:"notas"`
	Detalle           []DetalleItemRequest `json:"detalle" validate:"required,min=1,dive"`
	Version           *int                 `json:"version" validate:"omitempty,min=1"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente confirmado en_preparacion entregado cancelado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleItemResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PedidoResponse struct {
	ID                string                `json:"id"`
	ClienteID         string                `json:"cliente_id"`
	ClienteNombre     string                `json:"cliente_nombre"`
	ClienteTelefono   string                `json:"cliente_telefono"`
	FechaProduccionID string                `json:"fecha_produccion_id"`
	FechaHorneado     string                `json:"fecha_horneado"`
	Estado            string                `json:"estado"`
	Notas             *string               `json:"notas"`
	Total             decimal.Decimal       `json:"total"`
	Version           int                   `json:"version"`
	Detalle           []DetalleItemResponse `json:"detalle"`
	CreatedAt         string                `json:"created_at"`
}
