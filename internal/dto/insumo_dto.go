package dto

import "github.com/shopspring/decimal"

type CrearInsumoRequest struct {
	Nombre          string          `json:"nombre"            validate:"required"`
	UnidadID        string          `json:"unidad_id"         validate:"required,uuid"`
	PrecioPorUnidad decimal.Decimal `json:"precio_por_unidad" validate:"required"`
	StockActual     decimal.Decimal `json:"stock_actual"      validate:"min=0"`
}

type ActualizarInsumoRequest struct {
	Nombre          string          `json:"nombre"            validate:"required"`
	UnidadID        string          `json:"unidad_id"         validate:"required,uuid"`
	PrecioPorUnidad decimal.Decimal `json:"precio_por_unidad" validate:"required"`
	StockActual     decimal.Decimal `json:"stock_actual"      validate:"min=0"`
}

// AjustarStockRequest increments (or decrements, negative delta) stock_actual.
type AjustarStockRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Motivo string          `json:"motivo"`
}

type InsumoResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	UnidadID        string          `json:"unidad_id"`
	UnidadSimbolo   string          `json:"unidad_simbolo"`
	PrecioPorUnidad decimal.Decimal `json:"precio_por_unidad"`
	StockActual     decimal.Decimal `json:"stock_actual"`
}
