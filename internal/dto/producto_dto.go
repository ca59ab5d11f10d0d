package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"      validate:"required"`
	Precio      decimal.Decimal `json:"precio"      validate:"required"`
	Descripcion *string         `json:"descripcion"`
}

type ActualizarProductoRequest struct {
	Nombre      string          `json:"nombre"      validate:"required"`
	Precio      decimal.Decimal `json:"precio"      validate:"required"`
	Descripcion *string         `json:"descripcion"`
}

// RecetaItemRequest adds or updates one line of a producto's receta.
type RecetaItemRequest struct {
	InsumoID string          `json:"insumo_id" validate:"required,uuid"`
	Cantidad decimal.Decimal `json:"cantidad"  validate:"required"`
	UnidadID string          `json:"unidad_id" validate:"required,uuid"`
}

type RecetaItemResponse struct {
	ID            string          `json:"id"`
	InsumoID      string          `json:"insumo_id"`
	InsumoNombre  string          `json:"insumo_nombre"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	UnidadID      string          `json:"unidad_id"`
	UnidadSimbolo string          `json:"unidad_simbolo"`
}

type ProductoResponse struct {
	ID          string               `json:"id"`
	Nombre      string               `json:"nombre"`
	Precio      decimal.Decimal      `json:"precio"`
	Descripcion *string              `json:"descripcion"`
	Receta      []RecetaItemResponse `json:"receta"`
}
