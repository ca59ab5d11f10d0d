package dto

import "github.com/shopspring/decimal"

type CrearUnidadRequest struct {
	Nombre  string `json:"nombre"  validate:"required"`
	Simbolo string `json:"simbolo" validate:"required"`
	Tipo    string `json:"tipo"    validate:"required,oneof=masa volumen unidad"`
}

type UnidadResponse struct {
	ID      string `json:"id"`
	Nombre  string `json:"nombre"`
	Simbolo string `json:"simbolo"`
	Tipo    string `json:"tipo"`
}

// CrearConversionRequest declares 1 unidad_origen = factor unidad_destino.
// Both units must share the same tipo; the reverse direction is derived.
type CrearConversionRequest struct {
	UnidadOrigenID  string          `json:"unidad_origen_id"  validate:"required,uuid"`
	UnidadDestinoID string          `json:"unidad_destino_id" validate:"required,uuid"`
	Factor          decimal.Decimal `json:"factor"            validate:"required"`
}

type ConversionResponse struct {
	ID                   string          `json:"id"`
	UnidadOrigenID       string          `json:"unidad_origen_id"`
	UnidadOrigenSimbolo  string          `json:"unidad_origen_simbolo"`
	UnidadDestinoID      string          `json:"unidad_destino_id"`
	UnidadDestinoSimbolo string          `json:"unidad_destino_simbolo"`
	Factor               decimal.Decimal `json:"factor"`
}
