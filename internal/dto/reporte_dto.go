package dto

import "github.com/shopspring/decimal"

// ─── Reporte de producción ───────────────────────────────────────────────────
// Shape consumed by the Reportes screen: a totals block, a per-product
// production summary, the shopping list of insumos, and the order roster.

type ReporteTotales struct {
	TotalPedidos     int             `json:"total_pedidos"`
	TotalProductos   int             `json:"total_productos"`
	TotalVentas      decimal.Decimal `json:"total_ventas"`
	CostoInsumos     decimal.Decimal `json:"costo_insumos"`
	MargenGanancia   decimal.Decimal `json:"margen_ganancia"`
	PorcentajeMargen decimal.Decimal `json:"porcentaje_margen"`
}

type ResumenProducto struct {
	ProductoID     string `json:"producto_id"`
	ProductoNombre string `json:"producto_nombre"`
	CantidadTotal  int    `json:"cantidad_total"`
}

type InsumoNecesario struct {
	InsumoID      string          `json:"insumo_id"`
	InsumoNombre  string          `json:"insumo_nombre"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	UnidadSimbolo string          `json:"unidad_simbolo"`
	CostoTotal    decimal.Decimal `json:"costo_total"`
}

type PedidoResumen struct {
	ID              string          `json:"id"`
	ClienteNombre   string          `json:"cliente_nombre"`
	ClienteTelefono string          `json:"cliente_telefono"`
	Domicilio       *string         `json:"domicilio"`
	Total           decimal.Decimal `json:"total"`
}

type ReporteProduccion struct {
	FechaProduccionID string            `json:"fecha_produccion_id"`
	FechaHorneado     string            `json:"fecha_horneado"`
	Totales           ReporteTotales    `json:"totales"`
	ResumenProductos  []ResumenProducto `json:"resumen_productos"`
	InsumosNecesarios []InsumoNecesario `json:"insumos_necesarios"`
	Pedidos           []PedidoResumen   `json:"pedidos"`
}

// ─── Reporte de pedido individual ────────────────────────────────────────────

type ReportePedido struct {
	Pedido            PedidoResponse    `json:"pedido"`
	InsumosNecesarios []InsumoNecesario `json:"insumos_necesarios"`
	CostoInsumos      decimal.Decimal   `json:"costo_insumos"`
}
