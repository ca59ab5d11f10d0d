package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReporteService builds the production report: it explodes every non-cancelled
// pedido of a fecha through the recetas, converts units, and prices the
// resulting insumo demand. Always recomputed from current data — never cached —
// and free of side effects, so concurrent builds need no coordination.
type ReporteService interface {
	ReporteProduccion(ctx context.Context, fechaID uuid.UUID) (*dto.ReporteProduccion, error)
	ReportePedido(ctx context.Context, pedidoID uuid.UUID) (*dto.ReportePedido, error)
}

type reporteService struct {
	fechaRepo    repository.FechaProduccionRepository
	pedidoRepo   repository.PedidoRepository
	productoRepo repository.ProductoRepository
	unidades     UnidadService
}

func NewReporteService(
	fechaRepo repository.FechaProduccionRepository,
	pedidoRepo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	unidades UnidadService,
) ReporteService {
	return &reporteService{
		fechaRepo:    fechaRepo,
		pedidoRepo:   pedidoRepo,
		productoRepo: productoRepo,
		unidades:     unidades,
	}
}

func (s *reporteService) ReporteProduccion(ctx context.Context, fechaID uuid.UUID) (*dto.ReporteProduccion, error) {
	fecha, err := s.fechaRepo.FindByID(ctx, fechaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fecha %s: %w", fechaID, ErrNoEncontrado)
		}
		return nil, err
	}

	pedidos, err := s.pedidoRepo.ListByFechaProduccion(ctx, fechaID)
	if err != nil {
		return nil, err
	}

	reporte := &dto.ReporteProduccion{
		FechaProduccionID: fechaID.String(),
		FechaHorneado:     fecha.FechaHorneado.Format(fechaLayout),
		Totales: dto.ReporteTotales{
			TotalVentas:      decimal.Zero,
			CostoInsumos:     decimal.Zero,
			MargenGanancia:   decimal.Zero,
			PorcentajeMargen: decimal.Zero,
		},
		ResumenProductos:  []dto.ResumenProducto{},
		InsumosNecesarios: []dto.InsumoNecesario{},
		Pedidos:           []dto.PedidoResumen{},
	}

	// Paso 1+2: acumular cantidades por producto y ventas, pedidos cancelados
	// quedan fuera de todos los totales. Cero pedidos es un reporte vacío
	// válido, no un error.
	cantidadPorProducto := make(map[uuid.UUID]int)
	totalVentas := decimal.Zero
	for i := range pedidos {
		p := &pedidos[i]
		if p.Estado == model.EstadoCancelado {
			continue
		}
		for j := range p.Detalle {
			d := &p.Detalle[j]
			cantidadPorProducto[d.ProductoID] += d.Cantidad
			totalVentas = totalVentas.Add(d.Subtotal)
		}

		resumen := dto.PedidoResumen{
			ID:    p.ID.String(),
			Total: p.Total,
		}
		if p.Cliente == nil {
			return nil, fmt.Errorf("pedido %s sin cliente: %w", p.ID, ErrIntegridadDatos)
		}
		resumen.ClienteNombre = p.Cliente.Nombre
		resumen.ClienteTelefono = p.Cliente.Telefono
		resumen.Domicilio = p.Cliente.Domicilio
		reporte.Pedidos = append(reporte.Pedidos, resumen)
		reporte.Totales.TotalPedidos++
	}

	// Paso 3: explotar recetas y convertir a la unidad base de cada insumo.
	demanda, err := s.explotarRecetas(ctx, cantidadPorProducto, reporte)
	if err != nil {
		return nil, err
	}

	// Paso 4+5: costear la demanda y cerrar el bloque de totales.
	costoInsumos := decimal.Zero
	for _, d := range demanda {
		costoInsumos = costoInsumos.Add(d.CostoTotal)
		reporte.InsumosNecesarios = append(reporte.InsumosNecesarios, *d)
	}
	sort.Slice(reporte.InsumosNecesarios, func(i, j int) bool {
		return reporte.InsumosNecesarios[i].InsumoNombre < reporte.InsumosNecesarios[j].InsumoNombre
	})

	reporte.Totales.TotalVentas = totalVentas
	reporte.Totales.CostoInsumos = costoInsumos
	reporte.Totales.MargenGanancia = totalVentas.Sub(costoInsumos)
	if !totalVentas.IsZero() {
		reporte.Totales.PorcentajeMargen = reporte.Totales.MargenGanancia.
			Div(totalVentas).Mul(decimal.NewFromInt(100)).Round(4)
	}
	return reporte, nil
}

func (s *reporteService) ReportePedido(ctx context.Context, pedidoID uuid.UUID) (*dto.ReportePedido, error) {
	pedido, err := s.pedidoRepo.FindByID(ctx, pedidoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pedido %s: %w", pedidoID, ErrNoEncontrado)
		}
		return nil, err
	}

	cantidadPorProducto := make(map[uuid.UUID]int, len(pedido.Detalle))
	for i := range pedido.Detalle {
		cantidadPorProducto[pedido.Detalle[i].ProductoID] += pedido.Detalle[i].Cantidad
	}

	scratch := &dto.ReporteProduccion{}
	demanda, err := s.explotarRecetas(ctx, cantidadPorProducto, scratch)
	if err != nil {
		return nil, err
	}

	out := &dto.ReportePedido{
		InsumosNecesarios: []dto.InsumoNecesario{},
		CostoInsumos:      decimal.Zero,
	}
	for _, d := range demanda {
		out.CostoInsumos = out.CostoInsumos.Add(d.CostoTotal)
		out.InsumosNecesarios = append(out.InsumosNecesarios, *d)
	}
	sort.Slice(out.InsumosNecesarios, func(i, j int) bool {
		return out.InsumosNecesarios[i].InsumoNombre < out.InsumosNecesarios[j].InsumoNombre
	})

	out.Pedido = pedidoToResponse(pedido)
	return out, nil
}

// explotarRecetas multiplies every receta line by the accumulated producto
// quantity, converts to each insumo's base unit, and accumulates demand.
// It also fills reporte.ResumenProductos and TotalProductos as it goes.
// A dangling producto or insumo reference aborts the whole build: a silently
// incomplete shopping list would understate the compra.
func (s *reporteService) explotarRecetas(
	ctx context.Context,
	cantidadPorProducto map[uuid.UUID]int,
	reporte *dto.ReporteProduccion,
) (map[uuid.UUID]*dto.InsumoNecesario, error) {
	demanda := make(map[uuid.UUID]*dto.InsumoNecesario)

	// Orden determinístico: mismo reporte, mismas entradas.
	productoIDs := make([]uuid.UUID, 0, len(cantidadPorProducto))
	for id := range cantidadPorProducto {
		productoIDs = append(productoIDs, id)
	}
	sort.Slice(productoIDs, func(i, j int) bool {
		return productoIDs[i].String() < productoIDs[j].String()
	})

	for _, productoID := range productoIDs {
		cantidad := cantidadPorProducto[productoID]
		if cantidad == 0 {
			continue
		}

		producto, err := s.productoRepo.FindByID(ctx, productoID)
		if err != nil {
			return nil, fmt.Errorf("producto %s referenciado por pedidos: %w", productoID, ErrIntegridadDatos)
		}

		reporte.ResumenProductos = append(reporte.ResumenProductos, dto.ResumenProducto{
			ProductoID:     producto.ID.String(),
			ProductoNombre: producto.Nombre,
			CantidadTotal:  cantidad,
		})
		reporte.Totales.TotalProductos += cantidad

		factorCantidad := decimal.NewFromInt(int64(cantidad))
		for i := range producto.Receta {
			item := &producto.Receta[i]
			if item.Insumo == nil || item.Insumo.Unidad == nil {
				return nil, fmt.Errorf("receta de %s con insumo inexistente: %w", producto.Nombre, ErrIntegridadDatos)
			}

			bruto := item.Cantidad.Mul(factorCantidad)
			convertido, err := s.unidades.Convertir(ctx, bruto, item.UnidadID, item.Insumo.UnidadID)
			if err != nil {
				return nil, fmt.Errorf("insumo %s: %w", item.Insumo.Nombre, err)
			}

			d, ok := demanda[item.InsumoID]
			if !ok {
				d = &dto.InsumoNecesario{
					InsumoID:      item.InsumoID.String(),
					InsumoNombre:  item.Insumo.Nombre,
					Cantidad:      decimal.Zero,
					UnidadSimbolo: item.Insumo.Unidad.Simbolo,
					CostoTotal:    decimal.Zero,
				}
				demanda[item.InsumoID] = d
			}
			d.Cantidad = d.Cantidad.Add(convertido)
			d.CostoTotal = d.Cantidad.Mul(item.Insumo.PrecioPorUnidad)
		}
	}

	sort.Slice(reporte.ResumenProductos, func(i, j int) bool {
		return reporte.ResumenProductos[i].ProductoNombre < reporte.ResumenProductos[j].ProductoNombre
	})
	return demanda, nil
}
