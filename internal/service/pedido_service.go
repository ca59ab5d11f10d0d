package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"
	"github.com/cuevasfm/pan-backend/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// transicionesValidas is the pedido lifecycle:
// pendiente → confirmado → en_preparacion → entregado, with cancelado
// reachable from any non-terminal state. entregado and cancelado are terminal.
var transicionesValidas = map[string][]string{
	model.EstadoPendiente:     {model.EstadoConfirmado, model.EstadoCancelado},
	model.EstadoConfirmado:    {model.EstadoEnPreparacion, model.EstadoCancelado},
	model.EstadoEnPreparacion: {model.EstadoEntregado, model.EstadoCancelado},
	model.EstadoEntregado:     {},
	model.EstadoCancelado:     {},
}

func transicionPermitida(desde, hasta string) bool {
	for _, s := range transicionesValidas[desde] {
		if s == hasta {
			return true
		}
	}
	return false
}

type PedidoService interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context) ([]dto.PedidoResponse, error)
	ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.PedidoResponse, error)
	ListarPorFechaProduccion(ctx context.Context, fechaID uuid.UUID) ([]dto.PedidoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error)
	// Cancelar implements DELETE /api/pedidos/{id}: pedidos are never
	// physically removed, only cancelled. A second cancel is rejected.
	Cancelar(ctx context.Context, id uuid.UUID) error
}

type pedidoService struct {
	repo         repository.PedidoRepository
	clienteRepo  repository.ClienteRepository
	fechaRepo    repository.FechaProduccionRepository
	productoRepo repository.ProductoRepository
	notifRepo    repository.NotificacionRepository
	dispatcher   *worker.Dispatcher // nil in unit tests — notifications skipped
}

func NewPedidoService(
	repo repository.PedidoRepository,
	clienteRepo repository.ClienteRepository,
	fechaRepo repository.FechaProduccionRepository,
	productoRepo repository.ProductoRepository,
	notifRepo repository.NotificacionRepository,
	dispatcher *worker.Dispatcher,
) PedidoService {
	return &pedidoService{
		repo:         repo,
		clienteRepo:  clienteRepo,
		fechaRepo:    fechaRepo,
		productoRepo: productoRepo,
		notifRepo:    notifRepo,
		dispatcher:   dispatcher,
	}
}

func (s *pedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, Validacion("cliente_id invalido")
	}
	fechaID, err := uuid.Parse(req.FechaProduccionID)
	if err != nil {
		return nil, Validacion("fecha_produccion_id invalido")
	}

	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", req.ClienteID, ErrNoEncontrado)
	}
	fecha, err := s.fechaRepo.FindByID(ctx, fechaID)
	if err != nil {
		return nil, fmt.Errorf("fecha %s: %w", req.FechaProduccionID, ErrNoEncontrado)
	}
	if err := validarFechaAbierta(fecha); err != nil {
		return nil, err
	}

	detalle, total, err := s.resolverDetalle(ctx, req.Detalle, nil)
	if err != nil {
		return nil, err
	}

	pedido := &model.Pedido{
		ClienteID:         clienteID,
		FechaProduccionID: fechaID,
		Estado:            model.EstadoPendiente,
		Notas:             req.Notas,
		Total:             total,
		Version:           1,
		Detalle:           detalle,
	}
	if err := s.repo.Create(ctx, pedido); err != nil {
		return nil, err
	}

	pedido.Cliente = cliente
	pedido.FechaProduccion = fecha
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pedido %s: %w", id, ErrNoEncontrado)
		}
		return nil, err
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) Listar(ctx context.Context) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return pedidosToResponses(pedidos), nil
}

func (s *pedidoService) ListarPorCliente(ctx context.Context, clienteID uuid.UUID) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.ListByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	return pedidosToResponses(pedidos), nil
}

func (s *pedidoService) ListarPorFechaProduccion(ctx context.Context, fechaID uuid.UUID) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.ListByFechaProduccion(ctx, fechaID)
	if err != nil {
		return nil, err
	}
	return pedidosToResponses(pedidos), nil
}

func (s *pedidoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pedido %s: %w", id, ErrNoEncontrado)
	}
	if pedido.Estado == model.EstadoEntregado || pedido.Estado == model.EstadoCancelado {
		return nil, fmt.Errorf("estado %s: %w", pedido.Estado, ErrPedidoInmutable)
	}

	fechaID, err := uuid.Parse(req.FechaProduccionID)
	if err != nil {
		return nil, Validacion("fecha_produccion_id invalido")
	}
	if fechaID != pedido.FechaProduccionID {
		fecha, err := s.fechaRepo.FindByID(ctx, fechaID)
		if err != nil {
			return nil, fmt.Errorf("fecha %s: %w", req.FechaProduccionID, ErrNoEncontrado)
		}
		if err := validarFechaAbierta(fecha); err != nil {
			return nil, err
		}
	}

	// Lineas que ya estaban en el pedido conservan su precio histórico;
	// productos nuevos toman snapshot del precio vigente.
	preciosPrevios := make(map[uuid.UUID]decimal.Decimal, len(pedido.Detalle))
	for i := range pedido.Detalle {
		preciosPrevios[pedido.Detalle[i].ProductoID] = pedido.Detalle[i].PrecioUnitario
	}
	detalle, total, err := s.resolverDetalle(ctx, req.Detalle, preciosPrevios)
	if err != nil {
		return nil, err
	}

	expectedVersion := pedido.Version
	if req.Version != nil {
		expectedVersion = *req.Version
	}

	pedido.FechaProduccionID = fechaID
	pedido.Notas = req.Notas
	pedido.Total = total
	pedido.Detalle = detalle

	if err := s.repo.UpdateConVersion(ctx, pedido, expectedVersion); err != nil {
		if errors.Is(err, repository.ErrVersionDesactualizada) {
			return nil, ErrConflictoVersion
		}
		return nil, err
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *pedidoService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pedido %s: %w", id, ErrNoEncontrado)
	}
	if estado == model.EstadoCancelado && pedido.Estado == model.EstadoCancelado {
		return nil, ErrPedidoYaCancelado
	}
	if !transicionPermitida(pedido.Estado, estado) {
		return nil, fmt.Errorf("%s → %s: %w", pedido.Estado, estado, ErrTransicionEstado)
	}

	if err := s.repo.UpdateEstado(ctx, id, estado); err != nil {
		return nil, err
	}
	pedido.Estado = estado

	if estado == model.EstadoConfirmado {
		s.notificarConfirmacion(ctx, pedido)
	}

	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) Cancelar(ctx context.Context, id uuid.UUID) error {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("pedido %s: %w", id, ErrNoEncontrado)
	}
	if pedido.Estado == model.EstadoCancelado {
		return ErrPedidoYaCancelado
	}
	if !transicionPermitida(pedido.Estado, model.EstadoCancelado) {
		return fmt.Errorf("%s → cancelado: %w", pedido.Estado, ErrTransicionEstado)
	}
	return s.repo.UpdateEstado(ctx, id, model.EstadoCancelado)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// validarFechaAbierta gates pedido creation: the fecha must be flagged
// abierta and today must not be past the fecha límite (inclusive).
func validarFechaAbierta(f *model.FechaProduccion) error {
	if !f.Abierta {
		return fmt.Errorf("fecha cerrada: %w", ErrFechaCerrada)
	}
	hoy := time.Now().UTC().Truncate(24 * time.Hour)
	if hoy.After(f.FechaLimite) {
		return fmt.Errorf("fecha límite vencida: %w", ErrFechaCerrada)
	}
	return nil
}

// resolverDetalle validates producto references, applies price snapshots and
// computes subtotals. preciosPrevios carries the historical snapshots to keep
// when editing an existing pedido; nil on creation.
func (s *pedidoService) resolverDetalle(
	ctx context.Context,
	items []dto.DetalleItemRequest,
	preciosPrevios map[uuid.UUID]decimal.Decimal,
) ([]model.PedidoDetalle, decimal.Decimal, error) {
	detalle := make([]model.PedidoDetalle, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		productoID, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, decimal.Zero, Validacion("producto_id invalido")
		}

		precio, ok := preciosPrevios[productoID]
		if !ok {
			producto, err := s.productoRepo.FindByID(ctx, productoID)
			if err != nil {
				return nil, decimal.Zero, fmt.Errorf("producto %s: %w", item.ProductoID, ErrNoEncontrado)
			}
			precio = producto.Precio
		}

		subtotal := precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		total = total.Add(subtotal)
		detalle = append(detalle, model.PedidoDetalle{
			ProductoID:     productoID,
			Cantidad:       item.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       subtotal,
		})
	}
	return detalle, total, nil
}

// notificarConfirmacion persists the outbox row and enqueues the email job.
// Best effort: a notification failure never fails the estado change.
func (s *pedidoService) notificarConfirmacion(ctx context.Context, pedido *model.Pedido) {
	if s.dispatcher == nil || s.notifRepo == nil {
		return
	}
	if pedido.Cliente == nil || pedido.Cliente.Email == nil || *pedido.Cliente.Email == "" {
		return
	}

	notif := &model.Notificacion{
		PedidoID: pedido.ID,
		Email:    *pedido.Cliente.Email,
		Asunto:   "Tu pedido fue confirmado",
		Cuerpo: fmt.Sprintf("Hola %s! Tu pedido por $%s fue confirmado.",
			pedido.Cliente.Nombre, pedido.Total.StringFixed(2)),
		Estado: model.NotifPendiente,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Error().Err(err).Str("pedido_id", pedido.ID.String()).Msg("no se pudo crear la notificacion")
		return
	}
	if err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{NotificacionID: notif.ID.String()}); err != nil {
		log.Error().Err(err).Str("notificacion_id", notif.ID.String()).Msg("no se pudo encolar el email")
	}
}

func pedidoToResponse(p *model.Pedido) dto.PedidoResponse {
	resp := dto.PedidoResponse{
		ID:                p.ID.String(),
		ClienteID:         p.ClienteID.String(),
		FechaProduccionID: p.FechaProduccionID.String(),
		Estado:            p.Estado,
		Notas:             p.Notas,
		Total:             p.Total,
		Version:           p.Version,
		Detalle:           make([]dto.DetalleItemResponse, 0, len(p.Detalle)),
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
	if p.Cliente != nil {
		resp.ClienteNombre = p.Cliente.Nombre
		resp.ClienteTelefono = p.Cliente.Telefono
	}
	if p.FechaProduccion != nil {
		resp.FechaHorneado = p.FechaProduccion.FechaHorneado.Format(fechaLayout)
	}
	for i := range p.Detalle {
		d := &p.Detalle[i]
		item := dto.DetalleItemResponse{
			ProductoID:     d.ProductoID.String(),
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		}
		if d.Producto != nil {
			item.ProductoNombre = d.Producto.Nombre
		}
		resp.Detalle = append(resp.Detalle, item)
	}
	return resp
}

func pedidosToResponses(pedidos []model.Pedido) []dto.PedidoResponse {
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, pedidoToResponse(&pedidos[i]))
	}
	return out
}
