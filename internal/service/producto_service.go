package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// Receta subresource
	AgregarRecetaItem(ctx context.Context, productoID uuid.UUID, req dto.RecetaItemRequest) (*dto.ProductoResponse, error)
	ActualizarRecetaItem(ctx context.Context, productoID, itemID uuid.UUID, req dto.RecetaItemRequest) (*dto.ProductoResponse, error)
	EliminarRecetaItem(ctx context.Context, productoID, itemID uuid.UUID) error
}

type productoService struct {
	repo       repository.ProductoRepository
	insumoRepo repository.InsumoRepository
	unidadRepo repository.UnidadRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	insumoRepo repository.InsumoRepository,
	unidadRepo repository.UnidadRepository,
) ProductoService {
	return &productoService{repo: repo, insumoRepo: insumoRepo, unidadRepo: unidadRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio.IsNegative() {
		return nil, Validacion("el precio no puede ser negativo")
	}
	p := &model.Producto{
		Nombre:      req.Nombre,
		Precio:      req.Precio,
		Descripcion: req.Descripcion,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("producto %s: %w", id, ErrNoEncontrado)
		}
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, productoToResponse(&productos[i]))
	}
	return out, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", id, ErrNoEncontrado)
	}
	if req.Precio.IsNegative() {
		return nil, Validacion("el precio no puede ser negativo")
	}

	// Cambiar el precio NO toca pedidos existentes: cada detalle guarda su
	// propio snapshot de precio_unitario.
	p.Nombre = req.Nombre
	p.Precio = req.Precio
	p.Descripcion = req.Descripcion

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("producto %s: %w", id, ErrNoEncontrado)
	}
	n, err := s.repo.CountPedidoRefs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("producto en %d pedidos: %w", n, ErrEnUso)
	}
	return s.repo.Delete(ctx, id)
}

func (s *productoService) AgregarRecetaItem(ctx context.Context, productoID uuid.UUID, req dto.RecetaItemRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByID(ctx, productoID); err != nil {
		return nil, fmt.Errorf("producto %s: %w", productoID, ErrNoEncontrado)
	}
	insumoID, unidadID, err := s.validarRecetaItem(ctx, req)
	if err != nil {
		return nil, err
	}

	item := &model.RecetaItem{
		ProductoID: productoID,
		InsumoID:   insumoID,
		Cantidad:   req.Cantidad,
		UnidadID:   unidadID,
	}
	if err := s.repo.CreateRecetaItem(ctx, item); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, productoID)
}

func (s *productoService) ActualizarRecetaItem(ctx context.Context, productoID, itemID uuid.UUID, req dto.RecetaItemRequest) (*dto.ProductoResponse, error) {
	item, err := s.repo.FindRecetaItem(ctx, productoID, itemID)
	if err != nil {
		return nil, fmt.Errorf("receta item %s: %w", itemID, ErrNoEncontrado)
	}
	insumoID, unidadID, err := s.validarRecetaItem(ctx, req)
	if err != nil {
		return nil, err
	}

	item.InsumoID = insumoID
	item.Cantidad = req.Cantidad
	item.UnidadID = unidadID
	if err := s.repo.UpdateRecetaItem(ctx, item); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, productoID)
}

func (s *productoService) EliminarRecetaItem(ctx context.Context, productoID, itemID uuid.UUID) error {
	if _, err := s.repo.FindRecetaItem(ctx, productoID, itemID); err != nil {
		return fmt.Errorf("receta item %s: %w", itemID, ErrNoEncontrado)
	}
	return s.repo.DeleteRecetaItem(ctx, productoID, itemID)
}

// validarRecetaItem checks references and that the receta unit is of the same
// tipo as the insumo's base unit — otherwise the report aggregation would be
// doomed to fail later with ErrUnidadesIncompatibles.
func (s *productoService) validarRecetaItem(ctx context.Context, req dto.RecetaItemRequest) (insumoID, unidadID uuid.UUID, err error) {
	insumoID, err = uuid.Parse(req.InsumoID)
	if err != nil {
		return uuid.Nil, uuid.Nil, Validacion("insumo_id invalido")
	}
	unidadID, err = uuid.Parse(req.UnidadID)
	if err != nil {
		return uuid.Nil, uuid.Nil, Validacion("unidad_id invalido")
	}
	if !req.Cantidad.IsPositive() {
		return uuid.Nil, uuid.Nil, Validacion("la cantidad debe ser mayor que cero")
	}

	insumo, err := s.insumoRepo.FindByID(ctx, insumoID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("insumo %s: %w", req.InsumoID, ErrNoEncontrado)
	}
	unidad, err := s.unidadRepo.FindByID(ctx, unidadID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("unidad %s: %w", req.UnidadID, ErrNoEncontrado)
	}
	if insumo.Unidad != nil && insumo.Unidad.Tipo != unidad.Tipo {
		return uuid.Nil, uuid.Nil, fmt.Errorf("receta en %s, insumo en %s: %w",
			unidad.Tipo, insumo.Unidad.Tipo, ErrUnidadesIncompatibles)
	}
	return insumoID, unidadID, nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Precio:      p.Precio,
		Descripcion: p.Descripcion,
		Receta:      make([]dto.RecetaItemResponse, 0, len(p.Receta)),
	}
	for i := range p.Receta {
		item := &p.Receta[i]
		r := dto.RecetaItemResponse{
			ID:       item.ID.String(),
			InsumoID: item.InsumoID.String(),
			Cantidad: item.Cantidad,
			UnidadID: item.UnidadID.String(),
		}
		if item.Insumo != nil {
			r.InsumoNombre = item.Insumo.Nombre
		}
		if item.Unidad != nil {
			r.UnidadSimbolo = item.Unidad.Simbolo
		}
		resp.Receta = append(resp.Receta, r)
	}
	return resp
}
