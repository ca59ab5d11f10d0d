package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InsumoService interface {
	Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error)
	Listar(ctx context.Context) ([]dto.InsumoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*dto.InsumoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type insumoService struct {
	repo       repository.InsumoRepository
	unidadRepo repository.UnidadRepository
}

func NewInsumoService(repo repository.InsumoRepository, unidadRepo repository.UnidadRepository) InsumoService {
	return &insumoService{repo: repo, unidadRepo: unidadRepo}
}

func (s *insumoService) Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	unidadID, err := uuid.Parse(req.UnidadID)
	if err != nil {
		return nil, Validacion("unidad_id invalido")
	}
	unidad, err := s.unidadRepo.FindByID(ctx, unidadID)
	if err != nil {
		return nil, fmt.Errorf("unidad %s: %w", req.UnidadID, ErrNoEncontrado)
	}
	if req.PrecioPorUnidad.IsNegative() {
		return nil, Validacion("precio_por_unidad no puede ser negativo")
	}

	insumo := &model.Insumo{
		Nombre:          req.Nombre,
		UnidadID:        unidadID,
		PrecioPorUnidad: req.PrecioPorUnidad,
		StockActual:     req.StockActual,
	}
	if err := s.repo.Create(ctx, insumo); err != nil {
		return nil, err
	}
	insumo.Unidad = unidad
	resp := insumoToResponse(insumo)
	return &resp, nil
}

func (s *insumoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error) {
	insumo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("insumo %s: %w", id, ErrNoEncontrado)
		}
		return nil, err
	}
	resp := insumoToResponse(insumo)
	return &resp, nil
}

func (s *insumoService) Listar(ctx context.Context) ([]dto.InsumoResponse, error) {
	insumos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InsumoResponse, 0, len(insumos))
	for i := range insumos {
		out = append(out, insumoToResponse(&insumos[i]))
	}
	return out, nil
}

func (s *insumoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	insumo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("insumo %s: %w", id, ErrNoEncontrado)
	}
	unidadID, err := uuid.Parse(req.UnidadID)
	if err != nil {
		return nil, Validacion("unidad_id invalido")
	}
	unidad, err := s.unidadRepo.FindByID(ctx, unidadID)
	if err != nil {
		return nil, fmt.Errorf("unidad %s: %w", req.UnidadID, ErrNoEncontrado)
	}
	if req.PrecioPorUnidad.IsNegative() {
		return nil, Validacion("precio_por_unidad no puede ser negativo")
	}

	insumo.Nombre = req.Nombre
	insumo.UnidadID = unidadID
	insumo.Unidad = unidad
	insumo.PrecioPorUnidad = req.PrecioPorUnidad
	insumo.StockActual = req.StockActual

	if err := s.repo.Update(ctx, insumo); err != nil {
		return nil, err
	}
	resp := insumoToResponse(insumo)
	return &resp, nil
}

func (s *insumoService) AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*dto.InsumoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("insumo %s: %w", id, ErrNoEncontrado)
	}
	if err := s.repo.AjustarStock(ctx, id, delta); err != nil {
		return nil, err
	}
	insumo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := insumoToResponse(insumo)
	return &resp, nil
}

func (s *insumoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("insumo %s: %w", id, ErrNoEncontrado)
	}
	n, err := s.repo.CountRecetaRefs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("insumo usado en %d recetas: %w", n, ErrEnUso)
	}
	return s.repo.Delete(ctx, id)
}

func insumoToResponse(i *model.Insumo) dto.InsumoResponse {
	resp := dto.InsumoResponse{
		ID:              i.ID.String(),
		Nombre:          i.Nombre,
		UnidadID:        i.UnidadID.String(),
		PrecioPorUnidad: i.PrecioPorUnidad,
		StockActual:     i.StockActual,
	}
	if i.Unidad != nil {
		resp.UnidadSimbolo = i.Unidad.Simbolo
	}
	return resp
}
