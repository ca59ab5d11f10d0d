package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const fechaLayout = "2006-01-02"

type FechaProduccionService interface {
	Crear(ctx context.Context, req dto.CrearFechaRequest) (*dto.FechaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.FechaResponse, error)
	Listar(ctx context.Context) ([]dto.FechaResponse, error)
	ListarAbiertas(ctx context.Context) ([]dto.FechaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFechaRequest) (*dto.FechaResponse, error)
	// ToggleAbierta flips the open/closed flag that gates new pedidos.
	ToggleAbierta(ctx context.Context, id uuid.UUID) (*dto.FechaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type fechaService struct {
	repo repository.FechaProduccionRepository
}

func NewFechaProduccionService(repo repository.FechaProduccionRepository) FechaProduccionService {
	return &fechaService{repo: repo}
}

func (s *fechaService) Crear(ctx context.Context, req dto.CrearFechaRequest) (*dto.FechaResponse, error) {
	horneado, limite, err := parseFechas(req.FechaHorneado, req.FechaLimite)
	if err != nil {
		return nil, err
	}

	abierta := true
	if req.Abierta != nil {
		abierta = *req.Abierta
	}
	f := &model.FechaProduccion{
		FechaHorneado: horneado,
		FechaLimite:   limite,
		Abierta:       abierta,
		Notas:         req.Notas,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	resp := fechaToResponse(f)
	return &resp, nil
}

func (s *fechaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.FechaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fecha %s: %w", id, ErrNoEncontrado)
		}
		return nil, err
	}
	resp := fechaToResponse(f)
	return &resp, nil
}

func (s *fechaService) Listar(ctx context.Context) ([]dto.FechaResponse, error) {
	fechas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return fechasToResponses(fechas), nil
}

func (s *fechaService) ListarAbiertas(ctx context.Context) ([]dto.FechaResponse, error) {
	fechas, err := s.repo.ListAbiertas(ctx)
	if err != nil {
		return nil, err
	}
	return fechasToResponses(fechas), nil
}

func (s *fechaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFechaRequest) (*dto.FechaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fecha %s: %w", id, ErrNoEncontrado)
	}
	horneado, limite, err := parseFechas(req.FechaHorneado, req.FechaLimite)
	if err != nil {
		return nil, err
	}

	f.FechaHorneado = horneado
	f.FechaLimite = limite
	if req.Abierta != nil {
		f.Abierta = *req.Abierta
	}
	f.Notas = req.Notas

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	resp := fechaToResponse(f)
	return &resp, nil
}

func (s *fechaService) ToggleAbierta(ctx context.Context, id uuid.UUID) (*dto.FechaResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fecha %s: %w", id, ErrNoEncontrado)
	}
	f.Abierta = !f.Abierta
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	resp := fechaToResponse(f)
	return &resp, nil
}

func (s *fechaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("fecha %s: %w", id, ErrNoEncontrado)
	}
	// No cascade: una fecha con pedidos no se borra.
	n, err := s.repo.CountPedidos(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("fecha con %d pedidos: %w", n, ErrEnUso)
	}
	return s.repo.Delete(ctx, id)
}

func parseFechas(horneadoStr, limiteStr string) (horneado, limite time.Time, err error) {
	horneado, err = time.Parse(fechaLayout, horneadoStr)
	if err != nil {
		return time.Time{}, time.Time{}, Validacion("fecha_horneado invalida")
	}
	limite, err = time.Parse(fechaLayout, limiteStr)
	if err != nil {
		return time.Time{}, time.Time{}, Validacion("fecha_limite invalida")
	}
	if limite.After(horneado) {
		return time.Time{}, time.Time{}, Validacion("fecha_limite debe ser anterior o igual a fecha_horneado")
	}
	return horneado, limite, nil
}

func fechaToResponse(f *model.FechaProduccion) dto.FechaResponse {
	return dto.FechaResponse{
		ID:            f.ID.String(),
		FechaHorneado: f.FechaHorneado.Format(fechaLayout),
		FechaLimite:   f.FechaLimite.Format(fechaLayout),
		Abierta:       f.Abierta,
		Notas:         f.Notas,
	}
}

func fechasToResponses(fechas []model.FechaProduccion) []dto.FechaResponse {
	out := make([]dto.FechaResponse, 0, len(fechas))
	for i := range fechas {
		out = append(out, fechaToResponse(&fechas[i]))
	}
	return out
}
