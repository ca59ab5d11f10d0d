package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	grafoCacheKey = "unidades:grafo"
	grafoCacheTTL = 10 * time.Minute
)

type UnidadService interface {
	Crear(ctx context.Context, req dto.CrearUnidadRequest) (*dto.UnidadResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.UnidadResponse, error)
	Listar(ctx context.Context) ([]dto.UnidadResponse, error)
	ListarPorTipo(ctx context.Context, tipo string) ([]dto.UnidadResponse, error)
	CrearConversion(ctx context.Context, req dto.CrearConversionRequest) (*dto.ConversionResponse, error)
	ListarConversiones(ctx context.Context) ([]dto.ConversionResponse, error)

	// Convertir re-expresses cantidad from unit desde to unit hasta, composing
	// conversion factors transitively over the stored graph.
	Convertir(ctx context.Context, cantidad decimal.Decimal, desdeID, hastaID uuid.UUID) (decimal.Decimal, error)
}

type unidadService struct {
	repo repository.UnidadRepository
	rdb  *redis.Client // nil in unit tests — cache becomes a no-op
}

func NewUnidadService(repo repository.UnidadRepository, rdb *redis.Client) UnidadService {
	return &unidadService{repo: repo, rdb: rdb}
}

func (s *unidadService) Crear(ctx context.Context, req dto.CrearUnidadRequest) (*dto.UnidadResponse, error) {
	u := &model.Unidad{
		Nombre:  req.Nombre,
		Simbolo: req.Simbolo,
		Tipo:    req.Tipo,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.invalidarGrafo(ctx)
	return unidadToResponse(u), nil
}

func (s *unidadService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.UnidadResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("unidad %s: %w", id, ErrNoEncontrado)
		}
		return nil, err
	}
	return unidadToResponse(u), nil
}

func (s *unidadService) Listar(ctx context.Context) ([]dto.UnidadResponse, error) {
	unidades, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnidadResponse, 0, len(unidades))
	for i := range unidades {
		out = append(out, *unidadToResponse(&unidades[i]))
	}
	return out, nil
}

func (s *unidadService) ListarPorTipo(ctx context.Context, tipo string) ([]dto.UnidadResponse, error) {
	unidades, err := s.repo.ListByTipo(ctx, tipo)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnidadResponse, 0, len(unidades))
	for i := range unidades {
		out = append(out, *unidadToResponse(&unidades[i]))
	}
	return out, nil
}

func (s *unidadService) CrearConversion(ctx context.Context, req dto.CrearConversionRequest) (*dto.ConversionResponse, error) {
	origenID, err := uuid.Parse(req.UnidadOrigenID)
	if err != nil {
		return nil, Validacion("unidad_origen_id invalido")
	}
	destinoID, err := uuid.Parse(req.UnidadDestinoID)
	if err != nil {
		return nil, Validacion("unidad_destino_id invalido")
	}
	if !req.Factor.IsPositive() {
		return nil, Validacion("el factor debe ser mayor que cero")
	}

	origen, err := s.repo.FindByID(ctx, origenID)
	if err != nil {
		return nil, fmt.Errorf("unidad origen: %w", ErrNoEncontrado)
	}
	destino, err := s.repo.FindByID(ctx, destinoID)
	if err != nil {
		return nil, fmt.Errorf("unidad destino: %w", ErrNoEncontrado)
	}
	if origen.Tipo != destino.Tipo {
		return nil, fmt.Errorf("%s vs %s: %w", origen.Tipo, destino.Tipo, ErrUnidadesIncompatibles)
	}

	conv := &model.UnidadConversion{
		UnidadOrigenID:  origenID,
		UnidadDestinoID: destinoID,
		Factor:          req.Factor,
	}
	if err := s.repo.CreateConversion(ctx, conv); err != nil {
		return nil, err
	}
	s.invalidarGrafo(ctx)

	return &dto.ConversionResponse{
		ID:                   conv.ID.String(),
		UnidadOrigenID:       origen.ID.String(),
		UnidadOrigenSimbolo:  origen.Simbolo,
		UnidadDestinoID:      destino.ID.String(),
		UnidadDestinoSimbolo: destino.Simbolo,
		Factor:               conv.Factor,
	}, nil
}

func (s *unidadService) ListarConversiones(ctx context.Context) ([]dto.ConversionResponse, error) {
	conversiones, err := s.repo.ListConversiones(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConversionResponse, 0, len(conversiones))
	for i := range conversiones {
		c := &conversiones[i]
		resp := dto.ConversionResponse{
			ID:              c.ID.String(),
			UnidadOrigenID:  c.UnidadOrigenID.String(),
			UnidadDestinoID: c.UnidadDestinoID.String(),
			Factor:          c.Factor,
		}
		if c.UnidadOrigen != nil {
			resp.UnidadOrigenSimbolo = c.UnidadOrigen.Simbolo
		}
		if c.UnidadDestino != nil {
			resp.UnidadDestinoSimbolo = c.UnidadDestino.Simbolo
		}
		out = append(out, resp)
	}
	return out, nil
}

// ─── Conversion graph ────────────────────────────────────────────────────────

// arista is one traversable edge of the conversion graph. Each stored row
// yields two aristas: origen→destino (×factor) and destino→origen (÷factor),
// so A→B→A composes back to the identity.
type arista struct {
	Hasta  uuid.UUID       `json:"hasta"`
	Factor decimal.Decimal `json:"factor"`
}

// grafoConversion is cached in redis as a whole; it is small (tens of units)
// and changes only when staff add units or conversions.
type grafoConversion struct {
	Tipos   map[uuid.UUID]string   `json:"tipos"`
	Aristas map[uuid.UUID][]arista `json:"aristas"`
}

func (s *unidadService) Convertir(ctx context.Context, cantidad decimal.Decimal, desdeID, hastaID uuid.UUID) (decimal.Decimal, error) {
	// Identity conversion never consults the table.
	if desdeID == hastaID {
		return cantidad, nil
	}

	g, err := s.cargarGrafo(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	tipoDesde, ok := g.Tipos[desdeID]
	if !ok {
		return decimal.Zero, fmt.Errorf("unidad %s: %w", desdeID, ErrNoEncontrado)
	}
	tipoHasta, ok := g.Tipos[hastaID]
	if !ok {
		return decimal.Zero, fmt.Errorf("unidad %s: %w", hastaID, ErrNoEncontrado)
	}
	if tipoDesde != tipoHasta {
		return decimal.Zero, fmt.Errorf("%s vs %s: %w", tipoDesde, tipoHasta, ErrUnidadesIncompatibles)
	}

	// BFS composing factors. The graph is tiny, so shortest-hop is also the
	// numerically shortest chain.
	type nodo struct {
		id     uuid.UUID
		factor decimal.Decimal
	}
	visitado := map[uuid.UUID]bool{desdeID: true}
	cola := []nodo{{id: desdeID, factor: decimal.NewFromInt(1)}}
	for len(cola) > 0 {
		actual := cola[0]
		cola = cola[1:]
		if actual.id == hastaID {
			return cantidad.Mul(actual.factor), nil
		}
		for _, a := range g.Aristas[actual.id] {
			if visitado[a.Hasta] {
				continue
			}
			visitado[a.Hasta] = true
			cola = append(cola, nodo{id: a.Hasta, factor: actual.factor.Mul(a.Factor)})
		}
	}

	return decimal.Zero, fmt.Errorf("de %s a %s: %w", desdeID, hastaID, ErrSinRutaConversion)
}

func (s *unidadService) cargarGrafo(ctx context.Context) (*grafoConversion, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, grafoCacheKey).Bytes(); err == nil {
			var g grafoConversion
			if jsonErr := json.Unmarshal(cached, &g); jsonErr == nil {
				return &g, nil
			}
		}
	}

	unidades, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	conversiones, err := s.repo.ListConversiones(ctx)
	if err != nil {
		return nil, err
	}

	g := &grafoConversion{
		Tipos:   make(map[uuid.UUID]string, len(unidades)),
		Aristas: make(map[uuid.UUID][]arista),
	}
	for i := range unidades {
		g.Tipos[unidades[i].ID] = unidades[i].Tipo
	}
	uno := decimal.NewFromInt(1)
	for i := range conversiones {
		c := &conversiones[i]
		g.Aristas[c.UnidadOrigenID] = append(g.Aristas[c.UnidadOrigenID],
			arista{Hasta: c.UnidadDestinoID, Factor: c.Factor})
		g.Aristas[c.UnidadDestinoID] = append(g.Aristas[c.UnidadDestinoID],
			arista{Hasta: c.UnidadOrigenID, Factor: uno.Div(c.Factor)})
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(g); jsonErr == nil {
			_ = s.rdb.Set(ctx, grafoCacheKey, b, grafoCacheTTL).Err()
		}
	}
	return g, nil
}

func (s *unidadService) invalidarGrafo(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, grafoCacheKey).Err()
	}
}

func unidadToResponse(u *model.Unidad) *dto.UnidadResponse {
	return &dto.UnidadResponse{
		ID:      u.ID.String(),
		Nombre:  u.Nombre,
		Simbolo: u.Simbolo,
		Tipo:    u.Tipo,
	}
}
