package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	Buscar(ctx context.Context, query string) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	rol := req.Rol
	if rol == "" {
		rol = model.RolCliente
	}
	// Cuentas admin siempre llevan credencial; un cliente de mostrador puede no tenerla.
	if rol == model.RolAdmin && req.Password == nil {
		return nil, Validacion("una cuenta admin requiere password")
	}

	if existing, err := s.repo.FindByTelefono(ctx, req.Telefono); err == nil && existing != nil {
		return nil, Validacion("el telefono ya esta registrado")
	}

	cliente := &model.Cliente{
		Telefono:  req.Telefono,
		Nombre:    req.Nombre,
		Domicilio: req.Domicilio,
		Email:     req.Email,
		Rol:       rol,
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		cliente.PasswordHash = &hashStr
	}

	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cliente %s: %w", id, ErrNoEncontrado)
		}
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return clientesToResponses(clientes), nil
}

func (s *clienteService) Buscar(ctx context.Context, query string) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return clientesToResponses(clientes), nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", id, ErrNoEncontrado)
	}

	cliente.Telefono = req.Telefono
	cliente.Nombre = req.Nombre
	cliente.Domicilio = req.Domicilio
	cliente.Email = req.Email
	if req.Rol != "" {
		if req.Rol == model.RolAdmin && cliente.PasswordHash == nil && req.Password == nil {
			return nil, Validacion("una cuenta admin requiere password")
		}
		cliente.Rol = req.Rol
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		cliente.PasswordHash = &hashStr
	}

	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("cliente %s: %w", id, ErrNoEncontrado)
	}
	n, err := s.repo.CountPedidos(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("cliente con %d pedidos: %w", n, ErrEnUso)
	}
	return s.repo.Delete(ctx, id)
}

func clientesToResponses(clientes []model.Cliente) []dto.ClienteResponse {
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, clienteToResponse(&clientes[i]))
	}
	return out
}
