package service

import (
	"context"
	"errors"
	"time"

	"github.com/cuevasfm/pan-backend/internal/config"
	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/model"
	"github.com/cuevasfm/pan-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Profile(ctx context.Context, clienteID uuid.UUID) (*dto.ClienteResponse, error)
}

type authService struct {
	repo repository.ClienteRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.ClienteRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	cliente, err := s.repo.FindByTelefono(ctx, req.Telefono)
	if err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	// Clientes cargados por el mostrador no tienen credencial — no pueden loguearse.
	if cliente.PasswordHash == nil {
		return nil, errors.New("credenciales invalidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*cliente.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	return s.buildLoginResponse(cliente)
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	if existing, err := s.repo.FindByTelefono(ctx, req.Telefono); err == nil && existing != nil {
		return nil, Validacion("el telefono ya esta registrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	cliente := &model.Cliente{
		Telefono:     req.Telefono,
		Nombre:       req.Nombre,
		Domicilio:    req.Domicilio,
		Email:        req.Email,
		Rol:          model.RolCliente,
		PasswordHash: &hashStr,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return s.buildLoginResponse(cliente)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	idStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return s.buildLoginResponse(cliente)
}

func (s *authService) Profile(ctx context.Context, clienteID uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *authService) buildLoginResponse(cliente *model.Cliente) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(cliente, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(cliente, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         clienteToResponse(cliente),
	}, nil
}

func (s *authService) generateToken(cliente *model.Cliente, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  cliente.ID.String(),
		"telefono": cliente.Telefono,
		"rol":      cliente.Rol,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        c.ID.String(),
		Telefono:  c.Telefono,
		Nombre:    c.Nombre,
		Domicilio: c.Domicilio,
		Email:     c.Email,
		Rol:       c.Rol,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
