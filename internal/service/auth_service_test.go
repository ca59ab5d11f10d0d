package service

import (
	"context"
	"testing"

	"github.com/cuevasfm/pan-backend/internal/config"
	"github.com/cuevasfm/pan-backend/internal/dto"
	"github.com/cuevasfm/pan-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (AuthService, *stubClienteRepo) {
	repo := newStubClienteRepo()
	cfg := &config.Config{
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func TestRegisterYLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	registro, err := svc.Register(ctx, dto.RegisterRequest{
		Telefono: "5551234567",
		Nombre:   "Maria Lopez",
		Password: "panaderia2026",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registro.AccessToken)
	assert.NotEmpty(t, registro.RefreshToken)
	assert.Equal(t, model.RolCliente, registro.User.Rol)

	login, err := svc.Login(ctx, dto.LoginRequest{Telefono: "5551234567", Password: "panaderia2026"})
	require.NoError(t, err)
	assert.Equal(t, registro.User.ID, login.User.ID)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Telefono: "5551234567",
		Nombre:   "Maria Lopez",
		Password: "panaderia2026",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Telefono: "5551234567", Password: "otra-cosa"})
	assert.Error(t, err)
}

func TestLoginClienteSinCredencial(t *testing.T) {
	svc, repo := newAuthFixture()
	// Cliente cargado por el mostrador: sin password hash.
	repo.agregar("Pedro Gomez", "5559876543", nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Telefono: "5559876543", Password: "cualquiera"})
	assert.Error(t, err)
}

func TestRegisterTelefonoDuplicado(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Telefono: "5551234567", Nombre: "Maria", Password: "panaderia2026"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Telefono: "5551234567", Nombre: "Otra Maria", Password: "panaderia2026"})
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	registro, err := svc.Register(ctx, dto.RegisterRequest{Telefono: "5551234567", Nombre: "Maria", Password: "panaderia2026"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(ctx, registro.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registro.User.ID, renovado.User.ID)

	_, err = svc.Refresh(ctx, "no-es-un-jwt")
	assert.Error(t, err)
}
