package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casavidal/ferreteria-api/internal/application/auth"
	"github.com/casavidal/ferreteria-api/internal/application/dto"
	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/infrastructure/memory"
	"github.com/casavidal/ferreteria-api/pkg/jwt"
)

func newAuthUseCase(t *testing.T) *auth.UseCase {
	t.Helper()
	store := memory.NewStore()
	return auth.NewUseCase(store.Users(), auth.JWTConfig{
		Secret:     "secreto-de-test",
		ExpMinutes: 60,
		Issuer:     "ferreteria-api",
	})
}

func TestRegisterYLogin(t *testing.T) {
	uc := newAuthUseCase(t)

	user, err := uc.Register(dto.RegisterRequest{
		Email:     "admin@casavidal.com",
		Password:  "clave-segura",
		FirstName: "Ana",
		LastName:  "Vidal",
		Role:      entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)

	resp, err := uc.Login(dto.LoginRequest{
		Email:    "admin@casavidal.com",
		Password: "clave-segura",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	userID, role, err := jwt.Parse("secreto-de-test", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestRegister_RolPorDefecto(t *testing.T) {
	uc := newAuthUseCase(t)

	user, err := uc.Register(dto.RegisterRequest{
		Email:    "vendedor@casavidal.com",
		Password: "clave-segura",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuthUseCase(t)

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.com", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "a@b.com", Password: "otra-clave-123"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_PasswordCorto(t *testing.T) {
	uc := newAuthUseCase(t)

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.com", Password: "corta"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newAuthUseCase(t)

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.com", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@b.com", Password: "equivocada"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@b.com", Password: "clave-segura"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
