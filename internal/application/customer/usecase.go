package customer

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// MinPasswordLength longitud mínima de la contraseña de un cliente, en caracteres.
const MinPasswordLength = 8

// MaxPasswordBytes límite de bcrypt; más allá el hash falla.
const MaxPasswordBytes = 72

// UseCase registro, login y perfil de clientes.
type UseCase struct {
	repo     repository.CustomerRepository
	hasher   ports.PasswordHasher
	sessions ports.SessionIssuer
	now      func() time.Time
}

// NewUseCase construye el caso de uso de clientes.
func NewUseCase(repo repository.CustomerRepository, hasher ports.PasswordHasher, sessions ports.SessionIssuer) *UseCase {
	return &UseCase{repo: repo, hasher: hasher, sessions: sessions, now: time.Now}
}

// NormalizeEmail recorta y pliega mayúsculas para comparar emails.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// Register crea la cuenta. ErrEmailAlreadyExists si el email (normalizado) ya existe.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterCustomerRequest) (*dto.CustomerProfile, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength || len(in.Password) > MaxPasswordBytes {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	c := &entity.Customer{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    uc.now().UTC(),
	}
	// El índice único cubre la carrera entre dos registros simultáneos.
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toProfile(c), nil
}

// Authenticate verifica email/password y emite el token de sesión.
// Email desconocido y password incorrecto responden igual (ErrUnauthorized).
func (uc *UseCase) Authenticate(ctx context.Context, in dto.CustomerLoginRequest) (*dto.CustomerLoginResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.hasher.Verify(c.PasswordHash, in.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.sessions.Issue(c.ID, c.Name)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerLoginResponse{Token: token, Profile: toProfile(c)}, nil
}

// Profile perfil del cliente autenticado.
func (uc *UseCase) Profile(ctx context.Context, customerID string) (*dto.CustomerProfile, error) {
	c, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toProfile(c), nil
}

// UpdateProfile cambia nombre, teléfono y plato favorito. Vacío en los opcionales guarda nulo.
func (uc *UseCase) UpdateProfile(ctx context.Context, customerID string, in dto.UpdateProfileRequest) (*dto.CustomerProfile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.now().UTC()
	c.Name = name
	c.Phone = optional(in.Phone)
	c.FavoriteDish = optional(in.FavoriteDish)
	c.UpdatedAt = &now
	if err := uc.repo.UpdateProfile(ctx, c); err != nil {
		return nil, err
	}
	return toProfile(c), nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func toProfile(c *entity.Customer) *dto.CustomerProfile {
	if c == nil {
		return nil
	}
	return &dto.CustomerProfile{
		ID:           c.ID,
		Email:        c.Email,
		Name:         c.Name,
		Phone:        c.Phone,
		FavoriteDish: c.FavoriteDish,
		CreatedAt:    c.CreatedAt,
	}
}
