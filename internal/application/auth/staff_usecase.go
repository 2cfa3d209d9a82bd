package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/role"
)

// StaffPasscodes secretos compartidos por rol de personal.
type StaffPasscodes struct {
	Manager string
	Kitchen string
}

// For devuelve el passcode esperado del rol ("" si no está configurado o no es de personal).
func (p StaffPasscodes) For(r role.Role) string {
	switch r {
	case role.Manager:
		return p.Manager
	case role.Kitchen:
		return p.Kitchen
	case role.Customer:
		return ""
	default:
		return ""
	}
}

// StaffLoginResult rol concedido y conjunto que puede activar.
type StaffLoginResult struct {
	Role    role.Role
	Allowed role.Set
}

// StaffUseCase acceso del personal por passcode compartido por rol.
type StaffUseCase struct {
	passcodes StaffPasscodes
	limiter   *LoginLimiter
}

// NewStaffUseCase construye el caso de uso de login de personal.
func NewStaffUseCase(passcodes StaffPasscodes, limiter *LoginLimiter) *StaffUseCase {
	return &StaffUseCase{passcodes: passcodes, limiter: limiter}
}

// Login valida {role, passcode} para el cliente clientKey.
//
// Orden: entrada (ErrInvalidInput) → límite de intentos (ErrRateLimited, antes
// de mirar el passcode) → rol configurado (ErrMisconfigured) → comparación
// (ErrUnauthorized y se cuenta el fallo). Un acierto reinicia el contador.
func (uc *StaffUseCase) Login(ctx context.Context, clientKey, rawRole, passcode string) (*StaffLoginResult, error) {
	r, err := role.Parse(rawRole)
	if err != nil || !r.IsStaff() || passcode == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.limiter.Check(ctx, clientKey); err != nil {
		return nil, err
	}
	expected := uc.passcodes.For(r)
	if strings.TrimSpace(expected) == "" {
		return nil, domain.ErrMisconfigured
	}
	if subtle.ConstantTimeCompare([]byte(passcode), []byte(expected)) != 1 {
		if err := uc.limiter.RecordFailure(ctx, clientKey); err != nil {
			return nil, err
		}
		return nil, domain.ErrUnauthorized
	}
	if err := uc.limiter.Reset(ctx, clientKey); err != nil {
		return nil, err
	}
	return &StaffLoginResult{Role: r, Allowed: role.AllowedFor(r)}, nil
}
