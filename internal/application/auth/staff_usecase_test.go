package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/role"
)

func newStaffUseCase(passcodes auth.StaffPasscodes) (*auth.StaffUseCase, *mapStore) {
	store := newMapStore()
	limiter := newLimiter(store, &fakeClock{t: time.Now()})
	return auth.NewStaffUseCase(passcodes, limiter), store
}

func TestStaffLogin_Exitoso(t *testing.T) {
	uc, _ := newStaffUseCase(auth.StaffPasscodes{Manager: "m-123", Kitchen: "k-456"})
	res, err := uc.Login(context.Background(), "1.2.3.4", "kitchen", "k-456")
	require.NoError(t, err)
	assert.Equal(t, role.Kitchen, res.Role)
	assert.Equal(t, role.Set{role.Customer, role.Kitchen}, res.Allowed)
}

func TestStaffLogin_EntradaInvalida(t *testing.T) {
	uc, store := newStaffUseCase(auth.StaffPasscodes{Manager: "m", Kitchen: "k"})
	ctx := context.Background()
	for _, tc := range []struct{ role, pass string }{
		{"customer", "m"},
		{"admin", "m"},
		{"manager", ""},
		{"", ""},
	} {
		_, err := uc.Login(ctx, "ip", tc.role, tc.pass)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", tc)
	}
	assert.Empty(t, store.data, "la entrada inválida no cuenta como intento")
}

func TestStaffLogin_PasscodeNoConfigurado(t *testing.T) {
	uc, _ := newStaffUseCase(auth.StaffPasscodes{Manager: "m"})
	_, err := uc.Login(context.Background(), "ip", "kitchen", "loquesea")
	assert.ErrorIs(t, err, domain.ErrMisconfigured)
}

func TestStaffLogin_SextoIntentoBloqueadoAunqueSeaCorrecto(t *testing.T) {
	uc, _ := newStaffUseCase(auth.StaffPasscodes{Manager: "secreto"})
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := uc.Login(ctx, "9.9.9.9", "manager", "mal")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	_, err := uc.Login(ctx, "9.9.9.9", "manager", "secreto")
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	_, err = uc.Login(ctx, "8.8.8.8", "manager", "secreto")
	assert.NoError(t, err)
}

func TestStaffLogin_ExitoReiniciaContador(t *testing.T) {
	uc, store := newStaffUseCase(auth.StaffPasscodes{Manager: "secreto"})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = uc.Login(ctx, "ip", "manager", "mal")
	}
	_, err := uc.Login(ctx, "ip", "manager", "secreto")
	require.NoError(t, err)
	assert.Equal(t, 0, store.data["ip"].Count)
}
