package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/domain/role"
)

func TestParse(t *testing.T) {
	for _, r := range role.All {
		parsed, err := role.Parse(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	parsed, err := role.Parse("  Manager ")
	require.NoError(t, err)
	assert.Equal(t, role.Manager, parsed)

	_, err = role.Parse("admin")
	assert.Error(t, err)
	_, err = role.Parse("")
	assert.Error(t, err)
}

func TestAllowedFor(t *testing.T) {
	assert.Equal(t, role.Set{role.Customer, role.Manager, role.Kitchen}, role.AllowedFor(role.Manager))
	assert.Equal(t, role.Set{role.Customer, role.Kitchen}, role.AllowedFor(role.Kitchen))
	assert.Equal(t, role.Set{role.Customer}, role.AllowedFor(role.Customer))
	assert.Equal(t, role.Set{role.Customer}, role.AllowedFor(0), "rol inválido cae en solo cliente")
}

func TestPermits_GerenciaComoCocina(t *testing.T) {
	granted := role.AllowedFor(role.Manager)
	// Gerencia con rol activo "kitchen" sigue pudiendo usar acciones de gerencia.
	assert.True(t, role.Permits(role.Kitchen, granted, role.Manager))
	assert.True(t, role.Permits(role.Kitchen, granted, role.Kitchen, role.Manager))
}

func TestPermits_CocinaNoAccedeAGerencia(t *testing.T) {
	granted := role.AllowedFor(role.Kitchen)
	assert.False(t, role.Permits(role.Kitchen, granted, role.Manager))
	assert.True(t, role.Permits(role.Kitchen, granted, role.Kitchen))
}

func TestPermits_RolActivoNoConcedidoNoOtorgaAcceso(t *testing.T) {
	// Un host "kitchen." puede proponer cocina como rol activo, pero sin cookie
	// la sesión solo tiene concedido "customer".
	granted := role.AllowedFor(role.Customer)
	assert.False(t, role.Permits(role.Kitchen, granted, role.Kitchen))
	assert.False(t, role.Permits(role.Kitchen, granted, role.Manager))
	assert.True(t, role.Permits(role.Kitchen, granted, role.Customer))
}

func TestMarshalText(t *testing.T) {
	b, err := role.Kitchen.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "kitchen", string(b))

	var r role.Role
	require.NoError(t, r.UnmarshalText([]byte("manager")))
	assert.Equal(t, role.Manager, r)

	_, err = role.Role(0).MarshalText()
	assert.Error(t, err)
}

func TestIsStaff(t *testing.T) {
	assert.True(t, role.Manager.IsStaff())
	assert.True(t, role.Kitchen.IsStaff())
	assert.False(t, role.Customer.IsStaff())
}
