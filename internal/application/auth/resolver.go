package auth

import (
	"github.com/jhoicas/restaurante-api/internal/domain/role"
	"github.com/jhoicas/restaurante-api/pkg/hostutil"
)

// Resolution roles efectivos de una petición.
//
// Granted sale únicamente de la cookie firmada de personal y es lo único que
// concede acceso. Allowed es el espacio de trabajo que ve la UI: el host puede
// ampliarlo ("kitchen.", "manager.") pero nunca otorga permisos.
type Resolution struct {
	StaffRole  role.Role // 0 sin cookie de personal
	Granted    role.Set
	Allowed    role.Set
	Active     role.Role
	HostForced bool
}

// Permits aplica la regla de acceso de role.Permits sobre esta sesión.
func (r Resolution) Permits(allowList ...role.Role) bool {
	return role.Permits(r.Active, r.Granted, allowList...)
}

// HasStaffRole indica si la petición trae una cookie de personal válida.
func (r Resolution) HasStaffRole() bool {
	return r.StaffRole.Valid()
}

// Resolve deriva los roles a partir del host, el rol de la cookie de personal
// (0 si no hay) y la preferencia guardada por el cliente (puede ser vacía o inválida).
func Resolve(host string, staff role.Role, preferred string) Resolution {
	res := Resolution{StaffRole: staff}
	if staff.Valid() {
		res.Granted = role.AllowedFor(staff)
	} else {
		res.StaffRole = 0
		res.Granted = role.AllowedFor(role.Customer)
	}

	res.Allowed = res.Granted
	if prefix, ok := hostutil.HasStaffPrefix(host); ok {
		forced, _ := role.Parse(prefix)
		res.Allowed = role.AllowedFor(forced)
		res.HostForced = true
	}

	if p, err := role.Parse(preferred); err == nil && res.Allowed.Contains(p) {
		res.Active = p
		return res
	}
	if res.HostForced {
		res.Active = hostDefault(res.Allowed)
		return res
	}
	res.Active = res.Allowed[0]
	return res
}

// hostDefault prefiere gerencia y luego cocina cuando el host fuerza el espacio.
func hostDefault(allowed role.Set) role.Role {
	if allowed.Contains(role.Manager) {
		return role.Manager
	}
	if allowed.Contains(role.Kitchen) {
		return role.Kitchen
	}
	return allowed[0]
}
