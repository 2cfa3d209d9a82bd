// Package role define los roles del sistema y sus conjuntos de permisos.
//
// Los roles no son jerárquicos: cada acción declara explícitamente la lista de
// roles que la pueden usar, y el acceso se decide por pertenencia, nunca por rango.
package role

import (
	"fmt"
	"strings"
)

// Role es una enumeración cerrada. El valor cero no es un rol válido.
type Role uint8

const (
	Customer Role = iota + 1
	Manager
	Kitchen
)

// All lista los roles en orden canónico.
var All = []Role{Customer, Manager, Kitchen}

// String devuelve el nombre en el wire ("customer", "manager", "kitchen").
func (r Role) String() string {
	switch r {
	case Customer:
		return "customer"
	case Manager:
		return "manager"
	case Kitchen:
		return "kitchen"
	default:
		return ""
	}
}

// Label nombre visible del rol.
func (r Role) Label() string {
	switch r {
	case Customer:
		return "Customer"
	case Manager:
		return "Manager"
	case Kitchen:
		return "Kitchen"
	default:
		return ""
	}
}

// Valid indica si r es uno de los tres roles.
func (r Role) Valid() bool {
	switch r {
	case Customer, Manager, Kitchen:
		return true
	default:
		return false
	}
}

// IsStaff indica si el rol pertenece al personal (gerencia o cocina).
func (r Role) IsStaff() bool {
	switch r {
	case Manager, Kitchen:
		return true
	case Customer:
		return false
	default:
		return false
	}
}

// MarshalText serializa el rol como texto.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("role: valor inválido %d", r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText deserializa el rol desde texto.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Parse convierte texto de entrada en Role. Es la única vía desde datos externos.
func Parse(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer":
		return Customer, nil
	case "manager":
		return Manager, nil
	case "kitchen":
		return Kitchen, nil
	default:
		return 0, fmt.Errorf("role: %q no es un rol válido", s)
	}
}

// Set conjunto ordenado de roles. El primer elemento es el rol por defecto.
type Set []Role

// Contains indica si r pertenece al conjunto.
func (s Set) Contains(r Role) bool {
	for _, x := range s {
		if x == r {
			return true
		}
	}
	return false
}

// Intersects indica si algún rol de others pertenece al conjunto.
func (s Set) Intersects(others []Role) bool {
	for _, o := range others {
		if s.Contains(o) {
			return true
		}
	}
	return false
}

// Strings devuelve los nombres de wire.
func (s Set) Strings() []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, r.String())
	}
	return out
}

// AllowedFor devuelve los roles que una sesión con el rol r puede ver o activar.
func AllowedFor(r Role) Set {
	switch r {
	case Manager:
		return Set{Customer, Manager, Kitchen}
	case Kitchen:
		return Set{Customer, Kitchen}
	case Customer:
		return Set{Customer}
	default:
		return Set{Customer}
	}
}

// Permits decide el acceso a una acción con la lista allowList.
// Se concede si el rol activo está en la lista y además fue concedido a la sesión,
// o si el conjunto concedido intersecta la lista (gerencia viendo "como cocina").
func Permits(active Role, granted Set, allowList ...Role) bool {
	for _, a := range allowList {
		if a == active && granted.Contains(active) {
			return true
		}
	}
	return granted.Intersects(allowList)
}
