package ports

import "github.com/jhoicas/restaurante-api/internal/domain/role"

// PasswordHasher hash unidireccional de contraseñas.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify devuelve nil solo si password corresponde a hash.
	Verify(hash, password string) error
}

// CustomerSession identidad que viaja en la sesión de un cliente.
type CustomerSession struct {
	CustomerID string
	Name       string
}

// SessionIssuer firma y verifica el token opaco de sesión de clientes.
type SessionIssuer interface {
	Issue(customerID, name string) (string, error)
	Verify(token string) (*CustomerSession, error)
}

// RoleCookieCodec firma el valor de la cookie de rol del personal.
// Decode devuelve error si el valor fue alterado o expiró.
type RoleCookieCodec interface {
	Encode(r role.Role) (string, error)
	Decode(value string) (role.Role, error)
}
