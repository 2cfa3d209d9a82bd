package security

import (
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/pkg/jwt"
)

var _ ports.SessionIssuer = (*JWTSessions)(nil)

// JWTSessions emite y verifica el token de sesión de clientes con pkg/jwt.
type JWTSessions struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// Issue firma un token para el cliente.
func (s *JWTSessions) Issue(customerID, name string) (string, error) {
	return jwt.Generate(s.Secret, customerID, name, s.Issuer, s.ExpMinutes)
}

// Verify valida firma y expiración.
func (s *JWTSessions) Verify(token string) (*ports.CustomerSession, error) {
	id, name, err := jwt.Parse(s.Secret, token)
	if err != nil {
		return nil, err
	}
	return &ports.CustomerSession{CustomerID: id, Name: name}, nil
}
