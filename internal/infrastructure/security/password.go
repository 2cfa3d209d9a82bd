package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
)

// PasswordCost costo bcrypt de las contraseñas de clientes.
const PasswordCost = 12

var _ ports.PasswordHasher = BcryptHasher{}

// BcryptHasher implementa ports.PasswordHasher con bcrypt.
type BcryptHasher struct {
	Cost int // 0 = PasswordCost
}

// Hash genera el hash bcrypt de password.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = PasswordCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara en tiempo constante; nil solo si coincide.
func (BcryptHasher) Verify(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
