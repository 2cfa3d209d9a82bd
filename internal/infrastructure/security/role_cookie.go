package security

import (
	"fmt"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/domain/role"
)

// StaffCookieName nombre de la cookie firmada con el rol del personal.
const StaffCookieName = "staff_role"

// StaffSessionMaxAge vigencia de la sesión de personal.
const StaffSessionMaxAge = 8 * time.Hour

var _ ports.RoleCookieCodec = (*RoleCookieCodec)(nil)

// RoleCookieCodec firma (HMAC) el rol de personal con gorilla/securecookie.
// El valor lleva su propia marca de tiempo: una cookie vieja se rechaza aunque el navegador la conserve.
type RoleCookieCodec struct {
	sc *securecookie.SecureCookie
}

// NewRoleCookieCodec construye el codec. Con secret vacío genera una clave
// aleatoria: las sesiones de personal no sobreviven a un reinicio.
func NewRoleCookieCodec(secret string, maxAge time.Duration) *RoleCookieCodec {
	key := []byte(secret)
	if secret == "" {
		key = securecookie.GenerateRandomKey(32)
	}
	sc := securecookie.New(key, nil)
	sc.MaxAge(int(maxAge.Seconds()))
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &RoleCookieCodec{sc: sc}
}

// Encode firma el rol. Solo se aceptan roles de personal.
func (c *RoleCookieCodec) Encode(r role.Role) (string, error) {
	if !r.IsStaff() {
		return "", fmt.Errorf("security: %q no es un rol de personal", r.String())
	}
	return c.sc.Encode(StaffCookieName, r.String())
}

// Decode verifica firma y vigencia y devuelve el rol.
func (c *RoleCookieCodec) Decode(value string) (role.Role, error) {
	var raw string
	if err := c.sc.Decode(StaffCookieName, value, &raw); err != nil {
		return 0, err
	}
	r, err := role.Parse(raw)
	if err != nil {
		return 0, err
	}
	if !r.IsStaff() {
		return 0, fmt.Errorf("security: %q no es un rol de personal", raw)
	}
	return r, nil
}
