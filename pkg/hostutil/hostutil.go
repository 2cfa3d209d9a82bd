// Package hostutil agrupa utilidades puras sobre hosts y direcciones de cliente
// usadas por la validación de origen, el resolvedor de roles y el limitador de login.
package hostutil

import (
	"net"
	"strings"
)

// UnknownClient es el bucket compartido cuando no hay cabeceras de proxy.
const UnknownClient = "unknown"

// Hostname quita el puerto y normaliza a minúsculas.
// Acepta "host", "host:port", "[::1]:port".
func Hostname(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return strings.Trim(h, "[]")
	}
	return strings.Trim(host, "[]")
}

// BaseDomain devuelve las dos últimas etiquetas del hostname.
// localhost, *.localhost y las IPs literales son su propio dominio base.
func BaseDomain(host string) string {
	h := Hostname(host)
	if h == "" {
		return ""
	}
	if h == "localhost" || strings.HasSuffix(h, ".localhost") {
		return h
	}
	if net.ParseIP(h) != nil {
		return h
	}
	labels := strings.Split(strings.TrimSuffix(h, "."), ".")
	if len(labels) <= 2 {
		return strings.Join(labels, ".")
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// FirstValue devuelve el primer elemento de una cabecera con lista separada por comas.
func FirstValue(header string) string {
	if header == "" {
		return ""
	}
	first, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(first)
}

// ClientAddress identifica al cliente: primer salto de X-Forwarded-For,
// luego X-Real-IP y si no hay ninguno el bucket "unknown".
func ClientAddress(forwardedFor, realIP string) string {
	if ip := FirstValue(forwardedFor); ip != "" {
		return ip
	}
	if ip := strings.TrimSpace(realIP); ip != "" {
		return ip
	}
	return UnknownClient
}

// HasStaffPrefix indica si el host pertenece a un subdominio de personal
// ("manager." o "kitchen.") y devuelve el prefijo sin el punto.
func HasStaffPrefix(host string) (string, bool) {
	h := Hostname(host)
	for _, prefix := range []string{"manager", "kitchen"} {
		if strings.HasPrefix(h, prefix+".") {
			return prefix, true
		}
	}
	return "", false
}
