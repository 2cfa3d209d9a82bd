package ticket

import "fmt"

// Status estado de un ticket de cocina. Solo avanza: queued → prepping → completed.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusPrepping  Status = "prepping"
	StatusCompleted Status = "completed"
)

// Statuses lista los estados en orden de avance.
var Statuses = []Status{StatusQueued, StatusPrepping, StatusCompleted}

// ParseStatus valida un estado recibido desde fuera (HTTP o base de datos).
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusQueued, StatusPrepping, StatusCompleted:
		return Status(s), nil
	default:
		return "", fmt.Errorf("ticket: estado desconocido %q", s)
	}
}

// Next devuelve los estados alcanzables desde s (sin contar el propio s).
func Next(s Status) []Status {
	switch s {
	case StatusQueued:
		return []Status{StatusPrepping}
	case StatusPrepping:
		return []Status{StatusCompleted}
	case StatusCompleted:
		return nil
	default:
		return nil
	}
}

// CanTransition indica si from → to es válido. Repetir el estado actual es
// idempotente y se acepta; saltar estados o retroceder no.
func CanTransition(from, to Status) bool {
	if from == to {
		_, err := ParseStatus(string(from))
		return err == nil
	}
	for _, n := range Next(from) {
		if n == to {
			return true
		}
	}
	return false
}

// Sources devuelve los estados desde los que se puede llegar a to,
// incluido to mismo. Se usa como condición del UPDATE en persistencia.
func Sources(to Status) []Status {
	out := make([]Status, 0, 2)
	for _, from := range Statuses {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}

// IsTerminal indica si no hay más transiciones posibles.
func IsTerminal(s Status) bool {
	return len(Next(s)) == 0
}
