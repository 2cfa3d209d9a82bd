package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain"
)

// Valores por defecto del limitador de login de personal.
const (
	DefaultLoginWindow      = 10 * time.Minute
	DefaultLoginMaxAttempts = 5
)

// Attempt intentos fallidos de un cliente dentro de la ventana actual.
type Attempt struct {
	Count       int
	WindowStart time.Time
}

// AttemptStore almacena los intentos por dirección de cliente.
// La implementación en memoria es local al proceso: con varias instancias el
// límite es aproximado. Un almacén compartido se inyecta sin tocar este código.
type AttemptStore interface {
	Get(ctx context.Context, key string) (Attempt, bool, error)
	Put(ctx context.Context, key string, a Attempt) error
	// Update aplica next sobre el valor actual y guarda el resultado en una
	// sola operación atómica por clave.
	Update(ctx context.Context, key string, next func(prev Attempt, ok bool) Attempt) (Attempt, error)
}

// LoginLimiter frena la adivinación de passcodes por dirección de cliente.
// Los fallos se cuentan de forma atómica; Check seguido de RecordFailure no lo
// es, así que peticiones simultáneas pueden pasar Check antes de sumar su fallo.
type LoginLimiter struct {
	store       AttemptStore
	window      time.Duration
	maxAttempts int
	now         func() time.Time
}

// NewLoginLimiter construye el limitador. Valores no positivos toman los por defecto.
func NewLoginLimiter(store AttemptStore, window time.Duration, maxAttempts int) *LoginLimiter {
	if window <= 0 {
		window = DefaultLoginWindow
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultLoginMaxAttempts
	}
	return &LoginLimiter{store: store, window: window, maxAttempts: maxAttempts, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (l *LoginLimiter) WithClock(now func() time.Time) *LoginLimiter {
	l.now = now
	return l
}

// Window duración de la ventana.
func (l *LoginLimiter) Window() time.Duration { return l.window }

// Check devuelve domain.ErrRateLimited si el cliente agotó sus intentos en la ventana vigente.
func (l *LoginLimiter) Check(ctx context.Context, key string) error {
	a, ok, err := l.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: leer intentos: %v", domain.ErrPersistence, err)
	}
	if ok && l.now().Sub(a.WindowStart) < l.window && a.Count >= l.maxAttempts {
		return domain.ErrRateLimited
	}
	return nil
}

// RecordFailure suma un fallo en la ventana vigente o abre una nueva con 1.
func (l *LoginLimiter) RecordFailure(ctx context.Context, key string) error {
	now := l.now()
	_, err := l.store.Update(ctx, key, func(a Attempt, ok bool) Attempt {
		if ok && now.Sub(a.WindowStart) < l.window {
			a.Count++
			return a
		}
		return Attempt{Count: 1, WindowStart: now}
	})
	if err != nil {
		return fmt.Errorf("%w: guardar intentos: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Reset deja al cliente con una ventana nueva y contador 0 (login correcto).
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.store.Put(ctx, key, Attempt{Count: 0, WindowStart: l.now()}); err != nil {
		return fmt.Errorf("%w: reiniciar intentos: %v", domain.ErrPersistence, err)
	}
	return nil
}
