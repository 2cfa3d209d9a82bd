package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

var _ auth.AttemptStore = (*MemoryStore)(nil)

// MemoryStore intentos de login en memoria del proceso.
type MemoryStore struct {
	mu       sync.Mutex
	attempts map[string]auth.Attempt
}

// NewMemoryStore crea un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{attempts: make(map[string]auth.Attempt)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (auth.Attempt, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[key]
	return a, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, a auth.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[key] = a
	return nil
}

func (s *MemoryStore) Update(_ context.Context, key string, next func(auth.Attempt, bool) auth.Attempt) (auth.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.attempts[key]
	a := next(prev, ok)
	s.attempts[key] = a
	return a, nil
}

// Sweep elimina las entradas cuya ventana empezó antes de cutoff y devuelve cuántas borró.
func (s *MemoryStore) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, a := range s.attempts {
		if a.WindowStart.Before(cutoff) {
			delete(s.attempts, k)
			n++
		}
	}
	return n
}

// Len número de clientes con entrada.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}

// RunSweeper barre cada window las entradas ya vencidas hasta que ctx termine.
func (s *MemoryStore) RunSweeper(ctx context.Context, window time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Sweep(now.Add(-window)); n > 0 {
				log.Debug().Int("removed", n).Msg("limitador: entradas vencidas eliminadas")
			}
		}
	}
}
