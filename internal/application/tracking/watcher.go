package tracking

import (
	"context"
	"time"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

// DefaultInterval intervalo de consulta del seguimiento de un pedido.
const DefaultInterval = 10 * time.Second

// Watcher sigue un pedido consultando su estado periódicamente.
type Watcher struct {
	fetcher  ports.OrderStatusFetcher
	interval time.Duration
	log      *logger.Logger
}

// NewWatcher construye el watcher. interval ≤ 0 usa DefaultInterval.
func NewWatcher(fetcher ports.OrderStatusFetcher, interval time.Duration, log *logger.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{fetcher: fetcher, interval: interval, log: log.Component("tracking")}
}

// Watch consulta de inmediato y luego cada intervalo, llamando onUpdate con cada
// respuesta. Devuelve nil cuando todos los tickets están completados y ctx.Err()
// si se cancela. Un fallo de consulta se registra y se reintenta en el siguiente tick.
func (w *Watcher) Watch(ctx context.Context, orderID string, onUpdate func(*dto.OrderStatusResponse)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	log := w.log.With("order_id", orderID)

	for {
		if w.poll(ctx, log, orderID, onUpdate) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Watcher) poll(ctx context.Context, log *logger.Logger, orderID string, onUpdate func(*dto.OrderStatusResponse)) bool {
	res, err := w.fetcher.FetchOrderStatus(ctx, orderID)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Msg("consulta de estado fallida")
		}
		return false
	}
	if onUpdate != nil {
		onUpdate(res)
	}
	return res.AllCompleted()
}
