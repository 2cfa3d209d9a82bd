// Package trackingclient consulta GET /api/orders/{orderId} de una instancia remota.
package trackingclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
)

var _ ports.OrderStatusFetcher = (*Client)(nil)

// Client implementa ports.OrderStatusFetcher con el cliente HTTP de fiber.
type Client struct {
	baseURL string
	timeout time.Duration
}

// New construye el cliente. baseURL es la raíz del API (p. ej. http://localhost:8080/api).
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

// FetchOrderStatus trae el estado actual del pedido.
func (c *Client) FetchOrderStatus(ctx context.Context, orderID string) (*dto.OrderStatusResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}

	a := fiber.Get(c.baseURL + "/orders/" + url.PathEscape(orderID))
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	a.Timeout(timeout)
	status, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("consultar pedido %s: %w", orderID, errors.Join(errs...))
	}
	if status != fiber.StatusOK {
		var e dto.ErrorResponse
		if json.Unmarshal(body, &e) == nil && e.Message != "" {
			return nil, fmt.Errorf("consultar pedido %s: HTTP %d: %s", orderID, status, e.Message)
		}
		return nil, fmt.Errorf("consultar pedido %s: HTTP %d", orderID, status)
	}
	var out dto.OrderStatusResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decodificar pedido %s: %w", orderID, err)
	}
	return &out, nil
}
