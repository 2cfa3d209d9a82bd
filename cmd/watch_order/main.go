// Comando watch_order sigue el estado de un pedido hasta que todos sus tickets
// estén completados.
//
//	go run ./cmd/watch_order --base-url http://localhost:8080 --order <orderId>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/tracking"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/trackingclient"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

func main() {
	baseURL := pflag.String("base-url", "http://localhost:8080", "URL base de la API")
	orderID := pflag.String("order", "", "ID del pedido a seguir")
	interval := pflag.Duration("interval", tracking.DefaultInterval, "intervalo entre consultas")
	timeout := pflag.Duration("timeout", 5*time.Second, "timeout de cada consulta")
	pflag.Parse()

	if strings.TrimSpace(*orderID) == "" {
		fmt.Fprintln(os.Stderr, "uso: watch_order --order <orderId> [--base-url URL] [--interval 10s]")
		os.Exit(2)
	}

	log := logger.New(logger.Config{Env: "development", Level: "warn"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := tracking.NewWatcher(trackingclient.New(*baseURL, *timeout), *interval, log)

	last := map[string]string{}
	err := watcher.Watch(ctx, *orderID, func(st *dto.OrderStatusResponse) {
		for _, t := range st.Tickets {
			if last[t.ID] == t.Status {
				continue
			}
			last[t.ID] = t.Status
			fmt.Printf("%s  %-10s x%d %s\n", t.ID, t.Status, t.Quantity, t.Item.Name)
		}
	})
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("seguimiento interrumpido")
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("pedido %s completado\n", *orderID)
}
