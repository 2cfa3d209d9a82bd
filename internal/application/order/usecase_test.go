package order

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/ticket"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	placed []dto.OrderPlacedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, evt dto.OrderPlacedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placed = append(p.placed, evt)
	return p.err
}

func (p *recordingPublisher) PublishTicketStatus(context.Context, dto.TicketStatusEvent) error {
	return nil
}

func seedMenu(t *testing.T, store *memory.Store, ids ...string) {
	t.Helper()
	for _, id := range ids {
		p := decimal.NewFromInt(10)
		require.NoError(t, store.Menu().Create(context.Background(), &entity.MenuItem{
			ID: id, Name: "Plato " + id, Price: &p, CreatedAt: time.Now(),
		}))
	}
}

var ticketIDPattern = regexp.MustCompile(`^KT-[0-9A-F]{8}$`)

func TestPlace_UnTicketPorLinea(t *testing.T) {
	store := memory.NewStore()
	seedMenu(t, store, "a", "b")
	pub := &recordingPublisher{}
	uc := NewUseCase(store, pub, nil)

	res, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{
		{ID: "a", Quantity: 2},
		{ID: "b", Quantity: 1},
	}})
	require.NoError(t, err)
	require.Len(t, res.Tickets, 2)
	assert.NotEmpty(t, res.OrderID)
	assert.NotEqual(t, res.Tickets[0].ID, res.Tickets[1].ID)
	for _, tk := range res.Tickets {
		assert.Regexp(t, ticketIDPattern, tk.ID)
		assert.Equal(t, string(ticket.StatusQueued), tk.Status)
		assert.Equal(t, res.Tickets[0].CreatedAt, tk.CreatedAt, "createdAt compartido")
	}
	assert.Equal(t, "a", res.Tickets[0].Item.ID)
	assert.Equal(t, 2, res.Tickets[0].Quantity)

	persisted, err := store.Tickets().ListByOrder(context.Background(), res.OrderID)
	require.NoError(t, err)
	require.Len(t, persisted, 2)
	assert.Equal(t, 1, persisted[0].LineNo)
	assert.Equal(t, 2, persisted[1].LineNo)

	require.Len(t, pub.placed, 1)
	assert.Equal(t, res.OrderID, pub.placed[0].OrderID)
	assert.Len(t, pub.placed[0].TicketIDs, 2)
}

func TestPlace_CarritoVacio(t *testing.T) {
	store := memory.NewStore()
	uc := NewUseCase(store, nil, nil)
	_, err := uc.Place(context.Background(), dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, store.TicketCount())
}

func TestPlace_TodasLasLineasInvalidas(t *testing.T) {
	store := memory.NewStore()
	seedMenu(t, store, "a")
	uc := NewUseCase(store, nil, nil)
	_, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{
		{ID: "", Quantity: 1},
		{ID: "a", Quantity: 0},
		{ID: "a", Quantity: -3},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidCart)
	assert.Zero(t, store.TicketCount())
}

func TestPlace_DescartaLineasInvalidasYPlatosInexistentes(t *testing.T) {
	store := memory.NewStore()
	seedMenu(t, store, "a")
	uc := NewUseCase(store, nil, nil)
	res, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{
		{ID: "a", Quantity: 0},
		{ID: "fantasma", Quantity: 1},
		{ID: "a", Quantity: MaxLineQuantity + 1},
		{ID: "a", Quantity: 3000000000},
		{ID: " a ", Quantity: 3},
	}})
	require.NoError(t, err)
	require.Len(t, res.Tickets, 1)
	assert.Equal(t, 3, res.Tickets[0].Quantity)
}

func TestPlace_CantidadFueraDeRangoEsCarritoInvalido(t *testing.T) {
	store := memory.NewStore()
	seedMenu(t, store, "a")
	uc := NewUseCase(store, nil, nil)
	_, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "a", Quantity: 3000000000}}})
	assert.ErrorIs(t, err, domain.ErrInvalidCart)
	assert.Zero(t, store.TicketCount())

	res, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "a", Quantity: MaxLineQuantity}}})
	require.NoError(t, err)
	assert.Equal(t, MaxLineQuantity, res.Tickets[0].Quantity)
}

func TestPlace_CodigoYaUsadoSeReintentaConOtro(t *testing.T) {
	store := memory.NewStore()
	seedMenu(t, store, "a")
	uc := NewUseCase(store, nil, nil)
	codes := []string{"KT-AAAAAAAA", "KT-AAAAAAAA", "KT-CCCCCCCC"}
	uc.newID = func() string {
		c := codes[0]
		codes = codes[1:]
		return c
	}
	first, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "a", Quantity: 1}}})
	require.NoError(t, err)
	assert.Equal(t, "KT-AAAAAAAA", first.Tickets[0].ID)

	second, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "a", Quantity: 2}}})
	require.NoError(t, err)
	require.Len(t, second.Tickets, 1)
	assert.Equal(t, "KT-CCCCCCCC", second.Tickets[0].ID)
	assert.Equal(t, 2, store.TicketCount())
}

func TestPlace_CodigoSiempreRepetidoDevuelveConflicto(t *testing.T) {
	store := memory.NewStore()
	seedMenu(t, store, "a")
	uc := NewUseCase(store, nil, nil)
	uc.newID = func() string { return "KT-AAAAAAAA" }
	_, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "a", Quantity: 1}}})
	require.NoError(t, err)

	_, err = uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "a", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrTicketIDTaken)
	assert.Equal(t, 1, store.TicketCount())
}

func TestPlace_PlatoSinPrecioNoSePide(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Menu().Create(context.Background(), &entity.MenuItem{ID: "sin-precio", Name: "X", CreatedAt: time.Now()}))
	pub := &recordingPublisher{}
	uc := NewUseCase(store, pub, nil)
	res, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "sin-precio", Quantity: 1}}})
	require.NoError(t, err)
	assert.Empty(t, res.Tickets)
	assert.Empty(t, pub.placed, "sin tickets no hay evento")
}

func TestPlace_TodoONada(t *testing.T) {
	store := memory.NewStore()
	seedMenu(t, store, "a", "b")
	store.FailCreateBatch = errors.New("disco lleno")
	pub := &recordingPublisher{}
	uc := NewUseCase(store, pub, nil)
	_, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "a", Quantity: 1}, {ID: "b", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Zero(t, store.TicketCount())
	assert.Empty(t, pub.placed)
}

func TestPlace_CodigosDistintosAunqueElGeneradorRepita(t *testing.T) {
	store := memory.NewStore()
	seedMenu(t, store, "a")
	uc := NewUseCase(store, nil, nil)
	codes := []string{"KT-AAAAAAAA", "KT-AAAAAAAA", "KT-BBBBBBBB"}
	uc.newID = func() string {
		c := codes[0]
		codes = codes[1:]
		return c
	}
	res, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "a", Quantity: 1}, {ID: "a", Quantity: 2}}})
	require.NoError(t, err)
	require.Len(t, res.Tickets, 2)
	assert.Equal(t, "KT-AAAAAAAA", res.Tickets[0].ID)
	assert.Equal(t, "KT-BBBBBBBB", res.Tickets[1].ID)
}

func TestPlace_FalloAlPublicarNoFallaElPedido(t *testing.T) {
	store := memory.NewStore()
	seedMenu(t, store, "a")
	uc := NewUseCase(store, &recordingPublisher{err: errors.New("broker caído")}, nil)
	res, err := uc.Place(context.Background(), dto.CreateOrderRequest{Items: []dto.CartLine{{ID: "a", Quantity: 1}}})
	require.NoError(t, err)
	assert.Len(t, res.Tickets, 1)
	assert.Equal(t, 1, store.TicketCount())
}

func TestNewTicketID(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Regexp(t, ticketIDPattern, NewTicketID())
	}
}
