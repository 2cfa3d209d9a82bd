// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa en tests de casos de uso y de HTTP, y como almacenamiento local con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/internal/domain/ticket"
)

type storedItem struct {
	item entity.MenuItem
	seq  int
}

type storedTicket struct {
	t   entity.KitchenTicket
	seq int
}

// Store agrupa menú, tickets y clientes bajo un único mutex.
type Store struct {
	mu        sync.Mutex
	seq       int
	menu      map[string]*storedItem
	tickets   map[string]*storedTicket
	customers map[string]*entity.Customer

	// FailCreateBatch hace fallar la próxima inserción de tickets (tests de atomicidad).
	FailCreateBatch error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		menu:      map[string]*storedItem{},
		tickets:   map[string]*storedTicket{},
		customers: map[string]*entity.Customer{},
	}
}

// Menu repositorio de platos.
func (s *Store) Menu() repository.MenuItemRepository { return &menuRepo{s: s} }

// Tickets repositorio de tickets fuera de transacción.
func (s *Store) Tickets() repository.TicketRepository { return &ticketRepo{s: s} }

// Customers repositorio de clientes.
func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{s: s} }

// RunOrder ejecuta fn acumulando las inserciones de tickets; solo se aplican si fn termina sin error.
func (s *Store) RunOrder(ctx context.Context, fn func(repository.MenuItemRepository, repository.TicketRepository) error) error {
	tx := &ticketRepo{s: s, staged: true}
	if err := fn(s.Menu(), tx); err != nil {
		return err
	}
	if len(tx.pending) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertTicketsLocked(tx.pending)
}

// TicketCount total de tickets persistidos.
func (s *Store) TicketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}

func (s *Store) nextSeq() int {
	s.seq++
	return s.seq
}

func (s *Store) insertTicketsLocked(batch []*entity.KitchenTicket) error {
	if s.FailCreateBatch != nil {
		err := s.FailCreateBatch
		s.FailCreateBatch = nil
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	seen := map[string]struct{}{}
	for _, t := range batch {
		if _, dup := s.tickets[t.ID]; dup {
			return fmt.Errorf("ticket %s: %w", t.ID, domain.ErrTicketIDTaken)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: ticket %s duplicado", domain.ErrPersistence, t.ID)
		}
		if _, ok := s.menu[t.MenuItemID]; !ok {
			return fmt.Errorf("%w: plato %s inexistente", domain.ErrPersistence, t.MenuItemID)
		}
		if t.Quantity <= 0 {
			return fmt.Errorf("%w: cantidad inválida", domain.ErrPersistence)
		}
		seen[t.ID] = struct{}{}
	}
	for _, t := range batch {
		s.tickets[t.ID] = &storedTicket{t: *t, seq: s.nextSeq()}
	}
	return nil
}

func (s *Store) withItemLocked(st *storedTicket) *entity.KitchenTicketWithItem {
	out := &entity.KitchenTicketWithItem{KitchenTicket: st.t}
	if it, ok := s.menu[st.t.MenuItemID]; ok {
		out.Item = it.item
	}
	return out
}

func (s *Store) listTicketsLocked(match func(*entity.KitchenTicket) bool) []*entity.KitchenTicketWithItem {
	rows := make([]*storedTicket, 0, len(s.tickets))
	for _, st := range s.tickets {
		if match(&st.t) {
			rows = append(rows, st)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.t.CreatedAt.Equal(b.t.CreatedAt) {
			return a.t.CreatedAt.Before(b.t.CreatedAt)
		}
		if a.t.LineNo != b.t.LineNo {
			return a.t.LineNo < b.t.LineNo
		}
		return a.seq < b.seq
	})
	out := make([]*entity.KitchenTicketWithItem, 0, len(rows))
	for _, st := range rows {
		out = append(out, s.withItemLocked(st))
	}
	return out
}

type menuRepo struct{ s *Store }

func (r *menuRepo) Create(_ context.Context, item *entity.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.menu[item.ID]; dup {
		return fmt.Errorf("%w: plato %s duplicado", domain.ErrPersistence, item.ID)
	}
	r.s.menu[item.ID] = &storedItem{item: *item, seq: r.s.nextSeq()}
	return nil
}

func (r *menuRepo) Update(_ context.Context, item *entity.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.menu[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	created := st.item.CreatedAt
	st.item = *item
	st.item.CreatedAt = created
	return nil
}

func (r *menuRepo) GetByID(_ context.Context, id string) (*entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.menu[id]
	if !ok {
		return nil, nil
	}
	cp := st.item
	return &cp, nil
}

func (r *menuRepo) ListNewestFirst(context.Context) ([]*entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]*storedItem, 0, len(r.s.menu))
	for _, st := range r.s.menu {
		rows = append(rows, st)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.item.CreatedAt.Equal(b.item.CreatedAt) {
			return a.item.CreatedAt.After(b.item.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]*entity.MenuItem, 0, len(rows))
	for _, st := range rows {
		cp := st.item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *menuRepo) FindExisting(_ context.Context, ids []string) (map[string]*entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*entity.MenuItem, len(ids))
	for _, id := range ids {
		if st, ok := r.s.menu[id]; ok {
			cp := st.item
			out[id] = &cp
		}
	}
	return out, nil
}

type ticketRepo struct {
	s       *Store
	staged  bool
	pending []*entity.KitchenTicket
}

func (r *ticketRepo) CreateBatch(_ context.Context, tickets []*entity.KitchenTicket) error {
	if r.staged {
		r.pending = append(r.pending, tickets...)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertTicketsLocked(tickets)
}

func (r *ticketRepo) Transition(_ context.Context, id string, next ticket.Status, from []ticket.Status, at time.Time) (*entity.KitchenTicketWithItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	allowed := false
	for _, f := range from {
		if st.t.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domain.ErrInvalidTransition
	}
	st.t.Status = next
	updated := at
	st.t.UpdatedAt = &updated
	if next == ticket.StatusCompleted && st.t.CompletedAt == nil {
		completed := at
		st.t.CompletedAt = &completed
	}
	return r.s.withItemLocked(st), nil
}

func (r *ticketRepo) ListQueue(context.Context) ([]*entity.KitchenTicketWithItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.listTicketsLocked(func(*entity.KitchenTicket) bool { return true }), nil
}

func (r *ticketRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.KitchenTicketWithItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.listTicketsLocked(func(t *entity.KitchenTicket) bool { return t.OrderID == orderID }), nil
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.customers {
		if x.Email == c.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *customerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) UpdateProfile(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.customers[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name = c.Name
	cur.Phone = c.Phone
	cur.FavoriteDish = c.FavoriteDish
	cur.UpdatedAt = c.UpdatedAt
	return nil
}
