package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"

	"jewelryshop/internal/domain"
	slotrepo "jewelryshop/internal/repository/slot"

	"github.com/google/uuid"
)

// SlotKey is the storage slot holding the serialized catalog.
const SlotKey = "products"

// Store owns the product catalog: display order, stock levels and the
// admin-facing mutations. The whole catalog is one storage slot; every
// mutation renormalizes the list and writes the slot back (last writer wins,
// there is no per-product persistence).
type Store struct {
	repo   slotrepo.Repository
	logger *log.Logger

	mu       sync.RWMutex
	products []domain.Product
}

// New loads the catalog slot once. An absent or malformed slot falls back to
// the given seed, which is written back immediately so the next load sees it.
// A nil seed yields an empty catalog.
func New(ctx context.Context, repo slotrepo.Repository, seed []domain.Product, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{repo: repo, logger: logger}

	raw, err := repo.Read(ctx, SlotKey)
	if err == nil {
		var products []domain.Product
		if jsonErr := json.Unmarshal(raw, &products); jsonErr == nil {
			s.products = normalize(products)
			return s, nil
		}
		logger.Printf("catalog: malformed %s slot, falling back to seed", SlotKey)
	}

	s.products = normalize(seed)
	if len(s.products) > 0 {
		if err := s.persist(ctx); err != nil {
			return nil, fmt.Errorf("write seed catalog: %w", err)
		}
	}
	return s, nil
}

// List returns products sorted ascending by order. The result is a copy.
func (s *Store) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get returns the product with the given id, or domain.ErrNotFound.
func (s *Store) Get(id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Add assigns a fresh id, appends at the end of the display order and
// persists. The caller supplies everything but ID and Order.
func (s *Store) Add(ctx context.Context, data domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.ID = uuid.NewString()
	order := len(s.products)
	data.Order = &order
	s.products = normalize(append(s.products, data))
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	s.logger.Printf("catalog: added id=%s name=%q", data.ID, data.Name)
	return &data, nil
}

// Patch carries the admin-editable fields of a product. Nil fields are left
// untouched by Update.
type Patch struct {
	Name      *string
	Price     *int64
	Image     *string
	Stock     *int
	Options   *domain.ProductOptions
	DetailURL *string
}

// Update merges patch into the product with the given id and persists.
// Unknown ids are a silent no-op.
func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Printf("catalog: update id=%s not found, skipping", id)
		return nil
	}
	p := &s.products[idx]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Options != nil {
		p.Options = patch.Options
	}
	if patch.DetailURL != nil {
		p.DetailURL = *patch.DetailURL
	}
	s.products = normalize(s.products)
	return s.persist(ctx)
}

// Remove deletes the product with the given id and persists. Unknown ids are
// a silent no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Printf("catalog: remove id=%s not found, skipping", id)
		return nil
	}
	s.products = normalize(append(s.products[:idx], s.products[idx+1:]...))
	s.logger.Printf("catalog: removed id=%s", id)
	return s.persist(ctx)
}

// MoveUp swaps the order value of the product with its predecessor in the
// current display order. No-op at the first position or on unknown ids.
func (s *Store) MoveUp(ctx context.Context, id string) error {
	return s.swapWithNeighbor(ctx, id, -1)
}

// MoveDown swaps the order value of the product with its successor in the
// current display order. No-op at the last position or on unknown ids.
func (s *Store) MoveDown(ctx context.Context, id string) error {
	return s.swapWithNeighbor(ctx, id, +1)
}

func (s *Store) swapWithNeighbor(ctx context.Context, id string, dir int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	other := idx + dir
	if other < 0 || other >= len(s.products) {
		return nil
	}
	// Swap the order values, not the slice positions: repeated swaps may
	// leave a non-contiguous permutation, the sort below keeps it coherent.
	s.products[idx].Order, s.products[other].Order = s.products[other].Order, s.products[idx].Order
	s.products = normalize(s.products)
	return s.persist(ctx)
}

// DecrementStock lowers the product's stock by amount, clamped at zero, and
// persists. Unknown ids are a silent no-op.
func (s *Store) DecrementStock(ctx context.Context, id string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Printf("catalog: decrement id=%s not found, skipping", id)
		return nil
	}
	p := &s.products[idx]
	p.Stock -= amount
	if p.Stock < 0 {
		p.Stock = 0
	}
	s.products = normalize(s.products)
	s.logger.Printf("catalog: decremented id=%s by=%d stock=%d", id, amount, p.Stock)
	return s.persist(ctx)
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the lock held.
func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.products)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := s.repo.Write(ctx, SlotKey, raw); err != nil {
		return fmt.Errorf("write catalog slot: %w", err)
	}
	return nil
}

// normalize defaults each missing order to its positional index, then
// stable-sorts ascending by order. Products that never carried an order field
// degrade to insertion order.
func normalize(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	for i := range out {
		if out[i].Order == nil {
			order := i
			out[i].Order = &order
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Order < *out[j].Order
	})
	return out
}
