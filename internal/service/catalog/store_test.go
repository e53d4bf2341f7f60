package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"jewelryshop/internal/domain"
)

type stubSlotRepo struct {
	value     []byte
	readErr   error
	writeErr  error
	writes    int
	lastKey   string
	lastValue []byte
}

func (s *stubSlotRepo) Read(_ context.Context, key string) ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return s.value, nil
}

func (s *stubSlotRepo) Write(_ context.Context, key string, value []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.writes++
	s.lastKey = key
	s.lastValue = value
	s.value = value
	return nil
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Silver Bracelet", Price: 3500, Stock: 10},
		{ID: "p2", Name: "Gold Necklace", Price: 8900, Stock: 5},
		{ID: "p3", Name: "Pearl Earrings", Price: 4200, Stock: 0},
	}
}

func newTestStore(t *testing.T, repo *stubSlotRepo, seed []domain.Product) *Store {
	t.Helper()
	s, err := New(context.Background(), repo, seed, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func sameIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewSeedsAbsentSlot(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())

	if repo.writes != 1 || repo.lastKey != SlotKey {
		t.Fatalf("expected seed written to %s slot, writes=%d key=%s", SlotKey, repo.writes, repo.lastKey)
	}
	list := s.List()
	if !sameIDs(ids(list), "p1", "p2", "p3") {
		t.Fatalf("unexpected catalog %v", ids(list))
	}
	for i, p := range list {
		if p.Order == nil || *p.Order != i {
			t.Fatalf("expected normalized order %d, got %+v", i, p.Order)
		}
	}
}

func TestNewMalformedSlotFallsBackToSeed(t *testing.T) {
	repo := &stubSlotRepo{value: []byte(`{not json`)}
	s := newTestStore(t, repo, seedProducts())
	if len(s.List()) != 3 {
		t.Fatalf("expected seed catalog after malformed slot")
	}
}

func TestNewNilSeedYieldsEmptyCatalog(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, nil)
	if len(s.List()) != 0 {
		t.Fatalf("expected empty catalog")
	}
	if repo.writes != 0 {
		t.Fatalf("expected no write for empty catalog, got %d", repo.writes)
	}
}

func TestNewLoadsExistingSlot(t *testing.T) {
	stored := []domain.Product{
		{ID: "b", Name: "B", Order: intPtr(1)},
		{ID: "a", Name: "A", Order: intPtr(0)},
	}
	raw, _ := json.Marshal(stored)
	repo := &stubSlotRepo{value: raw}
	s := newTestStore(t, repo, seedProducts())

	list := s.List()
	if !sameIDs(ids(list), "a", "b") {
		t.Fatalf("expected stored catalog sorted by order, got %v", ids(list))
	}
}

func TestAddAppendsAtEnd(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())

	added, err := s.Add(context.Background(), domain.Product{Name: "Ruby Ring", Price: 12000, Stock: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Fatalf("expected generated id")
	}
	list := s.List()
	if len(list) != 4 || list[3].ID != added.ID {
		t.Fatalf("expected new product appended, got %v", ids(list))
	}
	if *list[3].Order != 3 {
		t.Fatalf("expected order 3, got %d", *list[3].Order)
	}
	if repo.lastKey != SlotKey {
		t.Fatalf("expected persist to %s", SlotKey)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())

	err := s.Update(context.Background(), "p1", Patch{Price: int64Ptr(5000), Stock: intPtr(7)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	p, err := s.Get("p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Price != 5000 || p.Stock != 7 {
		t.Fatalf("unexpected product after update %+v", p)
	}
	if p.Name != "Silver Bracelet" {
		t.Fatalf("untouched field changed: %q", p.Name)
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())
	before := repo.writes

	if err := s.Update(context.Background(), "missing", Patch{Name: strPtr("X")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.writes != before {
		t.Fatalf("expected no persist on unknown id")
	}
}

func TestRemove(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())

	if err := s.Remove(context.Background(), "p2"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !sameIDs(ids(s.List()), "p1", "p3") {
		t.Fatalf("unexpected catalog %v", ids(s.List()))
	}
	if _, err := s.Get("p2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// Removing again is a silent no-op.
	if err := s.Remove(context.Background(), "p2"); err != nil {
		t.Fatalf("remove again: %v", err)
	}
}

func TestMoveUpSwapsOrderValues(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())

	if err := s.MoveUp(context.Background(), "p2"); err != nil {
		t.Fatalf("move up: %v", err)
	}
	list := s.List()
	if !sameIDs(ids(list), "p2", "p1", "p3") {
		t.Fatalf("unexpected order %v", ids(list))
	}
	if *list[0].Order != 0 || *list[1].Order != 1 {
		t.Fatalf("expected swapped order values, got %d %d", *list[0].Order, *list[1].Order)
	}
}

func TestMoveUpFirstIsNoop(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())
	before := repo.writes

	if err := s.MoveUp(context.Background(), "p1"); err != nil {
		t.Fatalf("move up: %v", err)
	}
	if !sameIDs(ids(s.List()), "p1", "p2", "p3") {
		t.Fatalf("expected unchanged order")
	}
	if repo.writes != before {
		t.Fatalf("expected no persist for edge no-op")
	}
}

func TestMoveDownLastIsNoop(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())

	if err := s.MoveDown(context.Background(), "p3"); err != nil {
		t.Fatalf("move down: %v", err)
	}
	if !sameIDs(ids(s.List()), "p1", "p2", "p3") {
		t.Fatalf("expected unchanged order")
	}
}

func TestMoveSequencesKeepInvariant(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())
	ctx := context.Background()

	moves := []func() error{
		func() error { return s.MoveDown(ctx, "p1") },
		func() error { return s.MoveDown(ctx, "p1") },
		func() error { return s.MoveUp(ctx, "p3") },
		func() error { return s.MoveDown(ctx, "p2") },
		func() error { return s.MoveUp(ctx, "p1") },
	}
	for i, move := range moves {
		if err := move(); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		list := s.List()
		seen := map[string]bool{}
		for j, p := range list {
			if seen[p.ID] {
				t.Fatalf("duplicate id %s after move %d", p.ID, i)
			}
			seen[p.ID] = true
			if j > 0 && *list[j-1].Order > *p.Order {
				t.Fatalf("list not sorted by order after move %d", i)
			}
		}
		if len(list) != 3 {
			t.Fatalf("unexpected length %d after move %d", len(list), i)
		}
	}
}

func TestDecrementStockClampsAtZero(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())
	ctx := context.Background()

	if err := s.DecrementStock(ctx, "p2", 3); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	p, _ := s.Get("p2")
	if p.Stock != 2 {
		t.Fatalf("expected stock 2, got %d", p.Stock)
	}

	if err := s.DecrementStock(ctx, "p2", 99); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	p, _ = s.Get("p2")
	if p.Stock != 0 {
		t.Fatalf("expected stock clamped at 0, got %d", p.Stock)
	}

	// Unknown id is a no-op.
	if err := s.DecrementStock(ctx, "missing", 1); err != nil {
		t.Fatalf("decrement unknown: %v", err)
	}
}

func TestMutationsPersistWholeCatalog(t *testing.T) {
	repo := &stubSlotRepo{readErr: domain.ErrNotFound}
	s := newTestStore(t, repo, seedProducts())

	if err := s.DecrementStock(context.Background(), "p1", 1); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	var persisted []domain.Product
	if err := json.Unmarshal(repo.lastValue, &persisted); err != nil {
		t.Fatalf("unmarshal persisted catalog: %v", err)
	}
	if len(persisted) != 3 || persisted[0].Stock != 9 {
		t.Fatalf("unexpected persisted catalog %+v", persisted)
	}
}
