package ordering

import (
	"context"
	"sort"
	"sync"

	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/ordering"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	dishPizza = uint(1)
	dishPasta = uint(2)

	ingMozzarella = uint(1)
	ingTomatoes   = uint(2)
	ingOlives     = uint(3)
	ingEggs       = uint(4)
	ingMushrooms  = uint(5)
	ingBasil      = uint(6)
	ingAnchovies  = uint(8)
)

func intPtr(n int) *int { return &n }

// memStore is an in-memory catalog, stock and order store
type memStore struct {
	mu          sync.Mutex
	dishes      map[uint]catalog.Dish
	sizes       map[catalog.Size]catalog.SizeRule
	overrides   map[uint]map[catalog.Size]decimal.Decimal
	ingredients map[uint]catalog.Ingredient
	reqs        []catalog.RequirementEdge
	incs        []catalog.IncompatibilityEdge
	orders      map[uint]*ordering.Order
	nextOrderID uint

	// raceOn empties the ingredient's stock and fails the decrement,
	// as if a concurrent order committed first
	raceOn map[uint]bool
}

func newMemStore() *memStore {
	s := &memStore{
		dishes: map[uint]catalog.Dish{
			dishPizza: {ID: dishPizza, Name: "pizza"},
			dishPasta: {ID: dishPasta, Name: "pasta"},
		},
		sizes: map[catalog.Size]catalog.SizeRule{
			catalog.SizeSmall:  {Size: catalog.SizeSmall, BasePrice: decimal.NewFromInt(5), MaxIngredients: 3},
			catalog.SizeMedium: {Size: catalog.SizeMedium, BasePrice: decimal.NewFromInt(7), MaxIngredients: 5},
			catalog.SizeLarge:  {Size: catalog.SizeLarge, BasePrice: decimal.NewFromInt(9), MaxIngredients: 7},
		},
		overrides: map[uint]map[catalog.Size]decimal.Decimal{},
		ingredients: map[uint]catalog.Ingredient{
			ingMozzarella: {ID: ingMozzarella, Name: "mozzarella", Price: decimal.RequireFromString("1.00"), AvailablePortions: intPtr(3)},
			ingTomatoes:   {ID: ingTomatoes, Name: "tomatoes", Price: decimal.RequireFromString("0.50")},
			ingOlives:     {ID: ingOlives, Name: "olives", Price: decimal.RequireFromString("0.70")},
			ingEggs:       {ID: ingEggs, Name: "eggs", Price: decimal.RequireFromString("1.00")},
			ingMushrooms:  {ID: ingMushrooms, Name: "mushrooms", Price: decimal.RequireFromString("0.80"), AvailablePortions: intPtr(3)},
			ingBasil:      {ID: ingBasil, Name: "basil", Price: decimal.RequireFromString("1.50")},
			ingAnchovies:  {ID: ingAnchovies, Name: "anchovies", Price: decimal.RequireFromString("1.50"), AvailablePortions: intPtr(1)},
		},
		reqs: []catalog.RequirementEdge{
			{IngredientID: ingTomatoes, RequiredIngredientID: ingOlives},
		},
		incs: []catalog.IncompatibilityEdge{
			{IngredientID: ingEggs, IncompatibleWithID: ingMushrooms},
		},
		orders:      map[uint]*ordering.Order{},
		nextOrderID: 1,
		raceOn:      map[uint]bool{},
	}
	return s
}

func cloneIngredient(ing catalog.Ingredient) catalog.Ingredient {
	if ing.AvailablePortions != nil {
		ing.AvailablePortions = intPtr(*ing.AvailablePortions)
	}
	return ing
}

func (s *memStore) stock(id uint) *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIngredient(s.ingredients[id]).AvailablePortions
}

func (s *memStore) ListDishes(_ context.Context) ([]catalog.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Dish, 0, len(s.dishes))
	for _, d := range s.dishes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) FindDish(_ context.Context, id uint) (*catalog.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dishes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &d, nil
}

func (s *memStore) ListSizeRules(_ context.Context) ([]catalog.SizeRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.SizeRule, 0, len(s.sizes))
	for _, size := range catalog.AllSizes {
		if r, ok := s.sizes[size]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) FindSizeRule(_ context.Context, size catalog.Size) (*catalog.SizeRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.sizes[size]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) FindDishSizePrice(_ context.Context, dishID uint, size catalog.Size) (*catalog.DishSizePrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	price, ok := s.overrides[dishID][size]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &catalog.DishSizePrice{DishID: dishID, Size: size, BasePrice: price}, nil
}

func (s *memStore) ListIngredients(_ context.Context) ([]catalog.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Ingredient, 0, len(s.ingredients))
	for _, ing := range s.ingredients {
		out = append(out, cloneIngredient(ing))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) FindIngredientsByIDs(_ context.Context, ids []uint) ([]catalog.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []catalog.Ingredient
	for _, id := range ids {
		if ing, ok := s.ingredients[id]; ok {
			out = append(out, cloneIngredient(ing))
		}
	}
	return out, nil
}

func (s *memStore) LoadConstraintGraph(ctx context.Context) (*catalog.ConstraintGraph, error) {
	ings, _ := s.ListIngredients(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.NewConstraintGraph(ings, s.reqs, s.incs), nil
}

func (s *memStore) DecrementPortions(_ context.Context, id uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ing, ok := s.ingredients[id]
	if !ok {
		return shared.ErrStockConflict
	}
	if s.raceOn[id] {
		ing.AvailablePortions = intPtr(0)
		s.ingredients[id] = ing
		return shared.ErrStockConflict
	}
	if ing.AvailablePortions == nil {
		return nil
	}
	if *ing.AvailablePortions < quantity {
		return shared.ErrStockConflict
	}
	ing.AvailablePortions = intPtr(*ing.AvailablePortions - quantity)
	s.ingredients[id] = ing
	return nil
}

func (s *memStore) RestorePortions(_ context.Context, id uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ing, ok := s.ingredients[id]
	if !ok || ing.AvailablePortions == nil {
		return nil
	}
	ing.AvailablePortions = intPtr(*ing.AvailablePortions + quantity)
	s.ingredients[id] = ing
	return nil
}

func (s *memStore) Create(_ context.Context, order *ordering.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = s.nextOrderID
	s.nextOrderID++
	stored := *order
	stored.Lines = append([]ordering.OrderLine(nil), order.Lines...)
	s.orders[order.ID] = &stored
	return nil
}

func (s *memStore) FindByID(_ context.Context, id uint) (*ordering.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *o
	cp.ClearDomainEvents()
	return &cp, nil
}

func (s *memStore) FindByUser(_ context.Context, userID uint) ([]ordering.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ordering.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *memStore) MarkCancelled(_ context.Context, order *ordering.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[order.ID]
	if !ok || stored.Status != ordering.OrderStatusConfirmed {
		return shared.ErrInvalidState
	}
	stored.Status = order.Status
	stored.CancelledAt = order.CancelledAt
	return nil
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

var (
	_ catalog.Repository       = (*memStore)(nil)
	_ catalog.StockRepository  = (*memStore)(nil)
	_ ordering.OrderRepository = (*memStore)(nil)
)
