package cart

import (
	"log/slog"
	"sync"

	"shopfront/app/service/catalog"

	"github.com/samber/do"
)

type Service struct {
	mu    sync.RWMutex
	carts map[string][]Line
	store *fileStore
}

func New(_ *do.Injector) (*Service, error) {
	store, err := newFileStore()
	if err != nil {
		return nil, err
	}

	carts, err := store.load()
	if err != nil {
		return nil, err
	}

	return &Service{
		carts: carts,
		store: store,
	}, nil
}

func (s *Service) AddItem(session string, product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[session]

	found := false
	for i := range lines {
		if lines[i].Product.ID == product.ID {
			lines[i].Quantity++
			found = true
			break
		}
	}

	if !found {
		lines = append(lines, Line{Product: product, Quantity: 1})
	}

	s.carts[session] = lines
	s.mirror()
}

func (s *Service) RemoveItem(session, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[session]

	kept := lines[:0]
	for _, line := range lines {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}

	s.carts[session] = kept
	s.mirror()
}

func (s *Service) UpdateQuantity(session, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(session, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[session]
	for i := range lines {
		if lines[i].Product.ID == productID {
			lines[i].Quantity = quantity
			break
		}
	}

	s.mirror()
}

func (s *Service) Clear(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, session)
	s.mirror()
}

func (s *Service) Snapshot(session string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.carts[session]

	snapshot := Snapshot{
		Items: make([]Line, len(lines)),
	}
	copy(snapshot.Items, lines)

	for _, line := range lines {
		snapshot.TotalItems += line.Quantity
		snapshot.TotalPrice += line.Product.Price * float64(line.Quantity)
	}

	return snapshot
}

// mirror is called with the write lock held.
func (s *Service) mirror() {
	if err := s.store.save(s.carts); err != nil {
		slog.Error("Failed to mirror cart state", "error", err)
	}
}
