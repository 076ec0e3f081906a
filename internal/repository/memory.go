package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"lace-store/internal/domain"

	"github.com/google/uuid"
)

// memoryStore keeps JSON snapshots of entities so callers never share memory with the store
type memoryStore[T any, PT EntityPtr[T]] struct {
	mu    sync.RWMutex
	order []string
	docs  map[string][]byte
}

func newMemoryStore[T any, PT EntityPtr[T]]() *memoryStore[T, PT] {
	return &memoryStore[T, PT]{docs: make(map[string][]byte)}
}

// NewMemoryStore creates an in-process Store, used by the memory driver and tests
func NewMemoryStore[T any, PT EntityPtr[T]]() Store[T] {
	return newMemoryStore[T, PT]()
}

func (s *memoryStore[T, PT]) Create(ctx context.Context, entity *T) error {
	return s.write(entity, true, nil, nil)
}

func (s *memoryStore[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.filter(func(*T) bool { return true })
}

func (s *memoryStore[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	s.mu.RLock()
	data, ok := s.docs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	entity := new(T)
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return entity, nil
}

func (s *memoryStore[T, PT]) Update(ctx context.Context, entity *T) error {
	return s.write(entity, false, nil, nil)
}

// write stores entity under one write lock. When clash reports true for any
// stored document, nothing is written and clashErr is returned.
func (s *memoryStore[T, PT]) write(entity *T, create bool, clash func(*T) bool, clashErr error) error {
	e := PT(entity)
	assigned := false
	if create && e.GetID() == "" {
		e.SetID(uuid.New().String())
		assigned = true
	}
	id := e.GetID()

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.docs[id]
	if !create && !exists {
		return ErrNotFound
	}

	if clash != nil {
		for _, other := range s.order {
			var item T
			if err := json.Unmarshal(s.docs[other], &item); err != nil {
				return fmt.Errorf("failed to decode document: %w", err)
			}
			if clash(&item) {
				if assigned {
					e.SetID("")
				}
				return clashErr
			}
		}
	}

	if !exists {
		s.order = append(s.order, id)
	}
	s.docs[id] = data
	return nil
}

func (s *memoryStore[T, PT]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memoryStore[T, PT]) filter(keep func(*T) bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []T{}
	for _, id := range s.order {
		var item T
		if err := json.Unmarshal(s.docs[id], &item); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		if keep(&item) {
			items = append(items, item)
		}
	}
	return items, nil
}

type memoryProductRepository struct {
	*memoryStore[domain.Product, *domain.Product]
}

func (r *memoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.write(product, true, slugClash(product), ErrSlugTaken)
}

func (r *memoryProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.write(product, false, slugClash(product), ErrSlugTaken)
}

// slugClash matches another product with the same slug
func slugClash(product *domain.Product) func(*domain.Product) bool {
	return func(p *domain.Product) bool {
		return p.Slug == product.Slug && p.ID != product.ID
	}
}

func (r *memoryProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	items, err := r.filter(func(p *domain.Product) bool { return p.Slug == slug })
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

func (r *memoryProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return r.filter(func(p *domain.Product) bool { return p.CategoryID == categoryID })
}

func (r *memoryProductRepository) ListByCollection(ctx context.Context, collectionID string) ([]domain.Product, error) {
	return r.filter(func(p *domain.Product) bool { return p.InCollection(collectionID) })
}

type memoryUserRepository struct {
	*memoryStore[domain.User, *domain.User]
}

func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	want := domain.NormalizeEmail(user.Email)
	return r.write(user, true, func(u *domain.User) bool {
		return domain.NormalizeEmail(u.Email) == want
	}, ErrUserAlreadyExists)
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	want := domain.NormalizeEmail(email)
	items, err := r.filter(func(u *domain.User) bool { return domain.NormalizeEmail(u.Email) == want })
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

// NewMemory creates a full set of in-process collections
func NewMemory() *Repositories {
	return &Repositories{
		Products:    &memoryProductRepository{newMemoryStore[domain.Product]()},
		Categories:  NewMemoryStore[domain.Category](),
		Collections: NewMemoryStore[domain.Collection](),
		Properties:  NewMemoryStore[domain.Property](),
		Orders:      NewMemoryStore[domain.Order](),
		Users:       &memoryUserRepository{newMemoryStore[domain.User]()},
		Team:        NewMemoryStore[domain.TeamMember](),
		About:       NewMemoryStore[domain.CompanyInfo](),
		Social:      NewMemoryStore[domain.SocialLink](),
		Seasons:     NewMemoryStore[domain.Season](),
		Policies:    NewMemoryStore[domain.PrivacyPolicy](),
		Settings:    NewSettingsRepository(NewMemoryStore[domain.TelegramSettings]()),
	}
}
