package repository

import (
	"context"
	"errors"

	"lace-store/internal/domain"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	ErrSlugTaken         = errors.New("slug is already used by another record")
)

// EntityPtr constrains a type parameter to a pointer to an entity struct
type EntityPtr[T any] interface {
	*T
	domain.Entity
}

// Store is the CRUD surface every collection exposes
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	// Create persists the entity and fills in its ID
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository adds the storefront lookups to the product collection
type ProductRepository interface {
	Store[domain.Product]
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	ListByCollection(ctx context.Context, collectionID string) ([]domain.Product, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Store[domain.User]
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SettingsRepository gives access to the single Telegram settings record
type SettingsRepository interface {
	// GetTelegram returns the stored settings, or empty inactive settings when none exist
	GetTelegram(ctx context.Context) (*domain.TelegramSettings, error)
	SaveTelegram(ctx context.Context, settings *domain.TelegramSettings) error
}

// Repositories bundles one backend's collections
type Repositories struct {
	Products    ProductRepository
	Categories  Store[domain.Category]
	Collections Store[domain.Collection]
	Properties  Store[domain.Property]
	Orders      Store[domain.Order]
	Users       UserRepository
	Team        Store[domain.TeamMember]
	About       Store[domain.CompanyInfo]
	Social      Store[domain.SocialLink]
	Seasons     Store[domain.Season]
	Policies    Store[domain.PrivacyPolicy]
	Settings    SettingsRepository
}
