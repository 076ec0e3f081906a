package datastore

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"lace-store/internal/domain"
	"lace-store/internal/repository"
)

// Collection paths as named by the hosted store
const (
	pathProducts    = "/products"
	pathCategories  = "/category"
	pathCollections = "/collection"
	pathProperties  = "/property"
	pathOrders      = "/orders"
	pathTeam        = "/ourComand"
	pathAbout       = "/aboutcompany"
	pathSocial      = "/socilalMediaOnlineResource"
	pathSeasons     = "/seasons"
	pathPolicies    = "/policyPrivacy"
	pathUsers       = "/auth"
	pathRegister    = "/register"
	pathTelegram    = "/telegramSettings"
)

type productResource struct {
	*resource[domain.Product, *domain.Product]
}

func (r *productResource) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	items, err := r.match(ctx, url.Values{"slug": {slug}}, func(p *domain.Product) bool {
		return p.Slug == slug
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return &items[0], nil
}

func (r *productResource) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return r.match(ctx, url.Values{"categoryId": {categoryID}}, func(p *domain.Product) bool {
		return p.CategoryID == categoryID
	})
}

// ListByCollection filters locally; the store cannot query inside arrays
func (r *productResource) ListByCollection(ctx context.Context, collectionID string) ([]domain.Product, error) {
	return r.match(ctx, nil, func(p *domain.Product) bool {
		return p.InCollection(collectionID)
	})
}

// Create enforces slug uniqueness, which the store does not
func (r *productResource) Create(ctx context.Context, product *domain.Product) error {
	if err := r.checkSlug(ctx, product); err != nil {
		return err
	}
	return r.resource.Create(ctx, product)
}

func (r *productResource) Update(ctx context.Context, product *domain.Product) error {
	if err := r.checkSlug(ctx, product); err != nil {
		return err
	}
	return r.resource.Update(ctx, product)
}

// checkSlug is check-then-act: the hosted store has no unique constraint or
// transaction, so two concurrent writers can still claim the same slug.
func (r *productResource) checkSlug(ctx context.Context, product *domain.Product) error {
	existing, err := r.FindBySlug(ctx, product.Slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != product.ID {
		return repository.ErrSlugTaken
	}
	return nil
}

// userResource reads accounts from /auth and registers new ones through /register
type userResource struct {
	*resource[domain.User, *domain.User]
}

func (r *userResource) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	want := domain.NormalizeEmail(email)
	items, err := r.match(ctx, url.Values{"email": {want}}, func(u *domain.User) bool {
		return domain.NormalizeEmail(u.Email) == want
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return &items[0], nil
}

// Create rejects known emails first. Like checkSlug this races with
// concurrent registrations of the same email.
func (r *userResource) Create(ctx context.Context, user *domain.User) error {
	_, err := r.FindByEmail(ctx, user.Email)
	if err == nil {
		return repository.ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return r.client.do(ctx, http.MethodPost, pathRegister, nil, user, user)
}

// New wires every collection to the hosted store
func New(client *Client) *repository.Repositories {
	return &repository.Repositories{
		Products:    &productResource{newResource[domain.Product](client, pathProducts)},
		Categories:  newResource[domain.Category](client, pathCategories),
		Collections: newResource[domain.Collection](client, pathCollections),
		Properties:  newResource[domain.Property](client, pathProperties),
		Orders:      newResource[domain.Order](client, pathOrders),
		Users:       &userResource{newResource[domain.User](client, pathUsers)},
		Team:        newResource[domain.TeamMember](client, pathTeam),
		About:       newResource[domain.CompanyInfo](client, pathAbout),
		Social:      newResource[domain.SocialLink](client, pathSocial),
		Seasons:     newResource[domain.Season](client, pathSeasons),
		Policies:    newResource[domain.PrivacyPolicy](client, pathPolicies),
		Settings:    repository.NewSettingsRepository(newResource[domain.TelegramSettings](client, pathTelegram)),
	}
}
