package repository

import (
	"context"
	"testing"

	"lace-store/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(slug, categoryID string, collections ...string) *domain.Product {
	return &domain.Product{
		Slug:          slug,
		CategoryID:    categoryID,
		Price:         decimal.NewFromInt(189000),
		Images:        []string{"https://cdn.example/" + slug + ".jpg"},
		InStock:       true,
		SKU:           "SKU-" + slug,
		PropertyIDs:   []string{},
		CollectionIDs: collections,
		Translations: domain.Bundle[domain.ProductText]{
			domain.LocaleRU: {Name: "Товар " + slug, Description: "Описание"},
		},
	}
}

// runProductContract checks the behaviour every ProductRepository backend shares
func runProductContract(t *testing.T, repo ProductRepository) {
	ctx := context.Background()
	suffix := uuid.New().String()[:8]
	category := "cat-" + suffix

	lace := newTestProduct("lace-"+suffix, category, "summer-"+suffix, "lace-"+suffix)
	silk := newTestProduct("silk-"+suffix, category)
	other := newTestProduct("other-"+suffix, "other-"+suffix, "summer-"+suffix)

	for _, p := range []*domain.Product{lace, silk, other} {
		require.NoError(t, repo.Create(ctx, p))
		require.NotEmpty(t, p.ID, "create must assign an ID")
	}

	found, err := repo.FindBySlug(ctx, lace.Slug)
	require.NoError(t, err)
	assert.Equal(t, lace.ID, found.ID)
	assert.True(t, found.Price.Equal(lace.Price))
	assert.Equal(t, lace.Translations, found.Translations)

	_, err = repo.FindBySlug(ctx, "missing-"+suffix)
	assert.ErrorIs(t, err, ErrNotFound)

	byCategory, err := repo.ListByCategory(ctx, category)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{lace.ID, silk.ID}, productIDs(byCategory))

	byCollection, err := repo.ListByCollection(ctx, "summer-"+suffix)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{lace.ID, other.ID}, productIDs(byCollection))

	duplicate := newTestProduct(lace.Slug, category)
	assert.ErrorIs(t, repo.Create(ctx, duplicate), ErrSlugTaken)

	silk.InStock = false
	silk.Price = decimal.RequireFromString("99500.50")
	require.NoError(t, repo.Update(ctx, silk))
	updated, err := repo.FindByID(ctx, silk.ID)
	require.NoError(t, err)
	assert.False(t, updated.InStock)
	assert.True(t, updated.Price.Equal(silk.Price))

	require.NoError(t, repo.Delete(ctx, other.ID))
	_, err = repo.FindByID(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, other.ID), ErrNotFound)

	ghost := newTestProduct("ghost-"+suffix, category)
	ghost.ID = "ghost-" + suffix
	assert.ErrorIs(t, repo.Update(ctx, ghost), ErrNotFound)
}

// runUserContract checks email lookups and uniqueness
func runUserContract(t *testing.T, repo UserRepository) {
	ctx := context.Background()
	email := "Manager-" + uuid.New().String()[:8] + "@Example.com"

	user := &domain.User{Email: email, Name: "Manager", Password: "hash", Role: domain.RoleManager}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, domain.RoleManager, found.Role)

	dup := &domain.User{Email: domain.NormalizeEmail(email), Name: "Copy", Password: "x", Role: domain.RoleAdmin}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrUserAlreadyExists)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

// runSettingsContract checks that telegram settings behave as a singleton
func runSettingsContract(t *testing.T, repo SettingsRepository) {
	ctx := context.Background()

	empty, err := repo.GetTelegram(ctx)
	require.NoError(t, err)
	assert.False(t, empty.IsActive)
	assert.Empty(t, empty.Chats)

	settings := &domain.TelegramSettings{
		BotToken: "123:abc",
		IsActive: true,
		Chats:    []domain.TelegramChat{{ChatID: "-1001", IsActive: true, NotifyNewOrders: true}},
	}
	require.NoError(t, repo.SaveTelegram(ctx, settings))
	require.NotEmpty(t, settings.ID)

	again := &domain.TelegramSettings{BotToken: "456:def", IsActive: false}
	require.NoError(t, repo.SaveTelegram(ctx, again))
	assert.Equal(t, settings.ID, again.ID, "saving without an ID must update the existing record")

	loaded, err := repo.GetTelegram(ctx)
	require.NoError(t, err)
	assert.Equal(t, "456:def", loaded.BotToken)
	assert.False(t, loaded.IsActive)
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
