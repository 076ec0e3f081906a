package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"lace-store/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProductRepository(t *testing.T) {
	runProductContract(t, NewMemory().Products)
}

func TestMemoryUserRepository(t *testing.T) {
	runUserContract(t, NewMemory().Users)
}

func TestMemorySettingsRepository(t *testing.T) {
	runSettingsContract(t, NewMemory().Settings)
}

func TestMemoryStoreKeepsInsertionOrderAndCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[domain.Category]()

	first := &domain.Category{Slug: "bras", Translations: domain.Bundle[domain.NameText]{domain.LocaleRU: {Name: "Бюстгальтеры"}}}
	second := &domain.Category{Slug: "panties", Translations: domain.Bundle[domain.NameText]{domain.LocaleRU: {Name: "Трусики"}}}
	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))

	// mutating the caller's copy must not reach the store
	first.Slug = "changed"

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bras", list[0].Slug)
	assert.Equal(t, "panties", list[1].Slug)

	require.NoError(t, store.Delete(ctx, list[0].ID))
	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestMemoryUniquenessHoldsUnderConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	repos := NewMemory()

	const writers = 16
	var created, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := "Owner@Lace.test"
			if i%2 == 0 {
				email = "owner@lace.test"
			}
			err := repos.Users.Create(ctx, &domain.User{Email: email, Name: "Owner", Role: domain.RoleAdmin})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, ErrUserAlreadyExists):
				rejected.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(writers-1), rejected.Load())

	slugs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slugs <- repos.Products.Create(ctx, &domain.Product{Slug: "lace-body", CategoryID: "c1"})
		}()
	}
	wg.Wait()
	close(slugs)

	ok := 0
	for err := range slugs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrSlugTaken)
		}
	}
	assert.Equal(t, 1, ok)

	list, err := repos.Products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
