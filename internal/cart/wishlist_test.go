package cart

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

// Feature: wishlist, Property: adding a present product is a no-op
func TestProperty_WishlistAddIsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding a product twice keeps a single entry", prop.ForAll(
		func(ids []string, extra string) bool {
			w := NewWishlist()
			for _, id := range ids {
				w.Add(id)
			}
			w.Add(extra)
			before := len(w.ProductIDs)

			w.Add(extra)

			if len(w.ProductIDs) != before {
				t.Logf("FAIL: length changed from %d to %d", before, len(w.ProductIDs))
				return false
			}
			return w.Contains(extra)
		},
		gen.SliceOf(gen.Identifier()),
		gen.Identifier(),
	))

	properties.Property("toggle twice restores membership", prop.ForAll(
		func(id string) bool {
			w := NewWishlist()
			added := w.Toggle(id)
			removed := !w.Toggle(id)
			return added && removed && !w.Contains(id)
		},
		gen.Identifier(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestWishlistKeepsOrder(t *testing.T) {
	w := NewWishlist()
	w.Add("a")
	w.Add("b")
	w.Add("c")
	w.Add("a")

	assert.Equal(t, []string{"a", "b", "c"}, w.ProductIDs)

	assert.True(t, w.Remove("b"))
	assert.False(t, w.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, w.ProductIDs)
}
