package cart

// Wishlist is an ordered set of product IDs
type Wishlist struct {
	ProductIDs []string `json:"productIds"`
}

func NewWishlist() *Wishlist {
	return &Wishlist{ProductIDs: []string{}}
}

// Add appends productID unless it is already present
func (w *Wishlist) Add(productID string) {
	if w.Contains(productID) {
		return
	}
	w.ProductIDs = append(w.ProductIDs, productID)
}

// Remove deletes productID and reports whether it was present
func (w *Wishlist) Remove(productID string) bool {
	for i, id := range w.ProductIDs {
		if id == productID {
			w.ProductIDs = append(w.ProductIDs[:i], w.ProductIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle adds or removes productID and reports whether it is now in the list
func (w *Wishlist) Toggle(productID string) bool {
	if w.Remove(productID) {
		return false
	}
	w.ProductIDs = append(w.ProductIDs, productID)
	return true
}

func (w *Wishlist) Contains(productID string) bool {
	for _, id := range w.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
