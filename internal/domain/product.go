package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The hosted store keeps prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductText is the localized part of a product
type ProductText struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product represents a product in the catalog
type Product struct {
	ID            string              `json:"id"`
	Slug          string              `json:"slug"`
	CategoryID    string              `json:"categoryId" validate:"required"`
	Price         decimal.Decimal     `json:"price"`
	OldPrice      *decimal.Decimal    `json:"oldPrice,omitempty"`
	Images        []string            `json:"images"`
	InStock       bool                `json:"inStock"`
	HidePrice     bool                `json:"hidePrice"`
	SKU           string              `json:"sku"`
	PropertyIDs   []string            `json:"propertyIds"`
	CollectionIDs []string            `json:"collectionIds"`
	Translations  Bundle[ProductText] `json:"translations" validate:"required,min=1,dive,keys,oneof=ru en uz tj,endkeys"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func (p *Product) GetID() string   { return p.ID }
func (p *Product) SetID(id string) { p.ID = id }

// Name returns the product name in the given locale
func (p *Product) Name(locale Locale) string {
	return p.Translations.Get(locale).Name
}

// InCollection reports whether the product belongs to the collection
func (p *Product) InCollection(collectionID string) bool {
	for _, id := range p.CollectionIDs {
		if id == collectionID {
			return true
		}
	}
	return false
}

// DisplayPrice returns the price shown on the storefront, or false when the price is hidden
func (p *Product) DisplayPrice() (decimal.Decimal, bool) {
	if p.HidePrice {
		return decimal.Zero, false
	}
	return p.Price, true
}
