package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBundleGetFallsBack(t *testing.T) {
	b := Bundle[ProductText]{
		LocaleRU: {Name: "Бюстгальтер"},
		LocaleEN: {Name: "Bra"},
	}

	assert.Equal(t, "Bra", b.Get(LocaleEN).Name)
	assert.Equal(t, "Бюстгальтер", b.Get(LocaleUZ).Name)

	onlyTJ := Bundle[NameText]{LocaleTJ: {Name: "Сина"}}
	assert.Equal(t, "Сина", onlyTJ.Get(LocaleEN).Name)

	var empty Bundle[LabelText]
	assert.Equal(t, "", empty.Get(LocaleRU).Label)
}

func TestBundleGetSkipsEmptyEntries(t *testing.T) {
	b := Bundle[NameText]{
		LocaleEN: {},
		LocaleRU: {Name: "Комплект"},
	}
	assert.Equal(t, "Комплект", b.Get(LocaleEN).Name)
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleUZ, ParseLocale("uz"))
	assert.Equal(t, LocaleRU, ParseLocale("de"))
	assert.Equal(t, LocaleRU, ParseLocale(""))
}

func TestProductHelpers(t *testing.T) {
	p := Product{
		CollectionIDs: []string{"summer", "lace"},
		Translations:  Bundle[ProductText]{LocaleRU: {Name: "Боди"}},
	}
	assert.True(t, p.InCollection("lace"))
	assert.False(t, p.InCollection("winter"))
	assert.Equal(t, "Боди", p.Name(LocaleEN))

	p.HidePrice = true
	_, ok := p.DisplayPrice()
	assert.False(t, ok)
}
