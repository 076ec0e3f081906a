package domain

// Locale is a storefront language code
type Locale string

const (
	LocaleRU Locale = "ru"
	LocaleEN Locale = "en"
	LocaleUZ Locale = "uz"
	LocaleTJ Locale = "tj"
)

// DefaultLocale is used when a translation is missing
const DefaultLocale = LocaleRU

// Locales lists the supported locales in fallback order
var Locales = []Locale{LocaleRU, LocaleEN, LocaleUZ, LocaleTJ}

// ParseLocale returns the locale for a language code, falling back to DefaultLocale
func ParseLocale(code string) Locale {
	for _, l := range Locales {
		if string(l) == code {
			return l
		}
	}
	return DefaultLocale
}

// Bundle holds one value per locale
type Bundle[T comparable] map[Locale]T

// Get returns the value for the locale. A missing entry falls back to the
// default locale and then to the first non-empty entry in Locales order.
func (b Bundle[T]) Get(locale Locale) T {
	var zero T
	if v, ok := b[locale]; ok && v != zero {
		return v
	}
	if v, ok := b[DefaultLocale]; ok && v != zero {
		return v
	}
	for _, l := range Locales {
		if v, ok := b[l]; ok && v != zero {
			return v
		}
	}
	return zero
}

// Entity is a record kept in one of the store's collections
type Entity interface {
	GetID() string
	SetID(id string)
}
