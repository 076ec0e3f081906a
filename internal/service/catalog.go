package service

import (
	"errors"
	"strings"

	"lace-store/internal/domain"
)

var ErrOptionsRequired = errors.New("select properties need at least one option")

// PrepareCategory fills in the slug from the default-locale name
func PrepareCategory(c *domain.Category) error {
	var err error
	c.Slug, err = ensureSlug(c.Slug, c.Translations.Get(domain.DefaultLocale).Name)
	return err
}

// PrepareCollection fills in the slug from the default-locale name
func PrepareCollection(c *domain.Collection) error {
	var err error
	c.Slug, err = ensureSlug(c.Slug, c.Translations.Get(domain.DefaultLocale).Name)
	return err
}

// PrepareProperty requires options for choice properties and drops them for the rest
func PrepareProperty(p *domain.Property) error {
	if !p.HasOptions() {
		p.Options = nil
		return nil
	}
	if len(p.Options) == 0 {
		return ErrOptionsRequired
	}
	return nil
}

func ensureSlug(current, name string) (string, error) {
	if s := strings.TrimSpace(current); s != "" {
		return MakeSlug(s), nil
	}
	if s := MakeSlug(name); s != "" {
		return s, nil
	}
	return "", ErrSlugRequired
}
