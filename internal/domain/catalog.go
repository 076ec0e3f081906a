package domain

// NameText is a localized name with an optional description
type NameText struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LabelText is a localized label
type LabelText struct {
	Label string `json:"label"`
}

// Category represents a product category
type Category struct {
	ID           string           `json:"id"`
	Slug         string           `json:"slug"`
	Image        string           `json:"image,omitempty"`
	Translations Bundle[NameText] `json:"translations" validate:"required,min=1,dive,keys,oneof=ru en uz tj,endkeys"`
}

func (c *Category) GetID() string   { return c.ID }
func (c *Category) SetID(id string) { c.ID = id }

// Collection is a merchandising grouping of products
type Collection struct {
	ID           string           `json:"id"`
	Slug         string           `json:"slug"`
	Image        string           `json:"image,omitempty"`
	IsActive     bool             `json:"isActive"`
	Translations Bundle[NameText] `json:"translations" validate:"required,min=1,dive,keys,oneof=ru en uz tj,endkeys"`
}

func (c *Collection) GetID() string   { return c.ID }
func (c *Collection) SetID(id string) { c.ID = id }

// PropertyType is the value type of a product property
type PropertyType string

const (
	PropertyText        PropertyType = "text"
	PropertyNumber      PropertyType = "number"
	PropertySelect      PropertyType = "select"
	PropertyMultiselect PropertyType = "multiselect"
	PropertyBoolean     PropertyType = "boolean"
)

// PropertyOption is one choice of a select or multiselect property
type PropertyOption struct {
	Value        string            `json:"value" validate:"required"`
	Translations Bundle[LabelText] `json:"translations"`
}

// Property is a named, typed product attribute used for filtering and display
type Property struct {
	ID           string            `json:"id"`
	Type         PropertyType      `json:"type" validate:"required,oneof=text number select multiselect boolean"`
	Options      []PropertyOption  `json:"options,omitempty" validate:"dive"`
	Translations Bundle[LabelText] `json:"translations" validate:"required,min=1,dive,keys,oneof=ru en uz tj,endkeys"`
}

func (p *Property) GetID() string   { return p.ID }
func (p *Property) SetID(id string) { p.ID = id }

// HasOptions reports whether the property type is a choice list
func (p *Property) HasOptions() bool {
	return p.Type == PropertySelect || p.Type == PropertyMultiselect
}
