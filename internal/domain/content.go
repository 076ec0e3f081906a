package domain

type MemberText struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
}

// TeamMember is shown on the "our team" page
type TeamMember struct {
	ID           string             `json:"id"`
	Photo        string             `json:"photo,omitempty"`
	Translations Bundle[MemberText] `json:"translations" validate:"required,min=1,dive,keys,oneof=ru en uz tj,endkeys"`
}

func (m *TeamMember) GetID() string   { return m.ID }
func (m *TeamMember) SetID(id string) { m.ID = id }

type PageText struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// CompanyInfo is a block of the "about the company" page
type CompanyInfo struct {
	ID           string           `json:"id"`
	Images       []string         `json:"images,omitempty"`
	Translations Bundle[PageText] `json:"translations" validate:"required,min=1,dive,keys,oneof=ru en uz tj,endkeys"`
}

func (c *CompanyInfo) GetID() string   { return c.ID }
func (c *CompanyInfo) SetID(id string) { c.ID = id }

// SocialLink is an online resource shown in the footer
type SocialLink struct {
	ID       string `json:"id"`
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	Icon     string `json:"icon,omitempty"`
}

func (s *SocialLink) GetID() string   { return s.ID }
func (s *SocialLink) SetID(id string) { s.ID = id }

// Season is a storefront season flag
type Season struct {
	ID       string `json:"id"`
	Key      string `json:"key" validate:"required"`
	IsActive bool   `json:"isActive"`
}

func (s *Season) GetID() string   { return s.ID }
func (s *Season) SetID(id string) { s.ID = id }

// PrivacyPolicy holds the localized policy text
type PrivacyPolicy struct {
	ID           string           `json:"id"`
	Translations Bundle[PageText] `json:"translations" validate:"required,min=1,dive,keys,oneof=ru en uz tj,endkeys"`
}

func (p *PrivacyPolicy) GetID() string   { return p.ID }
func (p *PrivacyPolicy) SetID(id string) { p.ID = id }
