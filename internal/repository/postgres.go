package repository

import (
	"database/sql"

	"lace-store/internal/domain"
)

// NewPostgres wires every collection to its document table
func NewPostgres(db *sql.DB) *Repositories {
	return &Repositories{
		Products:    NewProductRepository(db),
		Categories:  NewDocumentRepository[domain.Category](db, "categories"),
		Collections: NewDocumentRepository[domain.Collection](db, "collections"),
		Properties:  NewDocumentRepository[domain.Property](db, "properties"),
		Orders:      NewDocumentRepository[domain.Order](db, "orders"),
		Users:       NewUserRepository(db),
		Team:        NewDocumentRepository[domain.TeamMember](db, "team_members"),
		About:       NewDocumentRepository[domain.CompanyInfo](db, "company_info"),
		Social:      NewDocumentRepository[domain.SocialLink](db, "social_links"),
		Seasons:     NewDocumentRepository[domain.Season](db, "seasons"),
		Policies:    NewDocumentRepository[domain.PrivacyPolicy](db, "privacy_policies"),
		Settings:    NewSettingsRepository(NewDocumentRepository[domain.TelegramSettings](db, "telegram_settings")),
	}
}
