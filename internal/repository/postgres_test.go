package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"lace-store/internal/database"
	"lace-store/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

func setupTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := dbContainer.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		return dbContainer.Terminate, err
	}

	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	if err := database.RunMigrations(testDB, zap.NewNop()); err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		// Docker is optional for the unit suite; postgres tests skip themselves.
		log.Printf("postgres container unavailable, skipping integration tests: %v", err)
		testDB = nil
	}

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Printf("could not teardown postgres container: %v", err)
		}
	}

	os.Exit(code)
}

func requireDB(t *testing.T) *sql.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres container is not available")
	}
	return testDB
}

func TestPostgresProductRepository(t *testing.T) {
	runProductContract(t, NewProductRepository(requireDB(t)))
}

func TestPostgresUserRepository(t *testing.T) {
	runUserContract(t, NewUserRepository(requireDB(t)))
}

func TestPostgresSettingsRepository(t *testing.T) {
	db := requireDB(t)
	_, _ = db.Exec("DELETE FROM telegram_settings")
	runSettingsContract(t, NewPostgres(db).Settings)
}

// Feature: catalog-storage, Property: product documents round-trip through JSONB
func TestProperty_ProductCreationPreservesAttributes(t *testing.T) {
	repo := NewProductRepository(requireDB(t))

	properties := gopter.NewProperties(nil)

	properties.Property("creating and retrieving a product preserves all attributes", prop.ForAll(
		func(name string, description string, cents int64, inStock bool, hidePrice bool) bool {
			ctx := context.Background()

			product := &domain.Product{
				Slug:          "p-" + uuid.New().String(),
				CategoryID:    uuid.New().String(),
				Price:         decimal.New(cents, -2),
				Images:        []string{"https://cdn.example/a.jpg"},
				InStock:       inStock,
				HidePrice:     hidePrice,
				SKU:           "SKU",
				PropertyIDs:   []string{"size"},
				CollectionIDs: []string{"new"},
				Translations: domain.Bundle[domain.ProductText]{
					domain.LocaleRU: {Name: name, Description: description},
					domain.LocaleUZ: {Name: name + " uz"},
				},
				CreatedAt: time.Now().UTC().Truncate(time.Second),
			}

			if err := repo.Create(ctx, product); err != nil {
				t.Logf("FAIL: Failed to create product: %v", err)
				return false
			}
			defer repo.Delete(ctx, product.ID)

			retrieved, err := repo.FindByID(ctx, product.ID)
			if err != nil {
				t.Logf("FAIL: Failed to retrieve product: %v", err)
				return false
			}

			if !retrieved.Price.Equal(product.Price) {
				t.Logf("FAIL: Price mismatch. Expected %s, got %s", product.Price, retrieved.Price)
				return false
			}
			if retrieved.Translations.Get(domain.LocaleRU) != product.Translations.Get(domain.LocaleRU) {
				t.Logf("FAIL: Translation mismatch")
				return false
			}
			if retrieved.InStock != inStock || retrieved.HidePrice != hidePrice {
				t.Logf("FAIL: Flag mismatch")
				return false
			}
			if !retrieved.CreatedAt.Equal(product.CreatedAt) {
				t.Logf("FAIL: CreatedAt mismatch")
				return false
			}

			return true
		},
		gen.RegexMatch(`[A-Za-zА-Яа-я0-9 ]{3,50}`),
		gen.RegexMatch(`[A-Za-z0-9 .,!?]{10,200}`),
		gen.Int64Range(0, 100000000),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
