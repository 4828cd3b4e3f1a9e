// Package testutil spins up throwaway Postgres instances for tests that need
// real row locking and unique-index semantics.
package testutil

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sbook/database"
	"sbook/models"
)

// SetupTestDatabase starts a Postgres container, migrates the full schema and
// returns a connected gorm handle. The container is torn down when the test
// finishes. database.DB is pointed at the same handle so controller-level code
// under test sees it too.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("sbook_test"),
		postgres.WithUsername("sbook"),
		postgres.WithPassword("sbook"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{"app": "sbook-test"}),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("container connection string: %v", err)
	}

	db, err := gorm.Open(gormpg.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Session{},
		&models.LedgerEntry{},
		&models.Bet{},
		&models.BetLeg{},
		&models.MatchResult{},
	); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	return db
}
