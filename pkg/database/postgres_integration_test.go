package database_test

import (
	"context"
	"log"
	"os"
	"testing"

	"licensewatch-admin/internal/model"
	"licensewatch-admin/internal/repository/specification"
	"licensewatch-admin/internal/repository/unitofwork"
	"licensewatch-admin/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCatalog(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("TEST_DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(model.Models()...))

	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(context.Background())

	t.Run("Regex search is case-insensitive", func(t *testing.T) {
		_, err := uow.FeatureRepository().Count(context.Background(), specification.NameSearch("^matlab"))
		assert.NoError(t, err)
	})

	t.Run("Invalid pattern surfaces a store error", func(t *testing.T) {
		_, err := uow.FeatureRepository().Count(context.Background(), specification.NameSearch("("))
		assert.Error(t, err)
	})
}
