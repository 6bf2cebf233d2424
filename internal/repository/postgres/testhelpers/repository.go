package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/geodistance-microservice/internal/domain/repository"
	"github.com/geodistance-microservice/internal/repository/postgres"
)

// NewDBForTest оборачивает sqlx.DB в postgres.DB с тестовым логгером
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewPlaceRepositoryForTest создаёт place repository поверх тестовой базы
func NewPlaceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PlaceRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewPlaceRepository(pgDB, logger)
}
