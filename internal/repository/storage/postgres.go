package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresStorage struct {
	Connection *gorm.DB
}

// NewPostgresStorage opens the database and migrates the given models.
func NewPostgresStorage(dsn string, models ...any) (*PostgresStorage, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("can't migrate database: %w", err)
	}

	return &PostgresStorage{Connection: conn}, nil
}

func (that *PostgresStorage) Close() error {
	db, err := that.Connection.DB()
	if err != nil {
		return fmt.Errorf("can't get database handle: %w", err)
	}

	if err = db.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
