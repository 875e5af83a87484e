package main

import (
	"fmt"
	"time"

	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/fadilmartias/nexo-carreira/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() (*gorm.DB, error) {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get database instance: %w", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}

// Migrate creates the assessments table and, when career tracks are
// enabled, the pgvector extension and the career_tracks table.
func Migrate(db *gorm.DB, withCareerTracks bool) error {
	if err := db.AutoMigrate(&model.Assessment{}); err != nil {
		return fmt.Errorf("migrate assessments: %w", err)
	}
	if !withCareerTracks {
		return nil
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	if err := db.AutoMigrate(&model.CareerTrack{}); err != nil {
		return fmt.Errorf("migrate career tracks: %w", err)
	}
	return nil
}
