// database/bootstrap.go
package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"botanica/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.Plant{},
		&entities.CareTask{},
		&entities.AdaptationLog{},
		&entities.KBDocument{},
		&entities.KBChunk{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	// AutoMigrate won't build the composite index; one adaptation period per
	// user per year must be unique so the due check can trust the counter.
	if err := migrateAdaptationLogIndex(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	return db
}

func migrateAdaptationLogIndex(db *gorm.DB) error {
	var name string
	if err := db.Raw(
		`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_adaptation_period'`,
	).Scan(&name).Error; err != nil {
		return err
	}
	if name != "" {
		return nil
	}
	return db.Exec(
		`CREATE UNIQUE INDEX idx_adaptation_period ON adaptation_logs (user_id, year_adapted, adaptation_period)`,
	).Error
}
