// Package storage persists podcast run records so runs survive restarts and
// can be listed or retried from the HTTP surface.
package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"podcastforge-server-go/internal/platform/errors"
)

// Open connects to the sqlite database at dsn and migrates the run schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "storage.Open", "open sqlite database", err)
	}
	if err := db.AutoMigrate(&PodcastRun{}); err != nil {
		return nil, errors.Wrap(errors.KindStorage, "storage.Open", "migrate schema", err)
	}
	return db, nil
}
