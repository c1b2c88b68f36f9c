// Package database persists simulation campaign results in SQLite
// through GORM, using the pure Go driver so campaigns run anywhere
// the codec does.
package database

import (
	"database/sql"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// DB wraps the GORM handle for the campaign store.
type DB struct {
	db *gorm.DB
}

// Open connects to the SQLite file at path, applies the pragma set
// and migrates the result schema. logg may be nil for silent
// operation.
func Open(path string, logg *log.Logger) (*DB, error) {
	gormLog := logger.Default.LogMode(logger.Silent)
	if logg != nil {
		gormLog = logger.New(logg, logger.Config{
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		})
	}

	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: path},
		&gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := applyPragmas(sqlDB); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&FrameResult{}); err != nil {
		return nil, err
	}
	if logg != nil {
		logg.Printf("campaign store ready: %s", path)
	}
	return &DB{db: db}, nil
}

func applyPragmas(sqlDB *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=memory",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

// Gorm exposes the underlying handle for the repositories.
func (db *DB) Gorm() *gorm.DB {
	return db.db
}

func (db *DB) Close() error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
