// Package sqlstore keeps the planner snapshot in one row of a SQLite
// key/value table.
package sqlstore

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// entry is one key/value row.
type entry struct {
	Key       string `gorm:"primaryKey;column:slot_key"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (entry) TableName() string { return "slots" }

// Slot reads and writes the row stored under key.
type Slot struct {
	db  *gorm.DB
	key string
}

// Open opens (or creates) the database at dsn and migrates the slots table.
// gorm's own warnings go to logOut; nil discards them.
func Open(dsn, key string, logOut io.Writer) (*Slot, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("empty slot key")
	}
	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}
	if logOut == nil {
		logOut = io.Discard
	}
	dbLogger := logger.New(
		log.New(logOut, "gorm ", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	return &Slot{db: db, key: key}, nil
}

// Read returns (nil, nil) when the key has never been written.
func (s *Slot) Read() ([]byte, error) {
	var e entry
	err := s.db.First(&e, "slot_key = ?", s.key).Error
	switch {
	case err == nil:
		return e.Value, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find slot %q: %w", s.key, err)
	}
}

// Write upserts the row.
func (s *Slot) Write(data []byte) error {
	e := entry{Key: s.key, Value: data, UpdatedAt: time.Now().UTC()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("save slot %q: %w", s.key, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Slot) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensureDirForSQLite creates the parent dir of a file DSN.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
