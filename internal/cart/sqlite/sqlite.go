// Package sqlite stores the cart in a local SQLite database, the durable
// equivalent of the mobile client's single "cart" key-value entry.
package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"scanpos/internal/domain"
)

const cartKey = "cart"

type cartRecord struct {
	Key       string `gorm:"primaryKey"`
	Lines     []byte
	UpdatedAt time.Time
}

func (cartRecord) TableName() string { return "cart_state" }

type Storage struct {
	db *gorm.DB
}

func Open(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("sqlite: create data dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.AutoMigrate(&cartRecord{}); err != nil {
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Storage) Load(ctx context.Context) ([]domain.CartLine, error) {
	var rec cartRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", cartKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(rec.Lines, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *Storage) Save(ctx context.Context, lines []domain.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	rec := cartRecord{Key: cartKey, Lines: payload, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"lines", "updated_at"}),
		}).
		Create(&rec).Error
}

func (s *Storage) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Delete(&cartRecord{}, "key = ?", cartKey).Error
}
