package store

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is one persisted collection, stored whole. Body holds the same
// JSON that FileStore would write to disk.
type Document struct {
	Name string `gorm:"primaryKey;size:191"`
	Body string `gorm:"type:longtext"`
}

// SQLStore keeps documents as rows in a documents table. Reads and writes
// still move the whole document, so the concurrency contract is the same
// as the file backend's.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(dsn string) (*SQLStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Read(ctx context.Context, name string, out any, defaultContent any) error {
	var doc Document
	err := s.db.WithContext(ctx).First(&doc, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.Write(ctx, name, defaultContent); err != nil {
			return err
		}
		raw, err := json.Marshal(defaultContent)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, out)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(doc.Body), out)
}

func (s *SQLStore) Write(ctx context.Context, name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&Document{Name: name, Body: string(raw)}).Error
}
