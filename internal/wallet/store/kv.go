// Package store provides the durable local metadata store: a small keyed
// table whose values are always read and written as whole blobs.
package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KV is a whole-value keyed store.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Reset drops every entry. Used for full logout.
	Reset(ctx context.Context) error
	Close() error
}

// Entry is the persisted row.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

// TableName sets the sqlite table name for Entry.
func (Entry) TableName() string {
	return "kv_entries"
}

type kvStore struct {
	db *gorm.DB
}

// Open opens (and migrates) the sqlite-backed store at path.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func Open(path string) (KV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open metadata store at %s", path)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate metadata store")
	}

	return &kvStore{db: db}, nil
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "failed to read key %s", key)
	}

	return entry.Value, true, nil
}

func (s *kvStore) Put(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}

	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error; err != nil {
		return errors.Wrapf(err, "failed to delete key %s", key)
	}

	return nil
}

func (s *kvStore) Reset(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&Entry{}).Error; err != nil {
		return errors.Wrap(err, "failed to reset metadata store")
	}

	return nil
}

func (s *kvStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to access underlying database")
	}

	return sqlDB.Close()
}
