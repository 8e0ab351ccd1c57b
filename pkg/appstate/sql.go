package appstate

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type entry struct {
	Name      string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

func (entry) TableName() string { return "app_state" }

// SQLStorage keeps keys in one table of a SQLite database.
type SQLStorage struct {
	getDatabase func(ctx context.Context) (*gorm.DB, error)
	db          *gorm.DB
}

var _ Storage = (*SQLStorage)(nil)

// OpenSQLStorage opens the SQLite database at dsn, creating its directory.
func OpenSQLStorage(dsn string) (*SQLStorage, error) {
	if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internalDB, err := db.DB()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	internalDB.SetMaxOpenConns(1)

	return NewSQLStorage(db), nil
}

// NewSQLStorage wraps an open database. The table is migrated on first use.
func NewSQLStorage(db *gorm.DB) *SQLStorage {
	var (
		migrateOnce sync.Once
		migrateErr  error
	)
	return &SQLStorage{
		db: db,
		getDatabase: func(ctx context.Context) (*gorm.DB, error) {
			migrateOnce.Do(func() {
				if err := db.AutoMigrate(&entry{}); err != nil {
					migrateErr = errors.WithStack(err)
				}
			})
			if migrateErr != nil {
				return nil, errors.WithStack(migrateErr)
			}
			return db.WithContext(ctx), nil
		},
	}
}

func (s *SQLStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return nil, false, errors.WithStack(err)
	}

	var e entry
	if err := db.Where("name = ?", key).Take(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, errors.WithStack(err)
	}
	return e.Value, true, nil
}

func (s *SQLStorage) Set(ctx context.Context, key string, data []byte) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	e := entry{Name: key, Value: data}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&e).Error; err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (s *SQLStorage) Close() error {
	internalDB, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(internalDB.Close())
}
