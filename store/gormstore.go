package store

import (
	"context"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the key/value table.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

// TableName keeps the table name stable regardless of gorm's pluralization.
func (Entry) TableName() string { return "kv_entries" }

// Gorm backs the store with a relational key/value table. It is the durable
// option when neither in-process state nor redis fits the deployment.
type Gorm struct {
	db *gorm.DB
}

// OpenPostgres connects to postgres and migrates the key/value table.
func OpenPostgres(dsn string) (*Gorm, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

// NewGorm wraps an already opened gorm handle. The caller is responsible for
// migrating the Entry table.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := g.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	return g.upsert(g.db.WithContext(ctx), key, value)
}

func (g *Gorm) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
}

// SetMulti applies all writes in one database transaction.
func (g *Gorm) SetMulti(ctx context.Context, writes []Write) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, w := range writes {
			if err := g.upsert(tx, w.Key, w.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *Gorm) upsert(tx *gorm.DB, key string, value []byte) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Entry{Key: key, Value: value}).Error
}
