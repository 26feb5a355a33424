package recent

import (
	"context"

	"github.com/next1store/marketoo-down/pkg/db/models"
	pkgerrors "github.com/next1store/marketoo-down/pkg/errors"
	"gorm.io/gorm"
)

// Database is the slice of the db client the gorm store needs.
type Database interface {
	DB() *gorm.DB
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// GormStore persists the list as ordered rows in the recent_views table.
type GormStore struct {
	db  Database
	key string
}

func NewGormStore(db Database, key string) *GormStore {
	return &GormStore{db: db, key: key}
}

func (s *GormStore) Load(ctx context.Context) ([]string, error) {
	var rows []models.RecentView
	err := s.db.DB().WithContext(ctx).
		Where("storage_key = ?", s.key).
		Order("slot ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent views")
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	return ids, nil
}

// Save replaces the stored list in one transaction.
func (s *GormStore) Save(ctx context.Context, ids []string) error {
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("storage_key = ?", s.key).Delete(&models.RecentView{}).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		rows := make([]models.RecentView, 0, len(ids))
		for i, id := range ids {
			rows = append(rows, models.RecentView{StorageKey: s.key, Slot: i, ProductID: id})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save recent views")
	}
	return nil
}
