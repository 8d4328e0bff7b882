package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

// IVariantRepository ProductVariant 相關操作介面
type IVariantRepository interface {
	GetVariantsByProduct(ctx context.Context, productID uint) ([]model.ProductVariant, error)
	GetVariantByID(ctx context.Context, id uint) (*model.ProductVariant, error)
	CreateVariant(ctx context.Context, variant *model.ProductVariant) error
	UpdateVariantFields(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteVariant(ctx context.Context, id uint) error
}

type VariantRepo struct {
	db *gorm.DB
}

func NewVariantRepo(db *gorm.DB) *VariantRepo {
	return &VariantRepo{db: db}
}

func (s *VariantRepo) GetVariantsByProduct(ctx context.Context, productID uint) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := s.db.WithContext(ctx).
		Where("product_id = ? AND active = ?", productID, true).
		Order("variant_price ASC").
		Find(&variants).Error
	return variants, err
}

func (s *VariantRepo) GetVariantByID(ctx context.Context, id uint) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	err := s.db.WithContext(ctx).First(&variant, id).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (s *VariantRepo) CreateVariant(ctx context.Context, variant *model.ProductVariant) error {
	return s.db.WithContext(ctx).Create(variant).Error
}

// Update - 部分更新，欄位過濾在 service 層完成
func (s *VariantRepo) UpdateVariantFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&model.ProductVariant{}).
		Where("variant_id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *VariantRepo) DeleteVariant(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.ProductVariant{}, id).Error
}
