package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

// IPromotionRepository Promotion 相關操作介面
type IPromotionRepository interface {
	GetPromotions(ctx context.Context) ([]model.Promotion, error)
	GetPromotionByID(ctx context.Context, id uint) (*model.Promotion, error)
	GetActivePromotions(ctx context.Context, now time.Time) ([]model.Promotion, error)
	CreatePromotion(ctx context.Context, promotion *model.Promotion) error
	UpdatePromotion(ctx context.Context, promotion *model.Promotion) error
	DeletePromotion(ctx context.Context, id uint) error
}

type PromotionRepo struct {
	db *gorm.DB
}

func NewPromotionRepo(db *gorm.DB) *PromotionRepo {
	return &PromotionRepo{db: db}
}

func (s *PromotionRepo) GetPromotions(ctx context.Context) ([]model.Promotion, error) {
	var promotions []model.Promotion
	err := s.db.WithContext(ctx).Order("starts_at DESC").Find(&promotions).Error
	return promotions, err
}

func (s *PromotionRepo) GetPromotionByID(ctx context.Context, id uint) (*model.Promotion, error) {
	var promotion model.Promotion
	err := s.db.WithContext(ctx).First(&promotion, id).Error
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (s *PromotionRepo) GetActivePromotions(ctx context.Context, now time.Time) ([]model.Promotion, error) {
	var promotions []model.Promotion
	err := s.db.WithContext(ctx).
		Where("active = ? AND starts_at <= ? AND ends_at > ?", true, now, now).
		Order("starts_at DESC").
		Find(&promotions).Error
	return promotions, err
}

func (s *PromotionRepo) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	return s.db.WithContext(ctx).Create(promotion).Error
}

func (s *PromotionRepo) UpdatePromotion(ctx context.Context, promotion *model.Promotion) error {
	return s.db.WithContext(ctx).Save(promotion).Error
}

func (s *PromotionRepo) DeletePromotion(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Promotion{}, id).Error
}
