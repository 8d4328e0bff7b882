package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

var (
	ErrPromotionNotFound  = errors.New("promotion not found")
	ErrInvalidDiscount    = errors.New("discount percent must be between 0 and 100")
	ErrInvalidPromoWindow = errors.New("promotion end time must be after start time")
)

type IPromotionService interface {
	GetPromotions(ctx context.Context) ([]model.Promotion, error)
	GetActivePromotions(ctx context.Context) ([]model.Promotion, error)
	CreatePromotion(ctx context.Context, promotion *model.Promotion) error
	UpdatePromotion(ctx context.Context, id uint, promotion *model.Promotion) (*model.Promotion, error)
	DeletePromotion(ctx context.Context, id uint) error
}

type PromotionService struct {
	store db.Store
	now   func() time.Time
}

func NewPromotionService(store db.Store) *PromotionService {
	return &PromotionService{store: store, now: time.Now}
}

func validatePromotion(promotion *model.Promotion) error {
	if promotion.DiscountPercent < 0 || promotion.DiscountPercent > 100 {
		return ErrInvalidDiscount
	}
	if !promotion.EndsAt.After(promotion.StartsAt) {
		return ErrInvalidPromoWindow
	}
	return nil
}

func (p *PromotionService) GetPromotions(ctx context.Context) ([]model.Promotion, error) {
	return p.store.GetPromotions(ctx)
}

func (p *PromotionService) GetActivePromotions(ctx context.Context) ([]model.Promotion, error) {
	return p.store.GetActivePromotions(ctx, p.now())
}

func (p *PromotionService) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	if err := validatePromotion(promotion); err != nil {
		return err
	}
	return p.store.CreatePromotion(ctx, promotion)
}

func (p *PromotionService) UpdatePromotion(ctx context.Context, id uint, promotion *model.Promotion) (*model.Promotion, error) {
	if err := validatePromotion(promotion); err != nil {
		return nil, err
	}

	existing, err := p.store.GetPromotionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}

	existing.Title = promotion.Title
	existing.Subtitle = promotion.Subtitle
	existing.Image = promotion.Image
	existing.DiscountPercent = promotion.DiscountPercent
	existing.StartsAt = promotion.StartsAt
	existing.EndsAt = promotion.EndsAt
	existing.Active = promotion.Active
	if err := p.store.UpdatePromotion(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (p *PromotionService) DeletePromotion(ctx context.Context, id uint) error {
	if _, err := p.store.GetPromotionByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromotionNotFound
		}
		return err
	}
	return p.store.DeletePromotion(ctx, id)
}

var _ IPromotionService = (*PromotionService)(nil)
