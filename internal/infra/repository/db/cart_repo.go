package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

// ICartRepository CartItem 相關操作介面
type ICartRepository interface {
	GetCartItemsByUser(ctx context.Context, userID uint) ([]model.CartItem, error)
	GetCartItemByID(ctx context.Context, id uint) (*model.CartItem, error)
	GetCartItemByUserAndProduct(ctx context.Context, userID, productID uint) (*model.CartItem, error)
	CreateCartItem(ctx context.Context, item *model.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) error
	DeleteCartItem(ctx context.Context, id uint) error
	DeleteCartItemsByUser(ctx context.Context, userID uint) error
}

type CartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (s *CartRepo) GetCartItemsByUser(ctx context.Context, userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

func (s *CartRepo) GetCartItemByID(ctx context.Context, id uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartRepo) GetCartItemByUserAndProduct(ctx context.Context, userID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartRepo) CreateCartItem(ctx context.Context, item *model.CartItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *CartRepo) UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) error {
	result := s.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("cart_item_id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *CartRepo) DeleteCartItem(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&model.CartItem{}, id).Error
}

func (s *CartRepo) DeleteCartItemsByUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}
