package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

// ICodOrderRepository CodOrder 相關操作介面
type ICodOrderRepository interface {
	CreateCodOrder(ctx context.Context, order *model.CodOrder) error
	GetCodOrderByID(ctx context.Context, id uint) (*model.CodOrder, error)
	GetCodOrdersPaginated(ctx context.Context, page, limit int) ([]model.CodOrder, int64, error)
	GetCodOrdersByUser(ctx context.Context, userID uint) ([]model.CodOrder, error)
	UpdateCodOrderStatus(ctx context.Context, id uint, status model.CodOrderStatus) error
}

type CodOrderRepo struct {
	db *gorm.DB
}

func NewCodOrderRepo(db *gorm.DB) *CodOrderRepo {
	return &CodOrderRepo{db: db}
}

func (s *CodOrderRepo) CreateCodOrder(ctx context.Context, order *model.CodOrder) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *CodOrderRepo) GetCodOrderByID(ctx context.Context, id uint) (*model.CodOrder, error) {
	var order model.CodOrder
	err := s.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *CodOrderRepo) GetCodOrdersPaginated(ctx context.Context, page, limit int) ([]model.CodOrder, int64, error) {
	var orders []model.CodOrder
	var total int64

	if err := s.db.WithContext(ctx).Model(&model.CodOrder{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

func (s *CodOrderRepo) GetCodOrdersByUser(ctx context.Context, userID uint) ([]model.CodOrder, error) {
	var orders []model.CodOrder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (s *CodOrderRepo) UpdateCodOrderStatus(ctx context.Context, id uint, status model.CodOrderStatus) error {
	result := s.db.WithContext(ctx).Model(&model.CodOrder{}).
		Where("cod_order_id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
