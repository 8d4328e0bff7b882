package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	GetProductSales(ctx context.Context) ([]model.ProductSales, error)
}

type OrderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *OrderRepo) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

// 歷史銷量彙總，quick picks 的排序依據
func (s *OrderRepo) GetProductSales(ctx context.Context) ([]model.ProductSales, error) {
	var sales []model.ProductSales
	err := s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select("product_id, SUM(quantity) AS total_sold").
		Group("product_id").
		Order("total_sold DESC").
		Scan(&sales).Error
	return sales, err
}
