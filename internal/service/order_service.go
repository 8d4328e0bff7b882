package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type IOrderService interface {
	Checkout(ctx context.Context, userID uint) (*model.Order, error)
	GetOrdersByUser(ctx context.Context, userID uint) ([]model.Order, error)
}

type OrderService struct {
	store    db.Store
	producer producer.IOrderEventProducer
}

// producer 可為 nil，此時不發送事件
func NewOrderService(store db.Store, producer producer.IOrderEventProducer) *OrderService {
	return &OrderService{store: store, producer: producer}
}

// Checkout 把購物車轉成訂單
// 庫存在加入購物車時已佔用，這裡只轉移 claim，不再扣庫存也不還原
func (o *OrderService) Checkout(ctx context.Context, userID uint) (*model.Order, error) {
	var order *model.Order
	err := o.store.Transaction(ctx, func(tx db.Store) error {
		items, err := tx.GetCartItemsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		ids := make([]uint, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		products, err := tx.GetProductsByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uint]model.Product, len(products))
		for _, product := range products {
			byID[product.ProductID] = product
		}

		amount := decimal.NewFromInt(0)
		orderItems := make([]model.OrderItem, 0, len(items))
		for _, item := range items {
			product, ok := byID[item.ProductID]
			if !ok {
				return ErrProductNotFound
			}
			// 下單當下的單價快照
			orderItems = append(orderItems, model.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
			amount = amount.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order = &model.Order{
			UserID:     userID,
			OrderItems: orderItems,
			Amount:     amount,
			Status:     model.OrderStatusPending,
			OrderDate:  time.Now(),
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		// 庫存 claim 已轉入訂單，購物車直接清掉不還原庫存
		return tx.DeleteCartItemsByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	if o.producer != nil {
		if err := o.producer.OrderPlaced(ctx, order); err != nil {
			log.Warn().Err(err).Uint("order_id", order.OrderID).Msg("order placed event failed")
		}
	}
	return order, nil
}

func (o *OrderService) GetOrdersByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	return o.store.GetOrdersByUserID(ctx, userID)
}

var _ IOrderService = (*OrderService)(nil)
