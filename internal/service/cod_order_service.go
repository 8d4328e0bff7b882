package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCodOrderNotFound = errors.New("cod order not found")
	ErrCodBelowMinimum  = errors.New("COD is only available for orders above ₹1000")
	ErrInvalidCodStatus = errors.New("invalid cod order status")
)

// codMinimumOrderValue COD 最低訂單金額
var codMinimumOrderValue = decimal.NewFromInt(1000)

var validCodStatuses = map[model.CodOrderStatus]struct{}{
	model.CodOrderStatusPending:   {},
	model.CodOrderStatusConfirmed: {},
	model.CodOrderStatusShipped:   {},
	model.CodOrderStatusDelivered: {},
	model.CodOrderStatusCancelled: {},
}

// CodOrderInput 建立 COD 訂單的輸入
type CodOrderInput struct {
	UserID       uint
	ProductID    uint
	UserName     string
	UserAddress  string
	UserLocation string
	Quantity     int
}

type ICodOrderService interface {
	CreateCodOrder(ctx context.Context, input CodOrderInput) (*model.CodOrder, error)
	GetCodOrders(ctx context.Context, page, limit int) (*CodOrderPage, error)
	GetCodOrdersByUser(ctx context.Context, userID uint) ([]model.CodOrder, error)
	UpdateCodOrderStatus(ctx context.Context, id uint, status model.CodOrderStatus) (*model.CodOrder, error)
}

type CodOrderService struct {
	store    db.Store
	producer producer.IOrderEventProducer
}

// producer 可為 nil，此時不發送事件
func NewCodOrderService(store db.Store, producer producer.IOrderEventProducer) *CodOrderService {
	return &CodOrderService{store: store, producer: producer}
}

// CreateCodOrder 金額門檻在任何寫入前檢查
// 通過後在單一交易內扣庫存並寫入快照
func (c *CodOrderService) CreateCodOrder(ctx context.Context, input CodOrderInput) (*model.CodOrder, error) {
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var codOrder *model.CodOrder
	err := c.store.Transaction(ctx, func(tx db.Store) error {
		product, err := tx.GetActiveProductByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		total := product.Price.Mul(decimal.NewFromInt(int64(input.Quantity)))
		if total.LessThan(codMinimumOrderValue) {
			return ErrCodBelowMinimum
		}

		if err := tx.DeductStock(ctx, input.ProductID, input.Quantity); err != nil {
			return err
		}

		codOrder = &model.CodOrder{
			UserID:            input.UserID,
			ProductID:         input.ProductID,
			UserName:          input.UserName,
			ProductName:       product.Name,
			ProductTotalPrice: total,
			UserAddress:       input.UserAddress,
			UserLocation:      input.UserLocation,
			Quantity:          input.Quantity,
			Status:            model.CodOrderStatusPending,
		}
		return tx.CreateCodOrder(ctx, codOrder)
	})
	if err != nil {
		return nil, err
	}

	if c.producer != nil {
		if err := c.producer.CodOrderPlaced(ctx, codOrder); err != nil {
			log.Warn().Err(err).Uint("cod_order_id", codOrder.CodOrderID).Msg("cod order placed event failed")
		}
	}
	return codOrder, nil
}

// CodOrderPage 分頁結果，Page/Limit 為收斂後的實際值
type CodOrderPage struct {
	Orders []model.CodOrder
	Total  int64
	Page   int
	Limit  int
}

func (c *CodOrderService) GetCodOrders(ctx context.Context, page, limit int) (*CodOrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	orders, total, err := c.store.GetCodOrdersPaginated(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &CodOrderPage{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

func (c *CodOrderService) GetCodOrdersByUser(ctx context.Context, userID uint) ([]model.CodOrder, error) {
	return c.store.GetCodOrdersByUser(ctx, userID)
}

// UpdateCodOrderStatus 取消訂單時還原佔用的庫存
func (c *CodOrderService) UpdateCodOrderStatus(ctx context.Context, id uint, status model.CodOrderStatus) (*model.CodOrder, error) {
	if _, ok := validCodStatuses[status]; !ok {
		return nil, ErrInvalidCodStatus
	}

	var codOrder *model.CodOrder
	err := c.store.Transaction(ctx, func(tx db.Store) error {
		existing, err := tx.GetCodOrderByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCodOrderNotFound
			}
			return err
		}

		if status == model.CodOrderStatusCancelled && existing.Status != model.CodOrderStatusCancelled {
			if err := tx.RestoreStock(ctx, existing.ProductID, existing.Quantity); err != nil {
				return err
			}
		}

		if err := tx.UpdateCodOrderStatus(ctx, id, status); err != nil {
			return err
		}
		existing.Status = status
		codOrder = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.producer != nil {
		if err := c.producer.CodStatusChanged(ctx, codOrder); err != nil {
			log.Warn().Err(err).Uint("cod_order_id", id).Msg("cod status changed event failed")
		}
	}
	return codOrder, nil
}

var _ ICodOrderService = (*CodOrderService)(nil)
