package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = db.ErrInsufficientStock
	ErrCartEmpty         = errors.New("cart is empty")
)

// CartLine 購物車明細，帶商品資訊
type CartLine struct {
	CartItem model.CartItem
	Product  model.Product
	Subtotal decimal.Decimal
}

// RestoredItem 清空購物車時成功還原庫存的項目
type RestoredItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// FailedItem 清空購物車時處理失敗的項目
type FailedItem struct {
	ProductID uint   `json:"product_id"`
	Error     string `json:"error"`
}

// ClearCartResult 批次結果，restored 與 failed 並存
type ClearCartResult struct {
	Restored []RestoredItem `json:"restored"`
	Failed   []FailedItem   `json:"failed"`
}

type ICartService interface {
	GetCart(ctx context.Context, userID uint) ([]CartLine, decimal.Decimal, error)
	AddToCart(ctx context.Context, userID, productID uint, quantity int) (*model.CartItem, error)
	UpdateCartItem(ctx context.Context, cartItemID uint, quantity int) (*model.CartItem, error)
	RemoveCartItem(ctx context.Context, cartItemID uint) error
	ClearCart(ctx context.Context, userID uint) (*ClearCartResult, error)
}

type CartService struct {
	store db.Store
}

func NewCartService(store db.Store) *CartService {
	return &CartService{store: store}
}

func (c *CartService) GetCart(ctx context.Context, userID uint) ([]CartLine, decimal.Decimal, error) {
	items, err := c.store.GetCartItemsByUser(ctx, userID)
	if err != nil {
		return nil, decimal.Decimal{}, err
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := c.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Decimal{}, err
	}
	byID := make(map[uint]model.Product, len(products))
	for _, product := range products {
		byID[product.ProductID] = product
	}

	lines := make([]CartLine, 0, len(items))
	total := decimal.NewFromInt(0)
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			// 商品已下架，明細仍列出數量但不計金額
			lines = append(lines, CartLine{CartItem: item})
			continue
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, CartLine{CartItem: item, Product: product, Subtotal: subtotal})
		total = total.Add(subtotal)
	}
	return lines, total, nil
}

// AddToCart 加入購物車即佔用庫存
// 單一交易內先條件式扣庫存再 upsert 購物車，扣不到就整筆失敗
func (c *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var result *model.CartItem
	err := c.store.Transaction(ctx, func(tx db.Store) error {
		if _, err := tx.GetActiveProductByID(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := tx.DeductStock(ctx, productID, quantity); err != nil {
			return err
		}

		existing, err := tx.GetCartItemByUserAndProduct(ctx, userID, productID)
		switch {
		case err == nil:
			newQuantity := existing.Quantity + quantity
			if err := tx.UpdateCartItemQuantity(ctx, existing.CartItemID, newQuantity); err != nil {
				return err
			}
			existing.Quantity = newQuantity
			result = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := &model.CartItem{
				UserID:    userID,
				ProductID: productID,
				Quantity:  quantity,
				AddedAt:   time.Now(),
			}
			if err := tx.CreateCartItem(ctx, item); err != nil {
				return err
			}
			result = item
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateCartItem delta 為正時條件式扣庫存，為負時還原
// quantity 歸零以下等同移除
func (c *CartService) UpdateCartItem(ctx context.Context, cartItemID uint, quantity int) (*model.CartItem, error) {
	var result *model.CartItem
	err := c.store.Transaction(ctx, func(tx db.Store) error {
		item, err := tx.GetCartItemByID(ctx, cartItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}

		if quantity < 1 {
			if err := tx.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			if err := tx.DeleteCartItem(ctx, item.CartItemID); err != nil {
				return err
			}
			result = nil
			return nil
		}

		delta := quantity - item.Quantity
		switch {
		case delta > 0:
			if err := tx.DeductStock(ctx, item.ProductID, delta); err != nil {
				return err
			}
		case delta < 0:
			if err := tx.RestoreStock(ctx, item.ProductID, -delta); err != nil {
				return err
			}
		}

		if err := tx.UpdateCartItemQuantity(ctx, item.CartItemID, quantity); err != nil {
			return err
		}
		item.Quantity = quantity
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveCartItem 還原佔用的庫存後刪除購物車項目，單一交易
func (c *CartService) RemoveCartItem(ctx context.Context, cartItemID uint) error {
	return c.store.Transaction(ctx, func(tx db.Store) error {
		item, err := tx.GetCartItemByID(ctx, cartItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartItemNotFound
			}
			return err
		}
		if err := tx.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
		return tx.DeleteCartItem(ctx, item.CartItemID)
	})
}

// ClearCart 逐項還原，單項各自一筆交易
// 失敗的項目保留在購物車，結果分列 restored / failed
func (c *CartService) ClearCart(ctx context.Context, userID uint) (*ClearCartResult, error) {
	items, err := c.store.GetCartItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ClearCartResult{Restored: []RestoredItem{}, Failed: []FailedItem{}}
	for _, item := range items {
		err := c.store.Transaction(ctx, func(tx db.Store) error {
			if err := tx.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			return tx.DeleteCartItem(ctx, item.CartItemID)
		})
		if err != nil {
			log.Warn().Err(err).
				Uint("user_id", userID).
				Uint("product_id", item.ProductID).
				Msg("clear cart item failed")
			result.Failed = append(result.Failed, FailedItem{ProductID: item.ProductID, Error: err.Error()})
			continue
		}
		result.Restored = append(result.Restored, RestoredItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return result, nil
}

var _ ICartService = (*CartService)(nil)
