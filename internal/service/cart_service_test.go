package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seedProduct(store *fakeStore, id uint, price int64, stock uint) *model.Product {
	product := &model.Product{
		ProductID:    id,
		Name:         "product",
		Price:        decimal.NewFromInt(price),
		Stock:        stock,
		DeliveryType: model.DeliveryNationwide,
		Active:       true,
	}
	store.products[id] = product
	return product
}

func TestAddToCart_ClaimsStock(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	svc := NewCartService(store)

	item, err := svc.AddToCart(context.Background(), 7, 1, 3)
	require.NoError(t, err)
	require.Equal(t, 3, item.Quantity)
	// 加入購物車即佔用庫存
	require.Equal(t, uint(7), store.products[1].Stock)
}

func TestAddToCart_MergesExistingItem(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	svc := NewCartService(store)

	first, err := svc.AddToCart(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	second, err := svc.AddToCart(context.Background(), 7, 1, 3)
	require.NoError(t, err)

	require.Equal(t, first.CartItemID, second.CartItemID)
	require.Equal(t, 5, second.Quantity)
	require.Equal(t, uint(5), store.products[1].Stock)

	items, err := store.GetCartItemsByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestAddToCart_InsufficientStock(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 2)
	svc := NewCartService(store)

	_, err := svc.AddToCart(context.Background(), 7, 1, 3)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// 失敗時不留下任何狀態
	require.Equal(t, uint(2), store.products[1].Stock)
	items, _ := store.GetCartItemsByUser(context.Background(), 7)
	require.Empty(t, items)
}

func TestAddToCart_InvalidInput(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	svc := NewCartService(store)

	_, err := svc.AddToCart(context.Background(), 7, 1, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddToCart(context.Background(), 7, 99, 1)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddToCart_InactiveProduct(t *testing.T) {
	store := newFakeStore()
	product := seedProduct(store, 1, 100, 10)
	product.Active = false
	svc := NewCartService(store)

	_, err := svc.AddToCart(context.Background(), 7, 1, 1)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateCartItem_Delta(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	svc := NewCartService(store)

	item, err := svc.AddToCart(context.Background(), 7, 1, 4)
	require.NoError(t, err)
	require.Equal(t, uint(6), store.products[1].Stock)

	// 增量只扣差額
	updated, err := svc.UpdateCartItem(context.Background(), item.CartItemID, 6)
	require.NoError(t, err)
	require.Equal(t, 6, updated.Quantity)
	require.Equal(t, uint(4), store.products[1].Stock)

	// 減量還原差額
	updated, err = svc.UpdateCartItem(context.Background(), item.CartItemID, 1)
	require.NoError(t, err)
	require.Equal(t, 1, updated.Quantity)
	require.Equal(t, uint(9), store.products[1].Stock)
}

func TestUpdateCartItem_ZeroRemoves(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	svc := NewCartService(store)

	item, err := svc.AddToCart(context.Background(), 7, 1, 4)
	require.NoError(t, err)

	removed, err := svc.UpdateCartItem(context.Background(), item.CartItemID, 0)
	require.NoError(t, err)
	require.Nil(t, removed)
	require.Equal(t, uint(10), store.products[1].Stock)

	items, _ := store.GetCartItemsByUser(context.Background(), 7)
	require.Empty(t, items)
}

func TestUpdateCartItem_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewCartService(store)

	_, err := svc.UpdateCartItem(context.Background(), 999, 2)
	require.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveCartItem_RestoresStock(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	svc := NewCartService(store)

	item, err := svc.AddToCart(context.Background(), 7, 1, 4)
	require.NoError(t, err)
	require.Equal(t, uint(6), store.products[1].Stock)

	err = svc.RemoveCartItem(context.Background(), item.CartItemID)
	require.NoError(t, err)
	require.Equal(t, uint(10), store.products[1].Stock)

	err = svc.RemoveCartItem(context.Background(), item.CartItemID)
	require.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestClearCart_BatchResult(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	seedProduct(store, 2, 200, 10)
	svc := NewCartService(store)

	_, err := svc.AddToCart(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(context.Background(), 7, 2, 3)
	require.NoError(t, err)

	// 其中一個商品消失，還原會失敗
	delete(store.products, 2)

	result, err := svc.ClearCart(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, result.Restored, 1)
	require.Equal(t, uint(1), result.Restored[0].ProductID)
	require.Equal(t, 2, result.Restored[0].Quantity)
	require.Len(t, result.Failed, 1)
	require.Equal(t, uint(2), result.Failed[0].ProductID)

	// 失敗的項目留在購物車
	items, _ := store.GetCartItemsByUser(context.Background(), 7)
	require.Len(t, items, 1)
	require.Equal(t, uint(2), items[0].ProductID)
	require.Equal(t, uint(10), store.products[1].Stock)
}

func TestGetCart_Totals(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	seedProduct(store, 2, 250, 10)
	svc := NewCartService(store)

	_, err := svc.AddToCart(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(context.Background(), 7, 2, 1)
	require.NoError(t, err)

	lines, total, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.True(t, total.Equal(decimal.NewFromInt(450)))
}
