package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeProducer 記錄發送過的事件
type fakeProducer struct {
	events []producer.EventType
}

func (f *fakeProducer) OrderPlaced(ctx context.Context, order *model.Order) error {
	f.events = append(f.events, producer.EventOrderPlaced)
	return nil
}

func (f *fakeProducer) CodOrderPlaced(ctx context.Context, codOrder *model.CodOrder) error {
	f.events = append(f.events, producer.EventCodOrderPlaced)
	return nil
}

func (f *fakeProducer) CodStatusChanged(ctx context.Context, codOrder *model.CodOrder) error {
	f.events = append(f.events, producer.EventCodStatusChanged)
	return nil
}

func (f *fakeProducer) StockAdjusted(ctx context.Context, productID uint, quantity int) error {
	f.events = append(f.events, producer.EventStockAdjusted)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

var _ producer.IOrderEventProducer = (*fakeProducer)(nil)

func TestCheckout_TransfersClaim(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	seedProduct(store, 2, 50, 10)
	cartSvc := NewCartService(store)
	events := &fakeProducer{}
	svc := NewOrderService(store, events)

	_, err := cartSvc.AddToCart(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddToCart(context.Background(), 7, 2, 3)
	require.NoError(t, err)
	require.Equal(t, uint(8), store.products[1].Stock)

	order, err := svc.Checkout(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 2)
	require.True(t, order.Amount.Equal(decimal.NewFromInt(350)))
	require.Equal(t, model.OrderStatusPending, order.Status)

	// 庫存佔用轉入訂單，不再扣也不還原
	require.Equal(t, uint(8), store.products[1].Stock)
	require.Equal(t, uint(7), store.products[2].Stock)

	// 購物車清空
	items, _ := store.GetCartItemsByUser(context.Background(), 7)
	require.Empty(t, items)

	require.Equal(t, []producer.EventType{producer.EventOrderPlaced}, events.events)
}

func TestCheckout_PriceSnapshot(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	cartSvc := NewCartService(store)
	svc := NewOrderService(store, nil)

	_, err := cartSvc.AddToCart(context.Background(), 7, 1, 1)
	require.NoError(t, err)

	// 下單前漲價，訂單吃當下價格
	store.products[1].Price = decimal.NewFromInt(120)

	order, err := svc.Checkout(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, order.OrderItems[0].Price.Equal(decimal.NewFromInt(120)))

	// 之後再改價不影響已存訂單
	store.products[1].Price = decimal.NewFromInt(999)
	saved, err := store.GetOrderByID(context.Background(), order.OrderID)
	require.NoError(t, err)
	require.True(t, saved.OrderItems[0].Price.Equal(decimal.NewFromInt(120)))
}

func TestCheckout_EmptyCart(t *testing.T) {
	store := newFakeStore()
	svc := NewOrderService(store, nil)

	_, err := svc.Checkout(context.Background(), 7)
	require.ErrorIs(t, err, ErrCartEmpty)
}

func TestGetOrdersByUser(t *testing.T) {
	store := newFakeStore()
	seedProduct(store, 1, 100, 10)
	cartSvc := NewCartService(store)
	svc := NewOrderService(store, nil)

	_, err := cartSvc.AddToCart(context.Background(), 7, 1, 1)
	require.NoError(t, err)
	_, err = svc.Checkout(context.Background(), 7)
	require.NoError(t, err)

	orders, err := svc.GetOrdersByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	others, err := svc.GetOrdersByUser(context.Background(), 8)
	require.NoError(t, err)
	require.Empty(t, others)
}
