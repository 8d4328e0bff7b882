package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/segmentio/kafka-go"
)

type EventType string

var (
	EventOrderPlaced      EventType = "order_placed"
	EventCodOrderPlaced   EventType = "cod_order_placed"
	EventCodStatusChanged EventType = "cod_status_changed"
	EventStockAdjusted    EventType = "stock_adjusted"
)

// IOrderEventProducer 訂單事件發送介面
type IOrderEventProducer interface {
	OrderPlaced(ctx context.Context, order *model.Order) error
	CodOrderPlaced(ctx context.Context, codOrder *model.CodOrder) error
	CodStatusChanged(ctx context.Context, codOrder *model.CodOrder) error
	StockAdjusted(ctx context.Context, productID uint, quantity int) error
	Close() error
}

type OrderEventProducer struct {
	writer *kafka.Writer
	closed atomic.Bool
}

// NewOrderEventProducer 創建訂單事件 producer
// 同步模式，Produce 會 block 到訊息寫入為止
func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  3,
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Printf("kafka producer error: "+msg, args...)
		}),
		Compression: kafka.Snappy,
	}

	return &OrderEventProducer{writer: writer}
}

func (p *OrderEventProducer) OrderPlaced(ctx context.Context, order *model.Order) error {
	return p.produce(ctx, EventOrderPlaced, fmt.Sprintf("order:%d", order.OrderID), order)
}

func (p *OrderEventProducer) CodOrderPlaced(ctx context.Context, codOrder *model.CodOrder) error {
	return p.produce(ctx, EventCodOrderPlaced, fmt.Sprintf("cod_order:%d", codOrder.CodOrderID), codOrder)
}

func (p *OrderEventProducer) CodStatusChanged(ctx context.Context, codOrder *model.CodOrder) error {
	return p.produce(ctx, EventCodStatusChanged, fmt.Sprintf("cod_order:%d", codOrder.CodOrderID), codOrder)
}

func (p *OrderEventProducer) StockAdjusted(ctx context.Context, productID uint, quantity int) error {
	payload := struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}{ProductID: productID, Quantity: quantity}
	return p.produce(ctx, EventStockAdjusted, fmt.Sprintf("product:%d", productID), payload)
}

func (p *OrderEventProducer) produce(ctx context.Context, eventType EventType, key string, payload any) error {
	if p.closed.Load() {
		return fmt.Errorf("producer closed")
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(eventType),
			},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *OrderEventProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)
