package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	OrderID    uint            `gorm:"primaryKey" json:"order_id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	OrderItems []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
	Amount     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"amount"`
	Status     OrderStatus     `gorm:"not null;type:varchar(20);default:'pending'" json:"status"`
	OrderDate  time.Time       `gorm:"not null" json:"order_date"`
	BaseModel
}

type OrderItem struct {
	OrderID   uint `gorm:"primaryKey" json:"order_id"`
	ProductID uint `gorm:"primaryKey" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
	// 下單當下的單價快照
	Price decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	BaseModel
}

// ProductSales order_items 彙總結果，quick picks 用
type ProductSales struct {
	ProductID uint `json:"product_id"`
	TotalSold int  `json:"total_sold"`
}
