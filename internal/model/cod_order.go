package model

import "github.com/shopspring/decimal"

type CodOrderStatus string

const (
	CodOrderStatusPending   CodOrderStatus = "pending"
	CodOrderStatusConfirmed CodOrderStatus = "confirmed"
	CodOrderStatusShipped   CodOrderStatus = "shipped"
	CodOrderStatusDelivered CodOrderStatus = "delivered"
	CodOrderStatusCancelled CodOrderStatus = "cancelled"
)

// CodOrder 建單當下 user/product/價格/地址 的快照
type CodOrder struct {
	CodOrderID        uint            `gorm:"primaryKey" json:"id"`
	UserID            uint            `gorm:"not null;index" json:"user_id"`
	ProductID         uint            `gorm:"not null;index" json:"product_id"`
	UserName          string          `gorm:"not null;type:varchar(100)" json:"user_name"`
	ProductName       string          `gorm:"not null;type:varchar(200)" json:"product_name"`
	ProductTotalPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"product_total_price"`
	UserAddress       string          `gorm:"not null;type:varchar(500)" json:"user_address"`
	UserLocation      string          `gorm:"type:varchar(200)" json:"user_location"`
	Quantity          int             `gorm:"not null;default:1" json:"quantity"`
	Status            CodOrderStatus  `gorm:"not null;type:varchar(20);default:'pending'" json:"status"`
	BaseModel
}
