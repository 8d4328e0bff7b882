package model

import "time"

// CartItem 對 product stock 的佔用隨 Quantity 一起存在，
// 加入購物車即扣庫存，移除即還原
type CartItem struct {
	CartItemID uint      `gorm:"primaryKey" json:"cart_item_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	AddedAt    time.Time `gorm:"not null;default:now()" json:"added_at"`
	BaseModel
}
