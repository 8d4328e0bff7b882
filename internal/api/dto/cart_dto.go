package dto

import (
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/shopspring/decimal"
)

type AddToCartDTO struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemDTO struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse 購物車明細
type CartLineResponse struct {
	CartItemID uint            `json:"cart_item_id"`
	ProductID  uint            `json:"product_id"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	AddedAt    time.Time       `json:"added_at"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

func ConvertCart(lines []service.CartLine, total decimal.Decimal) CartResponse {
	items := make([]CartLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, CartLineResponse{
			CartItemID: line.CartItem.CartItemID,
			ProductID:  line.CartItem.ProductID,
			Name:       line.Product.Name,
			Image:      line.Product.Image,
			Price:      line.Product.Price,
			Quantity:   line.CartItem.Quantity,
			Subtotal:   line.Subtotal,
			AddedAt:    line.CartItem.AddedAt,
		})
	}
	return CartResponse{Items: items, Total: total}
}
