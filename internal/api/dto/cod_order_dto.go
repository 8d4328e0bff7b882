package dto

import "github.com/RoyceAzure/lab/storefront/internal/service"

// CodOrderCreateDTO 建立 COD 訂單的請求
type CodOrderCreateDTO struct {
	UserID       uint   `json:"user_id"`
	ProductID    uint   `json:"product_id"`
	UserName     string `json:"user_name"`
	UserAddress  string `json:"user_address"`
	UserLocation string `json:"user_location"`
	Quantity     int    `json:"quantity"`
}

func (d CodOrderCreateDTO) ToInput() service.CodOrderInput {
	quantity := d.Quantity
	if quantity == 0 {
		quantity = 1
	}
	return service.CodOrderInput{
		UserID:       d.UserID,
		ProductID:    d.ProductID,
		UserName:     d.UserName,
		UserAddress:  d.UserAddress,
		UserLocation: d.UserLocation,
		Quantity:     quantity,
	}
}

type CodOrderStatusDTO struct {
	Status string `json:"status"`
}

type CheckoutDTO struct {
	UserID uint `json:"user_id"`
}
