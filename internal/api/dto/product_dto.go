package dto

import (
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/shopspring/decimal"
)

// ProductResponse 對外商品形狀
// in_stock 與 stock_quantity 由 stock 推導，不落地
type ProductResponse struct {
	ID             uint                   `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Category       string                 `json:"category"`
	SubcategoryID  *uint                  `json:"subcategory_id,omitempty"`
	GroupID        *uint                  `json:"group_id,omitempty"`
	BrandName      string                 `json:"brand_name"`
	Image          string                 `json:"image"`
	Price          decimal.Decimal        `json:"price"`
	OldPrice       decimal.Decimal        `json:"old_price"`
	Discount       int                    `json:"discount"`
	Rating         float64                `json:"rating"`
	ReviewCount    int                    `json:"review_count"`
	ShippingAmount decimal.Decimal        `json:"shipping_amount"`
	UOM            string                 `json:"uom"`
	UOMValue       float64                `json:"uom_value"`
	UOMUnit        string                 `json:"uom_unit"`
	Stock          uint                   `json:"stock"`
	StockQuantity  uint                   `json:"stock_quantity"`
	InStock        bool                   `json:"in_stock"`
	DeliveryType   model.DeliveryType     `json:"delivery_type"`
	Featured       bool                   `json:"featured"`
	Popular        bool                   `json:"popular"`
	Variants       []model.ProductVariant `json:"variants,omitempty"`
}

// ProductDeliveryDTO 更新商品配送方式的請求
type ProductDeliveryDTO struct {
	DeliveryType string `json:"delivery_type"`
}

// CheckDeliveryDTO check-delivery 的請求
type CheckDeliveryDTO struct {
	Pincode    string `json:"pincode"`
	ProductIDs []uint `json:"product_ids"`
}

func ConvertProduct(p model.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ProductID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		SubcategoryID:  p.SubcategoryID,
		GroupID:        p.GroupID,
		BrandName:      p.BrandName,
		Image:          p.Image,
		Price:          p.Price,
		OldPrice:       p.OldPrice,
		Discount:       p.Discount,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		ShippingAmount: p.ShippingAmount,
		UOM:            p.UOM,
		UOMValue:       p.UOMValue,
		UOMUnit:        p.UOMUnit,
		Stock:          p.Stock,
		StockQuantity:  p.Stock,
		InStock:        p.InStock(),
		DeliveryType:   p.DeliveryType,
		Featured:       p.Featured,
		Popular:        p.Popular,
		Variants:       p.Variants,
	}
}

func ConvertProducts(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ConvertProduct(p))
	}
	return out
}

// VariantCreateDTO 新增變體
type VariantCreateDTO struct {
	VariantName     string           `json:"variant_name"`
	VariantPrice    decimal.Decimal  `json:"variant_price"`
	VariantOldPrice *decimal.Decimal `json:"variant_old_price,omitempty"`
	VariantDiscount int              `json:"variant_discount"`
	VariantStock    uint             `json:"variant_stock"`
	VariantWeight   string           `json:"variant_weight"`
	VariantUnit     string           `json:"variant_unit"`
	ShippingAmount  *decimal.Decimal `json:"shipping_amount,omitempty"`
	IsDefault       bool             `json:"is_default"`
}

// VariantUpdateDTO 只接受白名單欄位，其餘 payload 欄位忽略
type VariantUpdateDTO struct {
	VariantName     *string          `json:"variant_name,omitempty"`
	VariantPrice    *decimal.Decimal `json:"variant_price,omitempty"`
	VariantOldPrice *decimal.Decimal `json:"variant_old_price,omitempty"`
	VariantDiscount *int             `json:"variant_discount,omitempty"`
	VariantStock    *uint            `json:"variant_stock,omitempty"`
	VariantWeight   *string          `json:"variant_weight,omitempty"`
	VariantUnit     *string          `json:"variant_unit,omitempty"`
	ShippingAmount  *decimal.Decimal `json:"shipping_amount,omitempty"`
	IsDefault       *bool            `json:"is_default,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}
