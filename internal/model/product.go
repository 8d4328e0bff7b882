package model

import (
	"github.com/shopspring/decimal"
)

type DeliveryType string

const (
	// DeliveryNationwide 全區可配送，不受 zone 限制
	DeliveryNationwide DeliveryType = "nationwide"
	// DeliveryZonal 僅配送到可服務 zone 內的 pincode
	DeliveryZonal DeliveryType = "zonal"
)

type Product struct {
	ProductID      uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"not null;type:varchar(200)" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Category       string          `gorm:"type:varchar(100);index" json:"category"`
	SubcategoryID  *uint           `gorm:"index" json:"subcategory_id,omitempty"`
	GroupID        *uint           `gorm:"index" json:"group_id,omitempty"`
	BrandName      string          `gorm:"type:varchar(100)" json:"brand_name"`
	Image          string          `gorm:"type:varchar(500)" json:"image"`
	Price          decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	OldPrice       decimal.Decimal `gorm:"type:decimal(10,2)" json:"old_price"`
	Discount       int             `gorm:"not null;default:0" json:"discount"`
	Rating         float64         `gorm:"not null;default:0" json:"rating"`
	ReviewCount    int             `gorm:"not null;default:0" json:"review_count"`
	ShippingAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"shipping_amount"`
	UOM            string          `gorm:"type:varchar(50)" json:"uom"`
	UOMValue       float64         `json:"uom_value"`
	UOMUnit        string          `gorm:"type:varchar(20)" json:"uom_unit"`
	// Stock 是庫存唯一來源，in_stock / stock_quantity 由此推導
	Stock        uint             `gorm:"not null;default:0" json:"stock"`
	DeliveryType DeliveryType     `gorm:"not null;type:varchar(20);default:'nationwide'" json:"delivery_type"`
	Featured     bool             `gorm:"not null;default:false" json:"featured"`
	Popular      bool             `gorm:"not null;default:false" json:"popular"`
	Active       bool             `gorm:"not null;default:true;index" json:"active"`
	Variants     []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	OrderItems   []OrderItem      `gorm:"foreignKey:ProductID" json:"-"`
	BaseModel
}

// InStock 推導欄位，不落地
func (p *Product) InStock() bool {
	return p.Stock > 0
}

type ProductVariant struct {
	VariantID       uint            `gorm:"primaryKey" json:"id"`
	ProductID       uint            `gorm:"not null;index" json:"product_id"`
	VariantName     string          `gorm:"not null;type:varchar(200)" json:"variant_name"`
	VariantPrice    decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"variant_price"`
	VariantOldPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"variant_old_price"`
	VariantDiscount int             `gorm:"not null;default:0" json:"variant_discount"`
	VariantStock    uint            `gorm:"not null;default:0" json:"variant_stock"`
	VariantWeight   string          `gorm:"type:varchar(50)" json:"variant_weight"`
	VariantUnit     string          `gorm:"type:varchar(20)" json:"variant_unit"`
	ShippingAmount  decimal.Decimal `gorm:"type:decimal(10,2)" json:"shipping_amount"`
	IsDefault       bool            `gorm:"not null;default:false" json:"is_default"`
	Active          bool            `gorm:"not null;default:true" json:"active"`
	BaseModel
}
