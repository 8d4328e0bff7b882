package dto

import (
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/shopspring/decimal"
)

// WarehouseDTO 建立/更新倉庫的請求
type WarehouseDTO struct {
	Name              string `json:"name"`
	Type              string `json:"type"`
	Location          string `json:"location"`
	Address           string `json:"address"`
	ContactPerson     string `json:"contact_person"`
	ContactPhone      string `json:"contact_phone"`
	ContactEmail      string `json:"contact_email"`
	ParentWarehouseID *uint  `json:"parent_warehouse_id,omitempty"`
	IsActive          *bool  `json:"is_active,omitempty"`
	ZoneIDs           []uint `json:"zone_ids"`
}

func (d WarehouseDTO) ToInput() service.WarehouseInput {
	return service.WarehouseInput{
		Name:              d.Name,
		Type:              model.WarehouseType(d.Type),
		Location:          d.Location,
		Address:           d.Address,
		ContactPerson:     d.ContactPerson,
		ContactPhone:      d.ContactPhone,
		ContactEmail:      d.ContactEmail,
		ParentWarehouseID: d.ParentWarehouseID,
		IsActive:          d.IsActive,
		ZoneIDs:           d.ZoneIDs,
	}
}

// WarehouseResponse 倉庫加 zone 對應
type WarehouseResponse struct {
	model.Warehouse
	Zones []model.DeliveryZone `json:"zones"`
}

func ConvertWarehouseDetail(detail service.WarehouseDetail) WarehouseResponse {
	zones := detail.Zones
	if zones == nil {
		zones = []model.DeliveryZone{}
	}
	return WarehouseResponse{Warehouse: detail.Warehouse, Zones: zones}
}

func ConvertWarehouseDetails(details []service.WarehouseDetail) []WarehouseResponse {
	out := make([]WarehouseResponse, 0, len(details))
	for _, detail := range details {
		out = append(out, ConvertWarehouseDetail(detail))
	}
	return out
}

// StockCreateDTO 倉庫上架商品
type StockCreateDTO struct {
	ProductID        uint            `json:"product_id"`
	StockQuantity    int             `json:"stock_quantity"`
	ReservedQuantity int             `json:"reserved_quantity"`
	MinimumThreshold *int            `json:"minimum_threshold,omitempty"`
	CostPerUnit      decimal.Decimal `json:"cost_per_unit"`
}

// StockUpdateDTO 庫存更新，nil 表示不更動
type StockUpdateDTO struct {
	StockQuantity    *int             `json:"stock_quantity,omitempty"`
	ReservedQuantity *int             `json:"reserved_quantity,omitempty"`
	MinimumThreshold *int             `json:"minimum_threshold,omitempty"`
	CostPerUnit      *decimal.Decimal `json:"cost_per_unit,omitempty"`
	IsActive         *bool            `json:"is_active,omitempty"`
}

func (d StockUpdateDTO) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if d.StockQuantity != nil {
		updates["stock_quantity"] = *d.StockQuantity
	}
	if d.ReservedQuantity != nil {
		updates["reserved_quantity"] = *d.ReservedQuantity
	}
	if d.MinimumThreshold != nil {
		updates["minimum_threshold"] = *d.MinimumThreshold
	}
	if d.CostPerUnit != nil {
		updates["cost_per_unit"] = *d.CostPerUnit
	}
	if d.IsActive != nil {
		updates["is_active"] = *d.IsActive
	}
	return updates
}

// StockLineResponse 庫存明細含推導欄位與商品資訊
type StockLineResponse struct {
	WarehouseID       uint            `json:"warehouse_id"`
	ProductID         uint            `json:"product_id"`
	ProductName       string          `json:"product_name"`
	ProductImage      string          `json:"product_image"`
	ProductPrice      decimal.Decimal `json:"product_price"`
	StockQuantity     int             `json:"stock_quantity"`
	ReservedQuantity  int             `json:"reserved_quantity"`
	AvailableQuantity int             `json:"available_quantity"`
	MinimumThreshold  int             `json:"minimum_threshold"`
	IsLowStock        bool            `json:"is_low_stock"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit"`
	LastRestockedAt   time.Time       `json:"last_restocked_at"`
}

func ConvertStockLines(lines []service.WarehouseStockLine) []StockLineResponse {
	out := make([]StockLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, StockLineResponse{
			WarehouseID:       line.Stock.WarehouseID,
			ProductID:         line.Stock.ProductID,
			ProductName:       line.Product.Name,
			ProductImage:      line.Product.Image,
			ProductPrice:      line.Product.Price,
			StockQuantity:     line.Stock.StockQuantity,
			ReservedQuantity:  line.Stock.ReservedQuantity,
			AvailableQuantity: line.Stock.AvailableQuantity(),
			MinimumThreshold:  line.Stock.MinimumThreshold,
			IsLowStock:        line.Stock.IsLowStock(),
			CostPerUnit:       line.Stock.CostPerUnit,
			LastRestockedAt:   line.Stock.LastRestockedAt,
		})
	}
	return out
}
