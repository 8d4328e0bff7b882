package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type WarehouseType string

const (
	WarehouseTypeCentral WarehouseType = "central"
	WarehouseTypeZonal   WarehouseType = "zonal"
)

// Warehouse 階層只有一層：central (level 0) 可以當 zonal (level 1) 的 parent
type Warehouse struct {
	WarehouseID       uint          `gorm:"primaryKey" json:"id"`
	Name              string        `gorm:"not null;type:varchar(200)" json:"name"`
	Type              WarehouseType `gorm:"not null;type:varchar(20);index" json:"type"`
	Location          string        `gorm:"type:varchar(20)" json:"location"`
	Address           string        `gorm:"type:varchar(500)" json:"address"`
	ContactPerson     string        `gorm:"type:varchar(100)" json:"contact_person"`
	ContactPhone      string        `gorm:"type:varchar(50)" json:"contact_phone"`
	ContactEmail      string        `gorm:"type:varchar(100)" json:"contact_email"`
	ParentWarehouseID *uint         `gorm:"index" json:"parent_warehouse_id,omitempty"`
	HierarchyLevel    int           `gorm:"not null;default:0" json:"hierarchy_level"`
	IsActive          bool          `gorm:"not null;default:true" json:"is_active"`
	BaseModel
}

type WarehouseZone struct {
	WarehouseID uint `gorm:"primaryKey" json:"warehouse_id"`
	ZoneID      uint `gorm:"primaryKey" json:"zone_id"`
	Priority    int  `gorm:"not null;default:1" json:"priority"`
	IsActive    bool `gorm:"not null;default:true" json:"is_active"`
	BaseModel
}

type ProductWarehouseStock struct {
	StockID          uint            `gorm:"primaryKey" json:"id"`
	WarehouseID      uint            `gorm:"not null;uniqueIndex:idx_warehouse_product" json:"warehouse_id"`
	ProductID        uint            `gorm:"not null;uniqueIndex:idx_warehouse_product" json:"product_id"`
	StockQuantity    int             `gorm:"not null;default:0" json:"stock_quantity"`
	ReservedQuantity int             `gorm:"not null;default:0" json:"reserved_quantity"`
	MinimumThreshold int             `gorm:"not null;default:10" json:"minimum_threshold"`
	CostPerUnit      decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost_per_unit"`
	LastRestockedAt  time.Time       `gorm:"null" json:"last_restocked_at"`
	IsActive         bool            `gorm:"not null;default:true" json:"is_active"`
	BaseModel
}

// AvailableQuantity 推導欄位 stock - reserved
func (s *ProductWarehouseStock) AvailableQuantity() int {
	return s.StockQuantity - s.ReservedQuantity
}

func (s *ProductWarehouseStock) IsLowStock() bool {
	return s.StockQuantity <= s.MinimumThreshold
}
