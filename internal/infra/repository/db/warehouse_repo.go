package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

// WarehouseFilter 倉庫列表查詢條件
type WarehouseFilter struct {
	Type     string
	IsActive *bool
}

// IWarehouseRepository Warehouse 與 zone 對應相關操作介面
type IWarehouseRepository interface {
	CreateWarehouse(ctx context.Context, warehouse *model.Warehouse) error
	GetWarehouseByID(ctx context.Context, id uint) (*model.Warehouse, error)
	GetWarehouses(ctx context.Context, filter WarehouseFilter) ([]model.Warehouse, error)
	GetWarehousesByHierarchy(ctx context.Context) ([]model.Warehouse, error)
	UpdateWarehouse(ctx context.Context, warehouse *model.Warehouse) error
	DeleteWarehouse(ctx context.Context, id uint) error
	GetWarehouseZones(ctx context.Context, warehouseID uint) ([]model.WarehouseZone, error)
	AddWarehouseZones(ctx context.Context, mappings []model.WarehouseZone) error
	RemoveWarehouseZones(ctx context.Context, warehouseID uint, zoneIDs []uint) error
}

// IStockRepository product_warehouse_stock 相關操作介面
type IStockRepository interface {
	GetWarehouseStock(ctx context.Context, warehouseID uint) ([]model.ProductWarehouseStock, error)
	GetStockRecord(ctx context.Context, warehouseID, productID uint) (*model.ProductWarehouseStock, error)
	CountStockRecords(ctx context.Context, warehouseID uint) (int64, error)
	CreateStockRecord(ctx context.Context, record *model.ProductWarehouseStock) error
	UpdateStockRecord(ctx context.Context, warehouseID, productID uint, updates map[string]interface{}) error
	DeleteStockRecord(ctx context.Context, warehouseID, productID uint) error
}

type WarehouseRepo struct {
	db *gorm.DB
}

func NewWarehouseRepo(db *gorm.DB) *WarehouseRepo {
	return &WarehouseRepo{db: db}
}

func (s *WarehouseRepo) CreateWarehouse(ctx context.Context, warehouse *model.Warehouse) error {
	return s.db.WithContext(ctx).Create(warehouse).Error
}

func (s *WarehouseRepo) GetWarehouseByID(ctx context.Context, id uint) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	err := s.db.WithContext(ctx).First(&warehouse, id).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (s *WarehouseRepo) GetWarehouses(ctx context.Context, filter WarehouseFilter) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	query := s.db.WithContext(ctx).Order("name ASC")
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	err := query.Find(&warehouses).Error
	return warehouses, err
}

func (s *WarehouseRepo) GetWarehousesByHierarchy(ctx context.Context) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := s.db.WithContext(ctx).Order("hierarchy_level ASC, name ASC").Find(&warehouses).Error
	return warehouses, err
}

func (s *WarehouseRepo) UpdateWarehouse(ctx context.Context, warehouse *model.Warehouse) error {
	return s.db.WithContext(ctx).Save(warehouse).Error
}

func (s *WarehouseRepo) DeleteWarehouse(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Warehouse{}, id).Error
}

func (s *WarehouseRepo) GetWarehouseZones(ctx context.Context, warehouseID uint) ([]model.WarehouseZone, error) {
	var mappings []model.WarehouseZone
	err := s.db.WithContext(ctx).
		Where("warehouse_id = ? AND is_active = ?", warehouseID, true).
		Find(&mappings).Error
	return mappings, err
}

func (s *WarehouseRepo) AddWarehouseZones(ctx context.Context, mappings []model.WarehouseZone) error {
	if len(mappings) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&mappings).Error
}

func (s *WarehouseRepo) RemoveWarehouseZones(ctx context.Context, warehouseID uint, zoneIDs []uint) error {
	if len(zoneIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Unscoped().
		Where("warehouse_id = ? AND zone_id IN ?", warehouseID, zoneIDs).
		Delete(&model.WarehouseZone{}).Error
}

type StockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) *StockRepo {
	return &StockRepo{db: db}
}

func (s *StockRepo) GetWarehouseStock(ctx context.Context, warehouseID uint) ([]model.ProductWarehouseStock, error) {
	var records []model.ProductWarehouseStock
	err := s.db.WithContext(ctx).
		Where("warehouse_id = ? AND is_active = ?", warehouseID, true).
		Find(&records).Error
	return records, err
}

func (s *StockRepo) GetStockRecord(ctx context.Context, warehouseID, productID uint) (*model.ProductWarehouseStock, error) {
	var record model.ProductWarehouseStock
	err := s.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *StockRepo) CountStockRecords(ctx context.Context, warehouseID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ProductWarehouseStock{}).
		Where("warehouse_id = ?", warehouseID).
		Count(&count).Error
	return count, err
}

func (s *StockRepo) CreateStockRecord(ctx context.Context, record *model.ProductWarehouseStock) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *StockRepo) UpdateStockRecord(ctx context.Context, warehouseID, productID uint, updates map[string]interface{}) error {
	updates["last_restocked_at"] = time.Now()
	result := s.db.WithContext(ctx).Model(&model.ProductWarehouseStock{}).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *StockRepo) DeleteStockRecord(ctx context.Context, warehouseID, productID uint) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		Delete(&model.ProductWarehouseStock{}).Error
}
