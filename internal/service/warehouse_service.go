package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

var (
	ErrWarehouseNotFound      = errors.New("warehouse not found")
	ErrInvalidWarehouseType   = errors.New("warehouse type must be central or zonal")
	ErrZonalRequiresZones     = errors.New("zonal warehouse requires at least one zone")
	ErrParentNotCentral       = errors.New("parent warehouse must be of type central")
	ErrParentNotFound         = errors.New("parent warehouse not found")
	ErrWarehouseSelfParent    = errors.New("warehouse cannot be its own parent")
	ErrWarehouseHasStock      = errors.New("warehouse has stock records")
	ErrStockRecordExists      = errors.New("product already stocked in warehouse")
	ErrStockRecordNotFound    = errors.New("stock record not found")
	ErrZoneNotFoundForMapping = errors.New("one or more zones not found")
)

// WarehouseInput 建立或更新倉庫的輸入
type WarehouseInput struct {
	Name              string
	Type              model.WarehouseType
	Location          string
	Address           string
	ContactPerson     string
	ContactPhone      string
	ContactEmail      string
	ParentWarehouseID *uint
	IsActive          *bool
	ZoneIDs           []uint
}

// WarehouseDetail 倉庫加上 zone 對應
type WarehouseDetail struct {
	Warehouse model.Warehouse
	Zones     []model.DeliveryZone
}

// WarehouseHierarchy 依階層整理的倉庫清單
type WarehouseHierarchy struct {
	Warehouses []model.Warehouse
	ByLevel    map[int][]model.Warehouse
}

type IWarehouseService interface {
	CreateWarehouse(ctx context.Context, input WarehouseInput) (*model.Warehouse, error)
	GetWarehouses(ctx context.Context, filter db.WarehouseFilter) ([]WarehouseDetail, error)
	GetWarehouseByID(ctx context.Context, id uint) (*WarehouseDetail, error)
	GetHierarchy(ctx context.Context) (*WarehouseHierarchy, error)
	UpdateWarehouse(ctx context.Context, id uint, input WarehouseInput) (*model.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id uint) error
	GetWarehouseProducts(ctx context.Context, warehouseID uint) ([]WarehouseStockLine, error)
	AddWarehouseProduct(ctx context.Context, warehouseID uint, record *model.ProductWarehouseStock) error
	UpdateWarehouseProduct(ctx context.Context, warehouseID, productID uint, updates map[string]interface{}) (*model.ProductWarehouseStock, error)
	RemoveWarehouseProduct(ctx context.Context, warehouseID, productID uint) error
}

// WarehouseStockLine 庫存明細，帶商品資訊與推導欄位
type WarehouseStockLine struct {
	Stock   model.ProductWarehouseStock
	Product model.Product
}

type WarehouseService struct {
	store db.Store
}

func NewWarehouseService(store db.Store) *WarehouseService {
	return &WarehouseService{store: store}
}

// 驗證倉庫輸入
// zonal 必須綁至少一個 zone，parent 必須存在且為 central
func (w *WarehouseService) validateInput(ctx context.Context, tx db.Store, selfID uint, input *WarehouseInput) error {
	if input.Type != model.WarehouseTypeCentral && input.Type != model.WarehouseTypeZonal {
		return ErrInvalidWarehouseType
	}
	if input.Type == model.WarehouseTypeZonal && len(input.ZoneIDs) == 0 {
		return ErrZonalRequiresZones
	}

	if input.ParentWarehouseID != nil {
		if selfID != 0 && *input.ParentWarehouseID == selfID {
			return ErrWarehouseSelfParent
		}
		parent, err := tx.GetWarehouseByID(ctx, *input.ParentWarehouseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParentNotFound
			}
			return err
		}
		if input.Type == model.WarehouseTypeZonal && parent.Type != model.WarehouseTypeCentral {
			return ErrParentNotCentral
		}
	}

	if len(input.ZoneIDs) > 0 {
		zones, err := tx.GetZonesByIDs(ctx, input.ZoneIDs)
		if err != nil {
			return err
		}
		if len(zones) != len(dedupeIDs(input.ZoneIDs)) {
			return ErrZoneNotFoundForMapping
		}
	}
	return nil
}

func (w *WarehouseService) CreateWarehouse(ctx context.Context, input WarehouseInput) (*model.Warehouse, error) {
	var warehouse *model.Warehouse
	err := w.store.Transaction(ctx, func(tx db.Store) error {
		if err := w.validateInput(ctx, tx, 0, &input); err != nil {
			return err
		}

		warehouse = &model.Warehouse{
			Name:              input.Name,
			Type:              input.Type,
			Location:          input.Location,
			Address:           input.Address,
			ContactPerson:     input.ContactPerson,
			ContactPhone:      input.ContactPhone,
			ContactEmail:      input.ContactEmail,
			ParentWarehouseID: input.ParentWarehouseID,
			HierarchyLevel:    hierarchyLevel(input.Type),
			IsActive:          true,
		}
		if input.IsActive != nil {
			warehouse.IsActive = *input.IsActive
		}
		if err := tx.CreateWarehouse(ctx, warehouse); err != nil {
			return err
		}

		mappings := make([]model.WarehouseZone, 0, len(input.ZoneIDs))
		for i, zoneID := range dedupeIDs(input.ZoneIDs) {
			mappings = append(mappings, model.WarehouseZone{
				WarehouseID: warehouse.WarehouseID,
				ZoneID:      zoneID,
				Priority:    i + 1,
				IsActive:    true,
			})
		}
		return tx.AddWarehouseZones(ctx, mappings)
	})
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (w *WarehouseService) GetWarehouses(ctx context.Context, filter db.WarehouseFilter) ([]WarehouseDetail, error) {
	warehouses, err := w.store.GetWarehouses(ctx, filter)
	if err != nil {
		return nil, err
	}

	details := make([]WarehouseDetail, 0, len(warehouses))
	for _, warehouse := range warehouses {
		zones, err := w.loadZones(ctx, warehouse.WarehouseID)
		if err != nil {
			return nil, err
		}
		details = append(details, WarehouseDetail{Warehouse: warehouse, Zones: zones})
	}
	return details, nil
}

func (w *WarehouseService) GetWarehouseByID(ctx context.Context, id uint) (*WarehouseDetail, error) {
	warehouse, err := w.store.GetWarehouseByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}
	zones, err := w.loadZones(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WarehouseDetail{Warehouse: *warehouse, Zones: zones}, nil
}

func (w *WarehouseService) GetHierarchy(ctx context.Context) (*WarehouseHierarchy, error) {
	warehouses, err := w.store.GetWarehousesByHierarchy(ctx)
	if err != nil {
		return nil, err
	}
	byLevel := make(map[int][]model.Warehouse)
	for _, warehouse := range warehouses {
		byLevel[warehouse.HierarchyLevel] = append(byLevel[warehouse.HierarchyLevel], warehouse)
	}
	return &WarehouseHierarchy{Warehouses: warehouses, ByLevel: byLevel}, nil
}

// UpdateWarehouse zone 對應用集合差異重建，不做全刪全建
// 整個更新在單一交易內
func (w *WarehouseService) UpdateWarehouse(ctx context.Context, id uint, input WarehouseInput) (*model.Warehouse, error) {
	var warehouse *model.Warehouse
	err := w.store.Transaction(ctx, func(tx db.Store) error {
		existing, err := tx.GetWarehouseByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWarehouseNotFound
			}
			return err
		}

		if err := w.validateInput(ctx, tx, id, &input); err != nil {
			return err
		}

		existing.Name = input.Name
		existing.Type = input.Type
		existing.Location = input.Location
		existing.Address = input.Address
		existing.ContactPerson = input.ContactPerson
		existing.ContactPhone = input.ContactPhone
		existing.ContactEmail = input.ContactEmail
		existing.ParentWarehouseID = input.ParentWarehouseID
		existing.HierarchyLevel = hierarchyLevel(input.Type)
		if input.IsActive != nil {
			existing.IsActive = *input.IsActive
		}
		if err := tx.UpdateWarehouse(ctx, existing); err != nil {
			return err
		}

		current, err := tx.GetWarehouseZones(ctx, id)
		if err != nil {
			return err
		}
		currentSet := make(map[uint]struct{}, len(current))
		for _, mapping := range current {
			currentSet[mapping.ZoneID] = struct{}{}
		}
		desired := dedupeIDs(input.ZoneIDs)
		desiredSet := make(map[uint]struct{}, len(desired))
		for _, zoneID := range desired {
			desiredSet[zoneID] = struct{}{}
		}

		var toAdd []model.WarehouseZone
		for i, zoneID := range desired {
			if _, ok := currentSet[zoneID]; !ok {
				toAdd = append(toAdd, model.WarehouseZone{
					WarehouseID: id,
					ZoneID:      zoneID,
					Priority:    i + 1,
					IsActive:    true,
				})
			}
		}
		var toRemove []uint
		for _, mapping := range current {
			if _, ok := desiredSet[mapping.ZoneID]; !ok {
				toRemove = append(toRemove, mapping.ZoneID)
			}
		}

		if err := tx.AddWarehouseZones(ctx, toAdd); err != nil {
			return err
		}
		if err := tx.RemoveWarehouseZones(ctx, id, toRemove); err != nil {
			return err
		}

		warehouse = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

// DeleteWarehouse 還有庫存紀錄時拒絕刪除
func (w *WarehouseService) DeleteWarehouse(ctx context.Context, id uint) error {
	return w.store.Transaction(ctx, func(tx db.Store) error {
		if _, err := tx.GetWarehouseByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWarehouseNotFound
			}
			return err
		}
		count, err := tx.CountStockRecords(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %d records", ErrWarehouseHasStock, count)
		}
		zones, err := tx.GetWarehouseZones(ctx, id)
		if err != nil {
			return err
		}
		zoneIDs := make([]uint, 0, len(zones))
		for _, mapping := range zones {
			zoneIDs = append(zoneIDs, mapping.ZoneID)
		}
		if err := tx.RemoveWarehouseZones(ctx, id, zoneIDs); err != nil {
			return err
		}
		return tx.DeleteWarehouse(ctx, id)
	})
}

func (w *WarehouseService) GetWarehouseProducts(ctx context.Context, warehouseID uint) ([]WarehouseStockLine, error) {
	if _, err := w.store.GetWarehouseByID(ctx, warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}

	records, err := w.store.GetWarehouseStock(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ProductID)
	}
	products, err := w.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Product, len(products))
	for _, product := range products {
		byID[product.ProductID] = product
	}

	lines := make([]WarehouseStockLine, 0, len(records))
	for _, record := range records {
		lines = append(lines, WarehouseStockLine{Stock: record, Product: byID[record.ProductID]})
	}
	return lines, nil
}

// AddWarehouseProduct 同一 (warehouse, product) 組合只能有一筆
func (w *WarehouseService) AddWarehouseProduct(ctx context.Context, warehouseID uint, record *model.ProductWarehouseStock) error {
	return w.store.Transaction(ctx, func(tx db.Store) error {
		if _, err := tx.GetWarehouseByID(ctx, warehouseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWarehouseNotFound
			}
			return err
		}
		if _, err := tx.GetProductByID(ctx, record.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		_, err := tx.GetStockRecord(ctx, warehouseID, record.ProductID)
		if err == nil {
			return ErrStockRecordExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record.WarehouseID = warehouseID
		record.IsActive = true
		return tx.CreateStockRecord(ctx, record)
	})
}

func (w *WarehouseService) UpdateWarehouseProduct(ctx context.Context, warehouseID, productID uint, updates map[string]interface{}) (*model.ProductWarehouseStock, error) {
	err := w.store.UpdateStockRecord(ctx, warehouseID, productID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStockRecordNotFound
		}
		return nil, err
	}
	record, err := w.store.GetStockRecord(ctx, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (w *WarehouseService) RemoveWarehouseProduct(ctx context.Context, warehouseID, productID uint) error {
	if _, err := w.store.GetStockRecord(ctx, warehouseID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStockRecordNotFound
		}
		return err
	}
	return w.store.DeleteStockRecord(ctx, warehouseID, productID)
}

func (w *WarehouseService) loadZones(ctx context.Context, warehouseID uint) ([]model.DeliveryZone, error) {
	mappings, err := w.store.GetWarehouseZones(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	zoneIDs := make([]uint, 0, len(mappings))
	for _, mapping := range mappings {
		zoneIDs = append(zoneIDs, mapping.ZoneID)
	}
	return w.store.GetZonesByIDs(ctx, zoneIDs)
}

func hierarchyLevel(t model.WarehouseType) int {
	if t == model.WarehouseTypeCentral {
		return 0
	}
	return 1
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var _ IWarehouseService = (*WarehouseService)(nil)
