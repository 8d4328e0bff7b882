package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

// fakeStore 記憶體版 db.Store，service 單元測試用
// Transaction 直接執行 callback，不支援 rollback
type fakeStore struct {
	products   map[uint]*model.Product
	variants   map[uint]*model.ProductVariant
	cartItems  map[uint]*model.CartItem
	orders     map[uint]*model.Order
	sales      []model.ProductSales
	warehouses map[uint]*model.Warehouse
	whZones    []model.WarehouseZone
	stocks     map[[2]uint]*model.ProductWarehouseStock
	zones      map[uint]*model.DeliveryZone
	pincodes   []model.ZonePincode
	codOrders  map[uint]*model.CodOrder
	promotions map[uint]*model.Promotion
	nextID     uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   map[uint]*model.Product{},
		variants:   map[uint]*model.ProductVariant{},
		cartItems:  map[uint]*model.CartItem{},
		orders:     map[uint]*model.Order{},
		warehouses: map[uint]*model.Warehouse{},
		stocks:     map[[2]uint]*model.ProductWarehouseStock{},
		zones:      map[uint]*model.DeliveryZone{},
		codOrders:  map[uint]*model.CodOrder{},
		promotions: map[uint]*model.Promotion{},
		nextID:     1000,
	}
}

func (f *fakeStore) genID() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) GetDB() *gorm.DB { return nil }

func (f *fakeStore) InitMigrate() error { return nil }

func (f *fakeStore) Transaction(ctx context.Context, fn func(db.Store) error) error {
	return fn(f)
}

// ---- product ----

func (f *fakeStore) CreateProduct(ctx context.Context, product *model.Product) error {
	if product.ProductID == 0 {
		product.ProductID = f.genID()
	}
	f.products[product.ProductID] = product
	return nil
}

func (f *fakeStore) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeStore) GetActiveProductByID(ctx context.Context, id uint) (*model.Product, error) {
	product, ok := f.products[id]
	if !ok || !product.Active {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeStore) GetActiveProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, id := range f.sortedProductIDs() {
		if f.products[id].Active {
			out = append(out, *f.products[id])
		}
	}
	return out, nil
}

func (f *fakeStore) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var out []model.Product
	for _, id := range f.sortedProductIDs() {
		product := f.products[id]
		if product.Active && strings.EqualFold(product.Category, category) {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (f *fakeStore) GetProductsBySubcategory(ctx context.Context, subcategoryID uint) ([]model.Product, error) {
	var out []model.Product
	for _, id := range f.sortedProductIDs() {
		product := f.products[id]
		if product.Active && product.SubcategoryID != nil && *product.SubcategoryID == subcategoryID {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (f *fakeStore) GetProductsByGroup(ctx context.Context, groupID uint) ([]model.Product, error) {
	var out []model.Product
	for _, id := range f.sortedProductIDs() {
		product := f.products[id]
		if product.Active && product.GroupID != nil && *product.GroupID == groupID {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (f *fakeStore) GetProductsByDeliveryType(ctx context.Context, deliveryType model.DeliveryType) ([]model.Product, error) {
	var out []model.Product
	for _, id := range f.sortedProductIDs() {
		product := f.products[id]
		if product.Active && product.DeliveryType == deliveryType {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (f *fakeStore) GetCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, id := range f.sortedProductIDs() {
		product := f.products[id]
		if !product.Active || product.Category == "" {
			continue
		}
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		out = append(out, product.Category)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeStore) GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error) {
	var out []model.Product
	for _, id := range f.sortedProductIDs() {
		product := f.products[id]
		if product.Active && product.Featured && len(out) < limit {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (f *fakeStore) GetProductsFiltered(ctx context.Context, filter db.ProductFilter) ([]model.Product, int64, error) {
	var matched []model.Product
	for _, id := range f.sortedProductIDs() {
		product := f.products[id]
		if !product.Active {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(product.Category, filter.Category) {
			continue
		}
		if filter.Featured && !product.Featured {
			continue
		}
		matched = append(matched, *product)
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []model.Product{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// 刻意以 ProductID 升冪回傳，不保留輸入順序
func (f *fakeStore) GetProductsByIDs(ctx context.Context, ids []uint) ([]model.Product, error) {
	want := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []model.Product
	for _, id := range f.sortedProductIDs() {
		if _, ok := want[id]; ok && f.products[id].Active {
			out = append(out, *f.products[id])
		}
	}
	return out, nil
}

func (f *fakeStore) GetLatestActiveProducts(ctx context.Context, limit int, excludeIDs []uint) ([]model.Product, error) {
	exclude := make(map[uint]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		exclude[id] = struct{}{}
	}
	ids := f.sortedProductIDs()
	var out []model.Product
	for i := len(ids) - 1; i >= 0 && len(out) < limit; i-- {
		product := f.products[ids[i]]
		if !product.Active {
			continue
		}
		if _, ok := exclude[product.ProductID]; ok {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}

func (f *fakeStore) UpdateProduct(ctx context.Context, product *model.Product) error {
	if _, ok := f.products[product.ProductID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *product
	f.products[product.ProductID] = &copied
	return nil
}

func (f *fakeStore) UpdateProductDeliveryType(ctx context.Context, id uint, deliveryType model.DeliveryType) error {
	product, ok := f.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	product.DeliveryType = deliveryType
	return nil
}

func (f *fakeStore) DeductStock(ctx context.Context, id uint, quantity int) error {
	product, ok := f.products[id]
	if !ok || product.Stock < uint(quantity) {
		return db.ErrInsufficientStock
	}
	product.Stock -= uint(quantity)
	return nil
}

func (f *fakeStore) RestoreStock(ctx context.Context, id uint, quantity int) error {
	product, ok := f.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	product.Stock += uint(quantity)
	return nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id uint) error {
	delete(f.products, id)
	return nil
}

func (f *fakeStore) sortedProductIDs() []uint {
	ids := make([]uint, 0, len(f.products))
	for id := range f.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ---- variant ----

func (f *fakeStore) GetVariantsByProduct(ctx context.Context, productID uint) ([]model.ProductVariant, error) {
	var out []model.ProductVariant
	for _, variant := range f.variants {
		if variant.ProductID == productID {
			out = append(out, *variant)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VariantID < out[j].VariantID })
	return out, nil
}

func (f *fakeStore) GetVariantByID(ctx context.Context, id uint) (*model.ProductVariant, error) {
	variant, ok := f.variants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *variant
	return &copied, nil
}

func (f *fakeStore) CreateVariant(ctx context.Context, variant *model.ProductVariant) error {
	if variant.VariantID == 0 {
		variant.VariantID = f.genID()
	}
	copied := *variant
	f.variants[variant.VariantID] = &copied
	return nil
}

func (f *fakeStore) UpdateVariantFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	variant, ok := f.variants[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "variant_name":
			variant.VariantName = value.(string)
		case "variant_stock":
			variant.VariantStock = value.(uint)
		case "variant_discount":
			variant.VariantDiscount = value.(int)
		case "is_default":
			variant.IsDefault = value.(bool)
		case "active":
			variant.Active = value.(bool)
		}
	}
	return nil
}

func (f *fakeStore) DeleteVariant(ctx context.Context, id uint) error {
	if _, ok := f.variants[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.variants, id)
	return nil
}

// ---- cart ----

func (f *fakeStore) GetCartItemsByUser(ctx context.Context, userID uint) ([]model.CartItem, error) {
	var out []model.CartItem
	for _, item := range f.cartItems {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CartItemID < out[j].CartItemID })
	return out, nil
}

func (f *fakeStore) GetCartItemByID(ctx context.Context, id uint) (*model.CartItem, error) {
	item, ok := f.cartItems[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeStore) GetCartItemByUserAndProduct(ctx context.Context, userID, productID uint) (*model.CartItem, error) {
	for _, item := range f.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) CreateCartItem(ctx context.Context, item *model.CartItem) error {
	if item.CartItemID == 0 {
		item.CartItemID = f.genID()
	}
	copied := *item
	f.cartItems[item.CartItemID] = &copied
	return nil
}

func (f *fakeStore) UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) error {
	item, ok := f.cartItems[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeStore) DeleteCartItem(ctx context.Context, id uint) error {
	if _, ok := f.cartItems[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.cartItems, id)
	return nil
}

func (f *fakeStore) DeleteCartItemsByUser(ctx context.Context, userID uint) error {
	for id, item := range f.cartItems {
		if item.UserID == userID {
			delete(f.cartItems, id)
		}
	}
	return nil
}

// ---- order ----

func (f *fakeStore) CreateOrder(ctx context.Context, order *model.Order) error {
	if order.OrderID == 0 {
		order.OrderID = f.genID()
	}
	copied := *order
	f.orders[order.OrderID] = &copied
	return nil
}

func (f *fakeStore) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeStore) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var out []model.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (f *fakeStore) GetProductSales(ctx context.Context) ([]model.ProductSales, error) {
	return f.sales, nil
}

// ---- warehouse ----

func (f *fakeStore) CreateWarehouse(ctx context.Context, warehouse *model.Warehouse) error {
	if warehouse.WarehouseID == 0 {
		warehouse.WarehouseID = f.genID()
	}
	copied := *warehouse
	f.warehouses[warehouse.WarehouseID] = &copied
	return nil
}

func (f *fakeStore) GetWarehouseByID(ctx context.Context, id uint) (*model.Warehouse, error) {
	warehouse, ok := f.warehouses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *warehouse
	return &copied, nil
}

func (f *fakeStore) GetWarehouses(ctx context.Context, filter db.WarehouseFilter) ([]model.Warehouse, error) {
	var out []model.Warehouse
	for _, warehouse := range f.warehouses {
		if filter.Type != "" && string(warehouse.Type) != filter.Type {
			continue
		}
		if filter.IsActive != nil && warehouse.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *warehouse)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}

func (f *fakeStore) GetWarehousesByHierarchy(ctx context.Context) ([]model.Warehouse, error) {
	out, _ := f.GetWarehouses(ctx, db.WarehouseFilter{})
	sort.SliceStable(out, func(i, j int) bool { return out[i].HierarchyLevel < out[j].HierarchyLevel })
	return out, nil
}

func (f *fakeStore) UpdateWarehouse(ctx context.Context, warehouse *model.Warehouse) error {
	if _, ok := f.warehouses[warehouse.WarehouseID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *warehouse
	f.warehouses[warehouse.WarehouseID] = &copied
	return nil
}

func (f *fakeStore) DeleteWarehouse(ctx context.Context, id uint) error {
	if _, ok := f.warehouses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.warehouses, id)
	return nil
}

func (f *fakeStore) GetWarehouseZones(ctx context.Context, warehouseID uint) ([]model.WarehouseZone, error) {
	var out []model.WarehouseZone
	for _, mapping := range f.whZones {
		if mapping.WarehouseID == warehouseID {
			out = append(out, mapping)
		}
	}
	return out, nil
}

func (f *fakeStore) AddWarehouseZones(ctx context.Context, mappings []model.WarehouseZone) error {
	f.whZones = append(f.whZones, mappings...)
	return nil
}

func (f *fakeStore) RemoveWarehouseZones(ctx context.Context, warehouseID uint, zoneIDs []uint) error {
	remove := make(map[uint]struct{}, len(zoneIDs))
	for _, id := range zoneIDs {
		remove[id] = struct{}{}
	}
	kept := f.whZones[:0]
	for _, mapping := range f.whZones {
		if mapping.WarehouseID == warehouseID {
			if _, ok := remove[mapping.ZoneID]; ok {
				continue
			}
		}
		kept = append(kept, mapping)
	}
	f.whZones = kept
	return nil
}

// ---- stock ----

func (f *fakeStore) GetWarehouseStock(ctx context.Context, warehouseID uint) ([]model.ProductWarehouseStock, error) {
	var out []model.ProductWarehouseStock
	for key, record := range f.stocks {
		if key[0] == warehouseID {
			out = append(out, *record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (f *fakeStore) GetStockRecord(ctx context.Context, warehouseID, productID uint) (*model.ProductWarehouseStock, error) {
	record, ok := f.stocks[[2]uint{warehouseID, productID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeStore) CountStockRecords(ctx context.Context, warehouseID uint) (int64, error) {
	var count int64
	for key := range f.stocks {
		if key[0] == warehouseID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateStockRecord(ctx context.Context, record *model.ProductWarehouseStock) error {
	if record.StockID == 0 {
		record.StockID = f.genID()
	}
	copied := *record
	f.stocks[[2]uint{record.WarehouseID, record.ProductID}] = &copied
	return nil
}

func (f *fakeStore) UpdateStockRecord(ctx context.Context, warehouseID, productID uint, updates map[string]interface{}) error {
	record, ok := f.stocks[[2]uint{warehouseID, productID}]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "stock_quantity":
			record.StockQuantity = value.(int)
			record.LastRestockedAt = time.Now()
		case "reserved_quantity":
			record.ReservedQuantity = value.(int)
		case "minimum_threshold":
			record.MinimumThreshold = value.(int)
		case "is_active":
			record.IsActive = value.(bool)
		}
	}
	return nil
}

func (f *fakeStore) DeleteStockRecord(ctx context.Context, warehouseID, productID uint) error {
	key := [2]uint{warehouseID, productID}
	if _, ok := f.stocks[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.stocks, key)
	return nil
}

// ---- zone ----

func (f *fakeStore) GetZones(ctx context.Context) ([]model.DeliveryZone, error) {
	var out []model.DeliveryZone
	for _, zone := range f.zones {
		out = append(out, *f.withPincodes(zone))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ZoneID < out[j].ZoneID })
	return out, nil
}

func (f *fakeStore) GetZoneByID(ctx context.Context, id uint) (*model.DeliveryZone, error) {
	zone, ok := f.zones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.withPincodes(zone), nil
}

func (f *fakeStore) GetZoneByName(ctx context.Context, name string) (*model.DeliveryZone, error) {
	for _, zone := range f.zones {
		if zone.Name == name {
			return f.withPincodes(zone), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) GetZonesByIDs(ctx context.Context, ids []uint) ([]model.DeliveryZone, error) {
	var out []model.DeliveryZone
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if zone, ok := f.zones[id]; ok {
			out = append(out, *zone)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateZone(ctx context.Context, zone *model.DeliveryZone) error {
	if zone.ZoneID == 0 {
		zone.ZoneID = f.genID()
	}
	copied := *zone
	f.zones[zone.ZoneID] = &copied
	return nil
}

func (f *fakeStore) UpdateZone(ctx context.Context, zone *model.DeliveryZone) error {
	if _, ok := f.zones[zone.ZoneID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *zone
	f.zones[zone.ZoneID] = &copied
	return nil
}

func (f *fakeStore) DeleteZone(ctx context.Context, id uint) error {
	if _, ok := f.zones[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.zones, id)
	return nil
}

func (f *fakeStore) DeletePincodesByZone(ctx context.Context, zoneID uint) error {
	kept := f.pincodes[:0]
	for _, pincode := range f.pincodes {
		if pincode.ZoneID != zoneID {
			kept = append(kept, pincode)
		}
	}
	f.pincodes = kept
	return nil
}

func (f *fakeStore) AddZonePincodes(ctx context.Context, pincodes []model.ZonePincode) error {
	for _, pincode := range pincodes {
		if pincode.PincodeID == 0 {
			pincode.PincodeID = f.genID()
		}
		f.pincodes = append(f.pincodes, pincode)
	}
	return nil
}

func (f *fakeStore) GetPincode(ctx context.Context, pincode string) (*model.ZonePincode, error) {
	for _, record := range f.pincodes {
		if record.Pincode == pincode {
			copied := record
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) CountZones(ctx context.Context) (int64, error) {
	return int64(len(f.zones)), nil
}

func (f *fakeStore) CountPincodes(ctx context.Context) (int64, error) {
	return int64(len(f.pincodes)), nil
}

func (f *fakeStore) GetPincodeCountsByZone(ctx context.Context) ([]db.ZonePincodeCount, error) {
	counts := make(map[uint]int64)
	for _, pincode := range f.pincodes {
		counts[pincode.ZoneID]++
	}
	var out []db.ZonePincodeCount
	for id, zone := range f.zones {
		out = append(out, db.ZonePincodeCount{ZoneID: id, ZoneName: zone.Name, Count: counts[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ZoneID < out[j].ZoneID })
	return out, nil
}

func (f *fakeStore) withPincodes(zone *model.DeliveryZone) *model.DeliveryZone {
	copied := *zone
	copied.Pincodes = nil
	for _, pincode := range f.pincodes {
		if pincode.ZoneID == zone.ZoneID {
			copied.Pincodes = append(copied.Pincodes, pincode)
		}
	}
	return &copied
}

// ---- cod order ----

func (f *fakeStore) CreateCodOrder(ctx context.Context, order *model.CodOrder) error {
	if order.CodOrderID == 0 {
		order.CodOrderID = f.genID()
	}
	copied := *order
	f.codOrders[order.CodOrderID] = &copied
	return nil
}

func (f *fakeStore) GetCodOrderByID(ctx context.Context, id uint) (*model.CodOrder, error) {
	order, ok := f.codOrders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeStore) GetCodOrdersPaginated(ctx context.Context, page, limit int) ([]model.CodOrder, int64, error) {
	var all []model.CodOrder
	for _, order := range f.codOrders {
		all = append(all, *order)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CodOrderID < all[j].CodOrderID })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []model.CodOrder{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeStore) GetCodOrdersByUser(ctx context.Context, userID uint) ([]model.CodOrder, error) {
	var out []model.CodOrder
	for _, order := range f.codOrders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodOrderID < out[j].CodOrderID })
	return out, nil
}

func (f *fakeStore) UpdateCodOrderStatus(ctx context.Context, id uint, status model.CodOrderStatus) error {
	order, ok := f.codOrders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

// ---- promotion ----

func (f *fakeStore) GetPromotions(ctx context.Context) ([]model.Promotion, error) {
	var out []model.Promotion
	for _, promotion := range f.promotions {
		out = append(out, *promotion)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PromotionID < out[j].PromotionID })
	return out, nil
}

func (f *fakeStore) GetPromotionByID(ctx context.Context, id uint) (*model.Promotion, error) {
	promotion, ok := f.promotions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *promotion
	return &copied, nil
}

func (f *fakeStore) GetActivePromotions(ctx context.Context, now time.Time) ([]model.Promotion, error) {
	var out []model.Promotion
	for _, promotion := range f.promotions {
		if promotion.Active && !now.Before(promotion.StartsAt) && now.Before(promotion.EndsAt) {
			out = append(out, *promotion)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PromotionID < out[j].PromotionID })
	return out, nil
}

func (f *fakeStore) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	if promotion.PromotionID == 0 {
		promotion.PromotionID = f.genID()
	}
	copied := *promotion
	f.promotions[promotion.PromotionID] = &copied
	return nil
}

func (f *fakeStore) UpdatePromotion(ctx context.Context, promotion *model.Promotion) error {
	if _, ok := f.promotions[promotion.PromotionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *promotion
	f.promotions[promotion.PromotionID] = &copied
	return nil
}

func (f *fakeStore) DeletePromotion(ctx context.Context, id uint) error {
	if _, ok := f.promotions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.promotions, id)
	return nil
}

var _ db.Store = (*fakeStore)(nil)
