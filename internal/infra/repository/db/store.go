package db

import (
	"context"

	"gorm.io/gorm"
)

// Store 統一的資料庫介面
// Transaction 內的 Store 共用同一個交易連線
type Store interface {
	GetDB() *gorm.DB
	InitMigrate() error
	Transaction(ctx context.Context, fn func(Store) error) error

	// Product 相關操作
	IProductRepository

	// ProductVariant 相關操作
	IVariantRepository

	// Cart 相關操作
	ICartRepository

	// Order 相關操作
	IOrderRepository

	// Warehouse 相關操作
	IWarehouseRepository

	// ProductWarehouseStock 相關操作
	IStockRepository

	// DeliveryZone 相關操作
	IZoneRepository

	// CodOrder 相關操作
	ICodOrderRepository

	// Promotion 相關操作
	IPromotionRepository
}

// SQLStore 統一資料庫實現
type SQLStore struct {
	db    *gorm.DB
	dbDao *DbDao
	*ProductRepo
	*VariantRepo
	*CartRepo
	*OrderRepo
	*WarehouseRepo
	*StockRepo
	*ZoneRepo
	*CodOrderRepo
	*PromotionRepo
}

// NewSQLStore 創建新的統一資料庫實例
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{
		db:            db,
		dbDao:         NewDbDao(db),
		ProductRepo:   NewProductRepo(db),
		VariantRepo:   NewVariantRepo(db),
		CartRepo:      NewCartRepo(db),
		OrderRepo:     NewOrderRepo(db),
		WarehouseRepo: NewWarehouseRepo(db),
		StockRepo:     NewStockRepo(db),
		ZoneRepo:      NewZoneRepo(db),
		CodOrderRepo:  NewCodOrderRepo(db),
		PromotionRepo: NewPromotionRepo(db),
	}
}

// GetDB 獲取資料庫連接
func (s *SQLStore) GetDB() *gorm.DB {
	return s.db
}

func (s *SQLStore) InitMigrate() error {
	return s.dbDao.InitMigrate()
}

// Transaction 在單一交易內執行 fn
// fn 回傳 error 時整筆 rollback
func (s *SQLStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewSQLStore(tx))
	})
}

var _ Store = (*SQLStore)(nil)
