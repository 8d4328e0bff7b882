package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"gorm.io/gorm"
)

// ErrInsufficientStock 條件式扣庫存沒有命中任何 row 時回傳
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductFilter 商品分頁查詢條件
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Featured bool
	Popular  bool
	Search   string
	Page     int
	Limit    int
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	GetActiveProductByID(ctx context.Context, id uint) (*model.Product, error)
	GetActiveProducts(ctx context.Context) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	GetProductsBySubcategory(ctx context.Context, subcategoryID uint) ([]model.Product, error)
	GetProductsByGroup(ctx context.Context, groupID uint) ([]model.Product, error)
	GetProductsByDeliveryType(ctx context.Context, deliveryType model.DeliveryType) ([]model.Product, error)
	GetCategories(ctx context.Context) ([]string, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error)
	GetProductsFiltered(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	GetProductsByIDs(ctx context.Context, ids []uint) ([]model.Product, error)
	GetLatestActiveProducts(ctx context.Context, limit int, excludeIDs []uint) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	UpdateProductDeliveryType(ctx context.Context, id uint, deliveryType model.DeliveryType) error
	DeductStock(ctx context.Context, id uint, quantity int) error
	RestoreStock(ctx context.Context, id uint, quantity int) error
	DeleteProduct(ctx context.Context, id uint) error
}

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create - 創建商品
func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// Read - 根據ID查詢商品
func (s *ProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Read - 只取 active 商品
func (s *ProductRepo) GetActiveProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Where("product_id = ? AND active = ?", id, true).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetActiveProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("active = ?", true).Find(&products).Error
	return products, err
}

func (s *ProductRepo) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("active = ? AND category = ?", true, category).Find(&products).Error
	return products, err
}

func (s *ProductRepo) GetProductsBySubcategory(ctx context.Context, subcategoryID uint) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("active = ? AND subcategory_id = ?", true, subcategoryID).Find(&products).Error
	return products, err
}

func (s *ProductRepo) GetProductsByGroup(ctx context.Context, groupID uint) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("active = ? AND group_id = ?", true, groupID).Find(&products).Error
	return products, err
}

func (s *ProductRepo) GetProductsByDeliveryType(ctx context.Context, deliveryType model.DeliveryType) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("active = ? AND delivery_type = ?", true, deliveryType).Find(&products).Error
	return products, err
}

// Read - active 商品去重後的分類清單
func (s *ProductRepo) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("active = ? AND category <> ''", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (s *ProductRepo) GetFeaturedProducts(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("active = ? AND featured = ?", true, true).Limit(limit).Find(&products).Error
	return products, err
}

// 分頁查詢商品
func (s *ProductRepo) GetProductsFiltered(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Product{}).Where("active = ?", true)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Featured {
		query = query.Where("featured = ?", true)
	}
	if filter.Popular {
		query = query.Where("popular = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Offset(offset).Limit(filter.Limit).Find(&products).Error
	return products, total, err
}

func (s *ProductRepo) GetProductsByIDs(ctx context.Context, ids []uint) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := s.db.WithContext(ctx).Where("product_id IN ? AND active = ?", ids, true).Find(&products).Error
	return products, err
}

// Read - 最新上架的 active 商品，排除指定 id
func (s *ProductRepo) GetLatestActiveProducts(ctx context.Context, limit int, excludeIDs []uint) ([]model.Product, error) {
	var products []model.Product
	query := s.db.WithContext(ctx).Where("active = ?", true).Order("created_at DESC").Limit(limit)
	if len(excludeIDs) > 0 {
		query = query.Where("product_id NOT IN ?", excludeIDs)
	}
	err := query.Find(&products).Error
	return products, err
}

// Update - 更新商品
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// Update - 更新商品的配送方式
func (s *ProductRepo) UpdateProductDeliveryType(ctx context.Context, id uint, deliveryType model.DeliveryType) error {
	result := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", id).
		Update("delivery_type", deliveryType)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Update - 條件式扣庫存，stock 不足時不會更新任何 row
// UPDATE products SET stock = stock - ? WHERE product_id = ? AND stock >= ?
func (s *ProductRepo) DeductStock(ctx context.Context, id uint, quantity int) error {
	result := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// Update - 還原庫存
func (s *ProductRepo) RestoreStock(ctx context.Context, id uint, quantity int) error {
	result := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete - 軟刪除商品
func (s *ProductRepo) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}
