package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrVariantNotFound     = errors.New("variant not found")
	ErrInvalidDeliveryType = errors.New("delivery_type must be nationwide or zonal")
)

const featuredProductsLimit = 20

// VariantUpdate 變體可更新欄位，nil 表示不更動
// 商品本體的價格欄位不在此列，變體更新不可影響商品定價
type VariantUpdate struct {
	VariantName     *string
	VariantPrice    *decimal.Decimal
	VariantOldPrice *decimal.Decimal
	VariantDiscount *int
	VariantStock    *uint
	VariantWeight   *string
	VariantUnit     *string
	ShippingAmount  *decimal.Decimal
	IsDefault       *bool
	Active          *bool
}

type IProductService interface {
	GetProducts(ctx context.Context) ([]model.Product, error)
	GetProductsFiltered(ctx context.Context, filter *db.ProductFilter) ([]model.Product, int64, error)
	GetFeaturedProducts(ctx context.Context) ([]model.Product, error)
	GetQuickPicks(ctx context.Context, limit int) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	GetProductsBySubcategory(ctx context.Context, subcategoryID uint) ([]model.Product, error)
	GetProductsByGroup(ctx context.Context, groupID uint) ([]model.Product, error)
	GetCategories(ctx context.Context) ([]string, error)
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	UpdateProductDelivery(ctx context.Context, id uint, deliveryType string) (*model.Product, error)
	CheckDelivery(ctx context.Context, pincode string, productIDs []uint) (*DeliveryCheck, error)
	GetProductsByDeliveryZone(ctx context.Context, pincode string) ([]model.Product, error)
	GetVariants(ctx context.Context, productID uint) ([]model.ProductVariant, error)
	CreateVariant(ctx context.Context, variant *model.ProductVariant) error
	UpdateVariant(ctx context.Context, id uint, update VariantUpdate) (*model.ProductVariant, error)
	DeleteVariant(ctx context.Context, id uint) error
}

type ProductService struct {
	store db.Store
	cache redis_repo.IProductCacheRepository
}

// cache 可為 nil，此時所有讀取直接走 db
func NewProductService(store db.Store, cache redis_repo.IProductCacheRepository) *ProductService {
	return &ProductService{store: store, cache: cache}
}

func (p *ProductService) GetProducts(ctx context.Context) ([]model.Product, error) {
	return p.store.GetActiveProducts(ctx)
}

// GetProductsFiltered 收斂 page/limit 後回寫 filter，呼叫端拿到實際生效的分頁值
func (p *ProductService) GetProductsFiltered(ctx context.Context, filter *db.ProductFilter) ([]model.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}
	return p.store.GetProductsFiltered(ctx, *filter)
}

func (p *ProductService) GetFeaturedProducts(ctx context.Context) ([]model.Product, error) {
	if p.cache != nil {
		products, err := p.cache.GetFeaturedProducts(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, redis_repo.ErrCacheMiss) {
			log.Warn().Err(err).Msg("featured products cache read failed")
		}
	}

	products, err := p.store.GetFeaturedProducts(ctx, featuredProductsLimit)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.SetFeaturedProducts(ctx, products); err != nil {
			log.Warn().Err(err).Msg("featured products cache write failed")
		}
	}
	return products, nil
}

// GetQuickPicks 依歷史銷量排序取前 N 個商品，不足時用最新上架商品補滿
// 銷量區段維持銷量排序，輸出不重複
func (p *ProductService) GetQuickPicks(ctx context.Context, limit int) ([]model.Product, error) {
	if limit < 1 {
		limit = 10
	}

	sales, err := p.store.GetProductSales(ctx)
	if err != nil {
		return nil, err
	}

	rankedIDs := make([]uint, 0, limit)
	for _, s := range sales {
		if len(rankedIDs) == limit {
			break
		}
		rankedIDs = append(rankedIDs, s.ProductID)
	}

	ranked, err := p.store.GetProductsByIDs(ctx, rankedIDs)
	if err != nil {
		return nil, err
	}

	// GetProductsByIDs 不保證順序，按銷量排名重新排序
	byID := make(map[uint]model.Product, len(ranked))
	for _, product := range ranked {
		byID[product.ProductID] = product
	}

	picks := make([]model.Product, 0, limit)
	pickedIDs := make([]uint, 0, limit)
	for _, id := range rankedIDs {
		if product, ok := byID[id]; ok {
			picks = append(picks, product)
			pickedIDs = append(pickedIDs, id)
		}
	}

	if len(picks) < limit {
		backfill, err := p.store.GetLatestActiveProducts(ctx, limit-len(picks), pickedIDs)
		if err != nil {
			return nil, err
		}
		picks = append(picks, backfill...)
	}

	return picks, nil
}

func (p *ProductService) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return p.store.GetProductsByCategory(ctx, category)
}

func (p *ProductService) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	if p.cache != nil {
		product, err := p.cache.GetProduct(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, redis_repo.ErrCacheMiss) {
			log.Warn().Err(err).Uint("product_id", id).Msg("product cache read failed")
		}
	}

	product, err := p.store.GetActiveProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	variants, err := p.store.GetVariantsByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Variants = variants

	if p.cache != nil {
		if err := p.cache.SetProduct(ctx, product); err != nil {
			log.Warn().Err(err).Uint("product_id", id).Msg("product cache write failed")
		}
	}
	return product, nil
}

func (p *ProductService) GetVariants(ctx context.Context, productID uint) ([]model.ProductVariant, error) {
	if _, err := p.store.GetActiveProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p.store.GetVariantsByProduct(ctx, productID)
}

func (p *ProductService) CreateVariant(ctx context.Context, variant *model.ProductVariant) error {
	if _, err := p.store.GetActiveProductByID(ctx, variant.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if err := p.store.CreateVariant(ctx, variant); err != nil {
		return err
	}
	p.invalidateProduct(ctx, variant.ProductID)
	return nil
}

// UpdateVariant 只寫入白名單欄位，payload 夾帶的其他欄位一律忽略
func (p *ProductService) UpdateVariant(ctx context.Context, id uint, update VariantUpdate) (*model.ProductVariant, error) {
	updates := map[string]interface{}{}
	if update.VariantName != nil {
		updates["variant_name"] = *update.VariantName
	}
	if update.VariantPrice != nil {
		updates["variant_price"] = *update.VariantPrice
	}
	if update.VariantOldPrice != nil {
		updates["variant_old_price"] = *update.VariantOldPrice
	}
	if update.VariantDiscount != nil {
		updates["variant_discount"] = *update.VariantDiscount
	}
	if update.VariantStock != nil {
		updates["variant_stock"] = *update.VariantStock
	}
	if update.VariantWeight != nil {
		updates["variant_weight"] = *update.VariantWeight
	}
	if update.VariantUnit != nil {
		updates["variant_unit"] = *update.VariantUnit
	}
	if update.ShippingAmount != nil {
		updates["shipping_amount"] = *update.ShippingAmount
	}
	if update.IsDefault != nil {
		updates["is_default"] = *update.IsDefault
	}
	if update.Active != nil {
		updates["active"] = *update.Active
	}

	if len(updates) > 0 {
		if err := p.store.UpdateVariantFields(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrVariantNotFound
			}
			return nil, err
		}
	}

	variant, err := p.store.GetVariantByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	p.invalidateProduct(ctx, variant.ProductID)
	return variant, nil
}

func (p *ProductService) DeleteVariant(ctx context.Context, id uint) error {
	variant, err := p.store.GetVariantByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}
	if err := p.store.DeleteVariant(ctx, id); err != nil {
		return err
	}
	p.invalidateProduct(ctx, variant.ProductID)
	return nil
}

func (p *ProductService) GetProductsBySubcategory(ctx context.Context, subcategoryID uint) ([]model.Product, error) {
	return p.store.GetProductsBySubcategory(ctx, subcategoryID)
}

func (p *ProductService) GetProductsByGroup(ctx context.Context, groupID uint) ([]model.Product, error) {
	return p.store.GetProductsByGroup(ctx, groupID)
}

func (p *ProductService) GetCategories(ctx context.Context) ([]string, error) {
	return p.store.GetCategories(ctx)
}

// ProductDeliverability 單一商品對指定 pincode 的可配送結果
type ProductDeliverability struct {
	ProductID    uint               `json:"product_id"`
	Deliverable  bool               `json:"deliverable"`
	DeliveryType model.DeliveryType `json:"delivery_type,omitempty"`
}

// DeliveryCheck check-delivery 的整體結果
type DeliveryCheck struct {
	Pincode     string                  `json:"pincode"`
	Serviceable bool                    `json:"serviceable"`
	ZoneName    string                  `json:"zone_name,omitempty"`
	Products    []ProductDeliverability `json:"products"`
}

func (p *ProductService) UpdateProductDelivery(ctx context.Context, id uint, deliveryType string) (*model.Product, error) {
	dt := model.DeliveryType(deliveryType)
	if dt != model.DeliveryNationwide && dt != model.DeliveryZonal {
		return nil, ErrInvalidDeliveryType
	}

	if err := p.store.UpdateProductDeliveryType(ctx, id, dt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	p.invalidateProduct(ctx, id)

	product, err := p.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// CheckDelivery 逐商品判定能否配送到指定 pincode
// nationwide 商品恆可配送，zonal 商品看 pincode 是否在可服務 zone 內
// 查無或停售的商品回 deliverable=false
func (p *ProductService) CheckDelivery(ctx context.Context, pincode string, productIDs []uint) (*DeliveryCheck, error) {
	lookup, err := lookupPincode(ctx, p.store, pincode)
	if err != nil {
		return nil, err
	}

	products, err := p.store.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Product, len(products))
	for _, product := range products {
		byID[product.ProductID] = product
	}

	check := &DeliveryCheck{
		Pincode:     pincode,
		Serviceable: lookup.Serviceable,
		ZoneName:    lookup.ZoneName,
		Products:    make([]ProductDeliverability, 0, len(productIDs)),
	}
	for _, id := range productIDs {
		product, ok := byID[id]
		if !ok {
			check.Products = append(check.Products, ProductDeliverability{ProductID: id})
			continue
		}
		deliverable := product.DeliveryType == model.DeliveryNationwide || lookup.Serviceable
		check.Products = append(check.Products, ProductDeliverability{
			ProductID:    id,
			Deliverable:  deliverable,
			DeliveryType: product.DeliveryType,
		})
	}
	return check, nil
}

// GetProductsByDeliveryZone 可配送到指定 pincode 的商品
// pincode 可服務時回所有 active 商品，否則只回 nationwide 商品
func (p *ProductService) GetProductsByDeliveryZone(ctx context.Context, pincode string) ([]model.Product, error) {
	lookup, err := lookupPincode(ctx, p.store, pincode)
	if err != nil {
		return nil, err
	}
	if lookup.Serviceable {
		return p.store.GetActiveProducts(ctx)
	}
	return p.store.GetProductsByDeliveryType(ctx, model.DeliveryNationwide)
}

func (p *ProductService) invalidateProduct(ctx context.Context, productID uint) {
	if p.cache == nil {
		return
	}
	if err := p.cache.DeleteProduct(ctx, productID); err != nil {
		log.Warn().Err(err).Uint("product_id", productID).Msg("product cache invalidate failed")
	}
}

var _ IProductService = (*ProductService)(nil)
