package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/redis/go-redis/v9"
)

type CacheError error

var (
	ErrCacheMiss CacheError = errors.New("cache miss")
)

// IProductCacheRepository 定義 Redis 商品快取操作的介面
type IProductCacheRepository interface {
	// GetProduct 取得單一商品快取
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)

	// SetProduct 寫入單一商品快取
	SetProduct(ctx context.Context, product *model.Product) error

	// DeleteProduct 刪除單一商品快取
	DeleteProduct(ctx context.Context, productID uint) error

	// GetFeaturedProducts 取得精選商品列表快取
	GetFeaturedProducts(ctx context.Context) ([]model.Product, error)

	// SetFeaturedProducts 寫入精選商品列表快取
	SetFeaturedProducts(ctx context.Context, products []model.Product) error

	// InvalidateFeatured 清除精選商品列表快取
	InvalidateFeatured(ctx context.Context) error
}

/*	redis 專注商品讀取快取
	結構:
	product:{id}: JSON 序列化後的商品
	product:featured: JSON 序列化後的商品列表 */

type ProductCacheRepo struct {
	cache       *redis.Client
	ttl         time.Duration
	featuredTTL time.Duration
}

func NewProductCacheRepo(cache *redis.Client) *ProductCacheRepo {
	return &ProductCacheRepo{
		cache:       cache,
		ttl:         10 * time.Minute,
		featuredTTL: 5 * time.Minute,
	}
}

func generateProductKey(productID uint) string {
	return fmt.Sprintf("product:%d", productID)
}

const featuredProductsKey = "product:featured"

// 取得單一商品快取
// 錯誤:
//   - ErrCacheMiss: 快取不存在
//   - err: 其他錯誤
func (s *ProductCacheRepo) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	data, err := s.cache.Get(ctx, generateProductKey(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductCacheRepo) SetProduct(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, generateProductKey(product.ProductID), data, s.ttl).Err()
}

func (s *ProductCacheRepo) DeleteProduct(ctx context.Context, productID uint) error {
	return s.cache.Del(ctx, generateProductKey(productID)).Err()
}

// 取得精選商品列表快取
// 錯誤:
//   - ErrCacheMiss: 快取不存在
//   - err: 其他錯誤
func (s *ProductCacheRepo) GetFeaturedProducts(ctx context.Context) ([]model.Product, error) {
	data, err := s.cache.Get(ctx, featuredProductsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductCacheRepo) SetFeaturedProducts(ctx context.Context, products []model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, featuredProductsKey, data, s.featuredTTL).Err()
}

func (s *ProductCacheRepo) InvalidateFeatured(ctx context.Context) error {
	return s.cache.Del(ctx, featuredProductsKey).Err()
}

// 確保 ProductCacheRepo 實現了 IProductCacheRepository 介面
var _ IProductCacheRepository = (*ProductCacheRepo)(nil)
