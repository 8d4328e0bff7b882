package router

import (
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	m "github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/util/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, bucket *ratelimit.TokenBucket, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	if bucket != nil {
		r.Use(m.NewRateLimitMiddleware(bucket))
	}

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.GetProducts)
			r.Get("/filter", server.ProductHandler.FilterProducts)
			r.Get("/featured", server.ProductHandler.GetFeaturedProducts)
			r.Get("/quick-picks", server.ProductHandler.GetQuickPicks)
			r.Get("/categories", server.ProductHandler.GetCategories)
			r.Get("/delivery-zone", server.ProductHandler.GetProductsByDeliveryZone)
			r.Post("/check-delivery", server.ProductHandler.CheckDelivery)
			r.Get("/category/{category}", server.ProductHandler.GetProductsByCategory)
			r.Get("/subcategory/{subcategoryId}", server.ProductHandler.GetProductsBySubcategory)
			r.Get("/group/{groupId}", server.ProductHandler.GetProductsByGroup)
			r.Get("/{id}", server.ProductHandler.GetProductByID)
			r.Get("/{id}/variants", server.ProductHandler.GetVariants)
			r.Post("/{id}/variants", server.ProductHandler.CreateVariant)
			r.Put("/{id}/delivery", server.ProductHandler.UpdateProductDelivery)
		})

		r.Route("/variants", func(r chi.Router) {
			r.Put("/{id}", server.ProductHandler.UpdateVariant)
			r.Delete("/{id}", server.ProductHandler.DeleteVariant)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/add", server.CartHandler.AddToCart)
			r.Delete("/clear/{user_id}", server.CartHandler.ClearCart)
			r.Get("/{user_id}", server.CartHandler.GetCart)
			r.Put("/{cart_item_id}", server.CartHandler.UpdateCartItem)
			r.Delete("/{cart_item_id}", server.CartHandler.RemoveCartItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/checkout", server.OrderHandler.Checkout)
			r.Get("/user/{user_id}", server.OrderHandler.GetUserOrders)
		})

		r.Route("/warehouse", func(r chi.Router) {
			r.Get("/", server.WarehouseHandler.GetWarehouses)
			r.Post("/", server.WarehouseHandler.CreateWarehouse)
			r.Get("/hierarchy", server.WarehouseHandler.GetHierarchy)
			r.Get("/{id}", server.WarehouseHandler.GetWarehouseByID)
			r.Put("/{id}", server.WarehouseHandler.UpdateWarehouse)
			r.Delete("/{id}", server.WarehouseHandler.DeleteWarehouse)
			r.Get("/{id}/products", server.WarehouseHandler.GetWarehouseProducts)
			r.Post("/{id}/products", server.WarehouseHandler.AddWarehouseProduct)
			r.Put("/{id}/products/{productId}", server.WarehouseHandler.UpdateWarehouseProduct)
			r.Delete("/{id}/products/{productId}", server.WarehouseHandler.RemoveWarehouseProduct)
		})

		r.Route("/zones", func(r chi.Router) {
			r.Post("/upload", server.ZoneHandler.UploadCSV)
			r.Get("/sample-csv", server.ZoneHandler.SampleCSV)
			r.Post("/validate-pincode", server.ZoneHandler.ValidatePincode)
			r.Get("/statistics", server.ZoneHandler.GetStatistics)
			r.Get("/", server.ZoneHandler.GetZones)
			r.Post("/", server.ZoneHandler.CreateZone)
			r.Get("/{id}", server.ZoneHandler.GetZoneByID)
			r.Put("/{id}", server.ZoneHandler.UpdateZone)
			r.Delete("/{id}", server.ZoneHandler.DeleteZone)
		})

		r.Route("/cod-orders", func(r chi.Router) {
			r.Post("/create", server.CodOrderHandler.CreateCodOrder)
			r.Get("/all", server.CodOrderHandler.GetCodOrders)
			r.Put("/status/{id}", server.CodOrderHandler.UpdateCodOrderStatus)
			r.Get("/user/{user_id}", server.CodOrderHandler.GetUserCodOrders)
		})

		r.Route("/promotions", func(r chi.Router) {
			r.Get("/", server.PromotionHandler.GetPromotions)
			r.Get("/active", server.PromotionHandler.GetActivePromotions)
			r.Post("/", server.PromotionHandler.CreatePromotion)
			r.Put("/{id}", server.PromotionHandler.UpdatePromotion)
			r.Delete("/{id}", server.PromotionHandler.DeletePromotion)
		})
	})

	// 在設置完所有路由後打印路由樹
	fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		fmt.Printf("%s %s\n", method, route)
		return nil
	}))
	return r
}
