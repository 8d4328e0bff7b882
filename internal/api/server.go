package api

import "github.com/RoyceAzure/lab/storefront/internal/api/handler"

type Server struct {
	ProductHandler   *handler.ProductHandler
	CartHandler      *handler.CartHandler
	OrderHandler     *handler.OrderHandler
	WarehouseHandler *handler.WarehouseHandler
	ZoneHandler      *handler.ZoneHandler
	CodOrderHandler  *handler.CodOrderHandler
	PromotionHandler *handler.PromotionHandler
}

func NewServer(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	warehouseHandler *handler.WarehouseHandler,
	zoneHandler *handler.ZoneHandler,
	codOrderHandler *handler.CodOrderHandler,
	promotionHandler *handler.PromotionHandler,
) *Server {
	return &Server{
		ProductHandler:   productHandler,
		CartHandler:      cartHandler,
		OrderHandler:     orderHandler,
		WarehouseHandler: warehouseHandler,
		ZoneHandler:      zoneHandler,
		CodOrderHandler:  codOrderHandler,
		PromotionHandler: promotionHandler,
	}
}
