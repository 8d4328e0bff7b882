package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/api/handler"
	"github.com/RoyceAzure/lab/storefront/internal/config"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/lab/storefront/internal/util/ratelimit"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf               *config.Config
	Logger           zerolog.Logger
	DbConn           *gorm.DB
	Store            db.Store
	RedisClient      *redis.Client
	ProductCache     redis_repo.IProductCacheRepository
	OrderProducer    producer.IOrderEventProducer
	RateLimitBucket  *ratelimit.TokenBucket
	ProductService   service.IProductService
	CartService      service.ICartService
	OrderService     service.IOrderService
	WarehouseService service.IWarehouseService
	ZoneService      service.IZoneService
	CodOrderService  service.ICodOrderService
	PromotionService service.IPromotionService
	Server           *api.Server
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	app.setUpLogger()
	err := app.setUpDbConn()
	if err != nil {
		return err
	}
	err = app.setUpStore()
	if err != nil {
		return err
	}
	app.setUpRedis()
	app.setUpProducer()
	app.setUpRateLimit()
	app.setUpServices()
	app.setUpServer()
	return nil
}

func (app *ApplicationContext) setUpLogger() {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("module", app.Cf.ModulerName).
		Logger()
	app.Logger = logger
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpStore() error {
	log.Printf("Start setup store")
	store := db.NewSQLStore(app.DbConn)
	err := store.InitMigrate()
	if err != nil {
		return err
	}
	app.Store = store
	log.Printf("Finish setup store")
	return nil
}

// redis 為選配，未設定時直接跳過，product cache 會是 nil
func (app *ApplicationContext) setUpRedis() {
	if app.Cf.RedisAddr == "" {
		log.Printf("Redis not configured, skipping product cache")
		return
	}
	log.Printf("Start setup redis")
	client := redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPas,
	})
	app.RedisClient = client
	app.ProductCache = redis_repo.NewProductCacheRepo(client)
	log.Printf("Finish setup redis")
}

// kafka 為選配，未設定時訂單事件不發送
func (app *ApplicationContext) setUpProducer() {
	if app.Cf.KafkaBrokers == "" {
		log.Printf("Kafka not configured, skipping order event producer")
		return
	}
	log.Printf("Start setup kafka producer")
	brokers := strings.Split(app.Cf.KafkaBrokers, ",")
	app.OrderProducer = producer.NewOrderEventProducer(brokers, app.Cf.KafkaTopic)
	log.Printf("Finish setup kafka producer")
}

func (app *ApplicationContext) setUpRateLimit() {
	cfg := ratelimit.DefaultConfig()
	if app.Cf.RateLimitCap > 0 {
		cfg.Capacity = app.Cf.RateLimitCap
	}
	if app.Cf.RateLimitQPS > 0 {
		cfg.RatePS = float64(app.Cf.RateLimitQPS)
	}
	app.RateLimitBucket = ratelimit.NewTokenBucket(&cfg)
}

func (app *ApplicationContext) setUpServices() {
	log.Printf("Start setup services")
	app.ProductService = service.NewProductService(app.Store, app.ProductCache)
	app.CartService = service.NewCartService(app.Store)
	app.OrderService = service.NewOrderService(app.Store, app.OrderProducer)
	app.WarehouseService = service.NewWarehouseService(app.Store)
	app.ZoneService = service.NewZoneService(app.Store)
	app.CodOrderService = service.NewCodOrderService(app.Store, app.OrderProducer)
	app.PromotionService = service.NewPromotionService(app.Store)
	log.Printf("Finish setup services")
}

func (app *ApplicationContext) setUpServer() {
	log.Printf("Start setup server")
	app.Server = api.NewServer(
		handler.NewProductHandler(app.ProductService),
		handler.NewCartHandler(app.CartService),
		handler.NewOrderHandler(app.OrderService),
		handler.NewWarehouseHandler(app.WarehouseService),
		handler.NewZoneHandler(app.ZoneService),
		handler.NewCodOrderHandler(app.CodOrderService),
		handler.NewPromotionHandler(app.PromotionService),
	)
	log.Printf("Finish setup server")
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.RateLimitBucket != nil {
			app.RateLimitBucket.Stop()
		}

		if app.OrderProducer != nil {
			log.Printf("Closing kafka producer...")
			if err := app.OrderProducer.Close(); err != nil {
				//有錯誤不結束流程
				log.Printf("kafka producer shutdown error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis client...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis shutdown error: %v", err)
			}
		}

		// 關閉 DB
		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			sqlDB, err := app.DbConn.DB()
			if err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
