package main

import (
	"log/slog"
	"os"
	"time"

	"carshop/internal/config"
	"carshop/internal/domain/model"
	"carshop/internal/handler"
	"carshop/internal/infra/cache"
	"carshop/internal/infra/db"
	infraRepo "carshop/internal/infra/repository"
	"carshop/internal/notifier"
	"carshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

// WebSocketハブをusecase.OrderNotifierに適合させる
type hubNotifier struct {
	hub *notifier.Hub
}

func (n *hubNotifier) NotifyOrderCreated(ev usecase.OrderCreatedEvent) {
	n.hub.BroadcastJSON(ev)
}

func main() {
	//JSONログ
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	//.envはあれば読む（本番は環境変数だけ）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Brand{},
		&model.CarModel{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	brandRepo := infraRepo.NewBrandGormRepository(gormDB)
	modelRepo := infraRepo.NewCarModelGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//商品キャッシュ（REDIS_ADDRが無ければ無効）
	var productCache cache.ProductCache
	if cfg.RedisAddr != "" {
		productCache = cache.NewRedisProductCache(cfg.RedisAddr, time.Minute)
	}

	//WebSocket通知ハブ
	hub := notifier.NewHub()
	go hub.Run()

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret, 12)
	catalogUC := usecase.NewCatalogUsecase(brandRepo, modelRepo)
	productUC := usecase.NewProductUsecase(productRepo, brandRepo, modelRepo, auditRepo, productCache)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, cfg.CartSizeLimit, int64(cfg.MaxItemQuantity))
	orderUC := usecase.NewOrderUsecase(txManager, auditRepo, &hubNotifier{hub: hub}, &uuidGenerator{}, cfg.CartSizeLimit)
	statsUC := usecase.NewStatsUsecase(orderRepo)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//Handler生成とルート登録
	e := echo.New()
	e.HideBanner = true

	handler.NewAuthHandler(authUC).RegisterRoutes(e)
	handler.NewCatalogHandler(catalogUC).RegisterRoutes(e, cfg)
	handler.NewProductHandler(productUC).RegisterRoutes(e, cfg)
	handler.NewCartHandler(cartUC).RegisterRoutes(e, cfg)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e, cfg)
	handler.NewAdminOrderHandler(orderUC, statsUC).RegisterRoutes(e, cfg)
	handler.NewAuditHandler(auditUC).RegisterRoutes(e, cfg)
	handler.NewWSHandler(hub).RegisterRoutes(e, cfg)

	addr := ":" + cfg.Port
	slog.Info("server starting", "addr", addr)
	if err := e.Start(addr); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
