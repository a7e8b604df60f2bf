package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/langchou/garagebook/internal/api/geocoder"
	"github.com/langchou/garagebook/internal/api/handlers"
	"github.com/langchou/garagebook/internal/config"
	"github.com/langchou/garagebook/internal/events"
	"github.com/langchou/garagebook/internal/metrics"
	"github.com/langchou/garagebook/internal/models"
	"github.com/langchou/garagebook/internal/repository"
	"github.com/langchou/garagebook/internal/service"
	"github.com/langchou/garagebook/pkg/ws"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
	logger.Info("Server exited")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting GarageBook", zap.String("port", cfg.ServerPort))

	// 收到退出信号时取消
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 连接数据库
	db, err := repository.New(ctx, cfg.DatabaseURL, repository.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	// 执行数据库迁移
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("Database migrated successfully")

	// 创建 Repository
	garageRepo := repository.NewGarageRepository(db)
	carRepo := repository.NewCarRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)

	// 创建 WebSocket Hub
	wsHub := ws.NewHub(logger)
	metrics.RegisterClientGauge(wsHub.ClientCount)

	// 事件发布：WebSocket + Kafka（可选）
	publishers := events.Multi{events.NewHubPublisher(wsHub)}
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		kafkaPublisher := events.NewKafkaPublisher(producer, logger)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error("Failed to close kafka producer", zap.Error(err))
			}
		}()
		publishers = append(publishers, kafkaPublisher)
		logger.Info("Kafka event export enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	// 地理编码（可选）
	var gc service.Geocoder
	if cfg.GeocoderEnabled {
		client := geocoder.NewClient(cfg.AmapAPIKey, logger)
		gc = client
		logger.Info("Geocoder enabled", zap.String("provider", client.Provider()))
	}

	// 创建服务
	garageService := service.NewGarageService(logger, garageRepo, maintenanceRepo, gc, publishers)
	carService := service.NewCarService(logger, carRepo, publishers)
	maintenanceService := service.NewMaintenanceService(logger, garageRepo, maintenanceRepo, publishers)
	jobService := service.NewJobService(logger, maintenanceRepo, publishers)

	// 新连接的客户端收到当前维修厂列表
	wsHub.SetInitDataProvider(func() interface{} {
		initCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		garages, err := garageService.List(initCtx, models.GarageFilter{})
		if err != nil {
			logger.Warn("Failed to load garages for websocket init", zap.Error(err))
			return nil
		}
		return map[string]interface{}{"garages": garages}
	})

	// 定时任务
	scheduler := service.NewScheduler(logger)
	err = scheduler.Schedule(cfg.MissedRequestsCron, "mark-missed-requests", func(ctx context.Context) error {
		_, err := jobService.MarkMissedRequests(ctx)
		return err
	})
	if err != nil {
		return err
	}

	// 创建 HTTP 处理器
	handler := handlers.NewHandler(
		logger,
		garageService,
		carService,
		maintenanceService,
		db,
		wsHub,
	)

	// 设置 Gin 模式
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestID())
	router.Use(handlers.RequestLogger(logger))
	router.Use(handlers.Metrics())
	router.Use(handlers.CORS())

	// 注册路由
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		wsHub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("Server started", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// 优雅关闭
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", zap.Error(err))
			return err
		}
		return nil
	})

	return g.Wait()
}

// initLogger 初始化日志
func initLogger(debug bool) *zap.Logger {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	logger, _ := config.Build()
	return logger
}
