package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pscosmeticos/internal/app/catalog/config"
	"pscosmeticos/internal/app/catalog/entity"
	"pscosmeticos/internal/app/catalog/handler"
	"pscosmeticos/internal/app/catalog/processor"
	"pscosmeticos/internal/app/catalog/repository"
	"pscosmeticos/internal/app/catalog/service"
	"pscosmeticos/internal/app/catalog/util"
	"pscosmeticos/pkg/logger"
)

func main() {
	// .env нужен только для локальной разработки, в контейнере его нет
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("catalog", cfg.LogLevel)

	zone, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		logger.Fatal().Err(err).Str("zone", cfg.TimeZone).Msg("Failed to load time zone")
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if err := db.AutoMigrate(
		&entity.Category{},
		&entity.SubCategory{},
		&entity.Tag{},
		&entity.Ingredient{},
		&entity.Product{},
		&entity.User{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")

	categoryRepo := repository.NewCategoryRepository(db)
	subCategoryRepo := repository.NewSubCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	userRepo := repository.NewUserRepository(db)

	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)

	imageService := service.NewImageService(cfg.Storage, cfg.API)
	normalizer := service.NewNormalizerService(tagRepo, ingredientRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, subCategoryRepo, imageService, redisClient)
	subCategoryService := service.NewSubCategoryService(subCategoryRepo, categoryRepo)
	productService := service.NewProductService(
		productRepo,
		categoryRepo,
		subCategoryRepo,
		normalizer,
		imageService,
		kafkaProducer,
		zone,
	)

	if cfg.Admin.Password != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
			logger.Fatal().Err(err).Msg("Failed to ensure admin user")
		}
	} else {
		logger.Warn().Msg("ADMIN_PASSWORD is empty, admin user not created")
	}

	scheduler := processor.NewCronScheduler(categoryRepo)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	if err := scheduler.Start(schedulerCtx, cfg.CounterSyncSchedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start cron scheduler")
	}
	defer scheduler.Stop()

	authMiddleware := handler.NewAuthMiddleware(jwtManager)
	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	subCategoryHandler := handler.NewSubCategoryHandler(subCategoryService)
	productHandler := handler.NewProductHandler(productService)
	imageHandler := handler.NewImageHandler(imageService)

	router := handler.SetupRoutes(
		cfg.API.Version,
		authHandler,
		categoryHandler,
		subCategoryHandler,
		productHandler,
		imageHandler,
		authMiddleware,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting PS Cosmeticos catalog")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down catalog...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Catalog stopped gracefully")
}

// connectDB подключается к PostgreSQL через драйвер pgx с повторами.
// Пул настраивается на стороне database/sql, gorm получает готовое
// соединение.
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var lastErr error

	for i := 0; i < 10; i++ {
		sqlDB, err := sql.Open("pgx", cfg.DSN())
		if err == nil {
			err = sqlDB.Ping()
		}
		if err == nil {
			sqlDB.SetMaxOpenConns(25)
			sqlDB.SetMaxIdleConns(5)
			sqlDB.SetConnMaxLifetime(5 * time.Minute)
			sqlDB.SetConnMaxIdleTime(1 * time.Minute)

			db, gormErr := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
				Logger: gormlogger.Default.LogMode(gormlogger.Warn),
			})
			if gormErr == nil {
				return db, nil
			}
			err = gormErr
		}

		lastErr = err
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", lastErr)
}
