package container

import (
	"context"
	"fmt"
	"time"

	"bookcatalog-backend/internal/config"
	"bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/internal/infrastructure/database"
	"bookcatalog-backend/pkg/jwt"
	"bookcatalog-backend/pkg/logger"

	catalogHandler "bookcatalog-backend/internal/domains/catalog/handler"
	catalogRepo "bookcatalog-backend/internal/domains/catalog/repository"
	catalogService "bookcatalog-backend/internal/domains/catalog/service"

	"bookcatalog-backend/internal/domains/user"
	userHandler "bookcatalog-backend/internal/domains/user/handler"
	userRepo "bookcatalog-backend/internal/domains/user/repository"
	userService "bookcatalog-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Every component is a
// singleton that lives for the whole process.
type Container struct {
	// Infrastructure layer
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *cache.RedisClient
	JWTManager *jwt.Manager
	TokenStore *cache.TokenStore

	// Repository layer
	CatalogRepo catalogRepo.Repository
	UserRepo    user.Repository

	// Service layer
	CatalogService catalogService.ServiceInterface
	UserService    user.Service

	// Handler layer
	CatalogHandler *catalogHandler.CatalogHandler
	UserHandler    *userHandler.UserHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the full dependency graph in order:
// config -> infrastructure -> repositories -> services -> handlers.
func NewContainer() (*Container, error) {
	logger.Info("🔧 Initializing DI container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info(fmt.Sprintf("✅ Config loaded (environment: %s)", cfg.App.Environment))

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	logger.Info("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	c.DB = db
	logger.Info("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE REDIS
	// ========================================
	logger.Info("🔴 Connecting to Redis...")

	redisConfig, err := config.LoadRedisConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load redis config: %w", err)
	}

	redisClient := cache.NewRedisClient(redisConfig)
	if err := redisClient.Connect(context.Background()); err != nil {
		// Refresh tokens live in Redis; without it auth cannot work
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Redis = redisClient
	logger.Info("✅ Redis connected")

	// ========================================
	// STEP 4: AUTH COMPONENTS
	// ========================================
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)
	c.TokenStore = cache.NewTokenStore(redisClient)

	// ========================================
	// STEP 5: REPOSITORIES -> SERVICES -> HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("🎉 DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CatalogRepo = catalogRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
}

func (c *Container) initServices() {
	c.CatalogService = catalogService.NewCatalogService(c.CatalogRepo)
	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		c.TokenStore,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(c.Config.JWT.RefreshTokenExpiry)*time.Hour,
	)
}

func (c *Container) initHandlers() {
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	logger.Info("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
		logger.Info("✅ Database connections closed")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Warn(fmt.Sprintf("⚠️  Failed to close Redis: %v", err))
		} else {
			logger.Info("✅ Redis connections closed")
		}
	}
}
