package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"library-server/internal/config"
	"library-server/internal/events"
	infraCache "library-server/internal/infrastructure/cache"
	"library-server/internal/infrastructure/database"
	"library-server/internal/ws"
	"library-server/pkg/cache"
	"library-server/pkg/jwt"

	authorHandler "library-server/internal/domains/author/handler"
	authorRepo "library-server/internal/domains/author/repository"
	authorService "library-server/internal/domains/author/service"
	bookHandler "library-server/internal/domains/book/handler"
	bookRepo "library-server/internal/domains/book/repository"
	bookService "library-server/internal/domains/book/service"
	userHandler "library-server/internal/domains/user/handler"
	userRepo "library-server/internal/domains/user/repository"
	userService "library-server/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything here is a
// singleton for the process lifetime and injected explicitly; nothing
// is reached through package-level state.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Bus        *events.Bus

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface
	UserRepo   userRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface
	UserService   userService.ServiceInterface

	// Handlers
	AuthorHandler       *authorHandler.AuthorHandler
	BookHandler         *bookHandler.BookHandler
	UserHandler         *userHandler.UserHandler
	SubscriptionHandler *ws.SubscriptionHandler
}

// NewContainer initializes the whole dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ========================================
	// STEP 2: DATABASE
	// ========================================
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
	c.DB = db

	// ========================================
	// STEP 3: CACHE, JWT, EVENT BUS
	// ========================================
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		// Cache failure is non-critical: repositories fall through to
		// the database on every miss.
		log.Printf("[REDIS] Connection failed (non-critical): %v", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)
	c.Bus = events.NewBus()

	// ========================================
	// STEP 4: REPOSITORIES
	// ========================================
	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)

	// ========================================
	// STEP 5: SERVICES
	// ========================================
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.Bus)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, cfg.Auth.DefaultPassword)

	// ========================================
	// STEP 6: HANDLERS
	// ========================================
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.SubscriptionHandler = ws.NewSubscriptionHandler(c.Bus)

	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if c.Bus != nil {
		if err := c.Bus.Close(); err != nil {
			log.Printf("[EVENTS] Bus close failed: %v", err)
		}
	}
	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[REDIS] Close failed: %v", err)
			}
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
