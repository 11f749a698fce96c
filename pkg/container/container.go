package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"sportify-backend/internal/config"
	infraCache "sportify-backend/internal/infrastructure/cache"
	"sportify-backend/internal/infrastructure/database"
	"sportify-backend/internal/infrastructure/supabase"
	"sportify-backend/pkg/cache"
	"sportify-backend/pkg/jwt"

	// Payment domain imports
	"sportify-backend/internal/domains/payment/gateway"
	"sportify-backend/internal/domains/payment/gateway/razorpay"
	paymentHandler "sportify-backend/internal/domains/payment/handler"
	paymentRepo "sportify-backend/internal/domains/payment/repository"
	paymentService "sportify-backend/internal/domains/payment/service"

	// User domain imports
	"sportify-backend/internal/domains/user"
	userHandler "sportify-backend/internal/domains/user/handler"
	userRepo "sportify-backend/internal/domains/user/repository"
	userService "sportify-backend/internal/domains/user/service"
)

const (
	minIdempotencyLockTTL = time.Minute
	idempotencyLockMargin = 30 * time.Second
)

// idempotencyLockTTL outlives the bounded gateway call so a retry cannot slip
// in while the first attempt is still waiting on the gateway.
func idempotencyLockTTL(gatewayTimeout time.Duration) time.Duration {
	ttl := gatewayTimeout + idempotencyLockMargin
	if ttl < minIdempotencyLockTTL {
		return minIdempotencyLockTTL
	}
	return ttl
}

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB // nil when DB_HOST is empty
	Cache       cache.Cache
	CacheKind   string // "redis" or "memory"
	JWTManager  *jwt.Manager
	Gateway     gateway.OrderGateway       // nil when gateway credentials are missing
	AuthAdmin   *supabase.AuthAdminClient // nil when Supabase is not configured
	redisClient *infraCache.RedisCache

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	IdempotencyRepo paymentRepo.IdempotencyRepository
	IssuedOrderRepo paymentRepo.IssuedOrderRepository
	ProfileRepo     user.ProfileRepository // nil without a database

	// ========================================
	// SERVICE LAYER
	// ========================================
	OrderService        paymentService.OrderService
	VerificationService paymentService.VerificationService
	UserService         user.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	PaymentHandler *paymentHandler.PaymentHandler
	UserHandler    *userHandler.UserHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads configuration from the environment and builds the graph.
func NewContainer() (*Container, error) {
	log.Info().Msg("Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	return Build(context.Background(), cfg, dbConfig)
}

// Build initializes the dependency graph in order:
// infrastructure, repositories, services, handlers.
// Missing gateway, database or Supabase settings do not fail start-up; the
// affected operations report a configuration error per request instead.
func Build(ctx context.Context, cfg *config.Config, dbConfig *database.DBConfig) (*Container, error) {
	log.Info().Str("env", cfg.App.Environment).Msg("Initializing DI container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: DATABASE
	// ========================================
	if dbConfig.Enabled() {
		log.Info().Str("host", dbConfig.Host).Msg("Connecting to PostgreSQL...")

		db := database.NewPostgresDB(dbConfig)
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := db.Connect(connectCtx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.HealthCheck(ctx); err != nil {
			return nil, fmt.Errorf("database health check failed: %w", err)
		}
		c.DB = db
	} else {
		log.Warn().Msg("DB_HOST not set - user provisioning disabled")
	}

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.initCache(ctx)

	// ========================================
	// STEP 3: EXTERNAL CLIENTS
	// ========================================
	c.initClients()

	// ========================================
	// STEP 4: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().
		Str("cache", c.CacheKind).
		Bool("gateway", c.Gateway != nil).
		Bool("provisioning", c.UserService != nil && c.ProfileRepo != nil && c.AuthAdmin != nil).
		Msg("DI container ready")

	return c, nil
}

// initCache falls back to a process-local store when Redis is unreachable.
// Idempotency and the issued-order registry then only hold per instance.
func (c *Container) initCache(ctx context.Context) {
	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := redisCache.Connect(pingCtx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), using in-memory cache")
		_ = redisCache.Close()
		c.Cache = cache.NewMemoryCache()
		c.CacheKind = "memory"
		return
	}

	c.redisClient = redisCache
	c.Cache = redisCache
	c.CacheKind = "redis"
}

func (c *Container) initClients() {
	rz := c.Config.Razorpay
	if rz.HasCredentials() {
		client, err := razorpay.NewClient(razorpay.NewConfig(rz.KeyID, rz.KeySecret, rz.APIURL, rz.Timeout))
		if err != nil {
			log.Error().Err(err).Msg("Razorpay client not created")
		} else {
			c.Gateway = client
		}
	} else {
		log.Warn().Msg("KEY_ID/KEY_SECRET not set - order creation will answer with a configuration error")
	}

	sb := c.Config.Supabase
	c.JWTManager = jwt.NewManager(sb.JWTSecret)
	if client, err := supabase.NewAuthAdminClient(sb.URL, sb.ServiceRoleKey, sb.Timeout); err == nil {
		c.AuthAdmin = client
	} else {
		log.Warn().Err(err).Msg("Supabase auth admin disabled")
	}
}

func (c *Container) initRepositories() {
	c.IdempotencyRepo = paymentRepo.NewIdempotencyRepository(c.Cache, c.Config.Payment.IdempotencyTTL, idempotencyLockTTL(c.Config.Razorpay.Timeout))
	c.IssuedOrderRepo = paymentRepo.NewIssuedOrderRepository(c.Cache, c.Config.Payment.IssuedOrderTTL)

	if c.DB != nil {
		c.ProfileRepo = userRepo.NewPostgresRepository(c.DB.Pool)
	}
}

func (c *Container) initServices() {
	c.OrderService = paymentService.NewOrderService(
		c.Gateway,
		c.IdempotencyRepo,
		c.IssuedOrderRepo,
		paymentService.OrderServiceConfig{
			DefaultCurrency: c.Config.Payment.DefaultCurrency,
			Timeout:         c.Config.Razorpay.Timeout,
		},
	)

	c.VerificationService = paymentService.NewVerificationService(
		c.Config.Razorpay.KeySecret,
		c.IssuedOrderRepo,
		c.Config.Payment.VerifyOrderLinkage,
	)

	// Typed nils must not leak into the interfaces.
	var (
		tokens   userService.TokenResolver
		admin    userService.IdentityAdmin
		profiles user.ProfileRepository
	)
	var (
		local  userService.LocalTokenValidator
		remote userService.UserLookup
	)
	if c.Config.Supabase.JWTSecret != "" {
		local = c.JWTManager
	}
	if c.AuthAdmin != nil {
		admin = c.AuthAdmin
		remote = c.AuthAdmin
	}
	if local != nil || remote != nil {
		tokens = userService.NewTokenResolver(local, remote)
	}
	if c.ProfileRepo != nil {
		profiles = c.ProfileRepo
	}
	c.UserService = userService.NewProvisioningService(tokens, admin, profiles)
}

func (c *Container) initHandlers() {
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.OrderService, c.VerificationService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases connections on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up resources...")

	if c.DB != nil {
		c.DB.Close()
	}

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Redis")
		}
	}
}
