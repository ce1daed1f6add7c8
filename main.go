package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doctorsportal/portal/handlers"
	"github.com/doctorsportal/portal/internal/access"
	"github.com/doctorsportal/portal/internal/availability"
	"github.com/doctorsportal/portal/internal/bookings"
	"github.com/doctorsportal/portal/internal/config"
	"github.com/doctorsportal/portal/internal/database"
	"github.com/doctorsportal/portal/internal/doctors"
	"github.com/doctorsportal/portal/internal/tokens"
	"github.com/doctorsportal/portal/internal/treatments"
	"github.com/doctorsportal/portal/internal/users"
	"github.com/doctorsportal/portal/pkg/logger"
	"github.com/doctorsportal/portal/pkg/metrics"
	"github.com/doctorsportal/portal/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

// stores are the repositories behind the services, either all Mongo or
// all in-memory.
type stores struct {
	treatments treatments.Repository
	bookings   bookings.Repository
	users      users.UserRepository
	doctors    doctors.Repository
}

func memoryStores() stores {
	return stores{
		treatments: treatments.NewMemoryRepository(),
		bookings:   bookings.NewMemoryRepository(),
		users:      users.NewMemoryUserRepository(),
		doctors:    doctors.NewMemoryRepository(),
	}
}

func mongoStores(db *mongo.Database) stores {
	return stores{
		treatments: treatments.NewMongoRepository(db.Collection(database.TreatmentsCollection)),
		bookings:   bookings.NewMongoRepository(db.Collection(database.BookingsCollection)),
		users:      users.NewMongoUserRepository(db.Collection(database.UsersCollection)),
		doctors:    doctors.NewMongoRepository(db.Collection(database.DoctorsCollection)),
	}
}

// connectMongo retries with backoff to tolerate the store starting after us.
func connectMongo(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Client, error) {
	const maxAttempts = 5
	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err := database.ConnectMongo(ctx, cfg.URI, cfg.Timeout)
		if err == nil {
			return client, nil
		}
		lastErr = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return nil, lastErr
}

// signingSecret returns the configured secret, or a random one for
// development. Production refuses to start without a configured secret
// before this is called. Tokens signed with a random secret do not survive a
// restart.
func signingSecret(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate development secret: %w", err)
	}
	logger.Warn("ACCESS_TOKEN_SECRET not set: using a random development secret, tokens are invalidated on restart")
	return hex.EncodeToString(buf), nil
}

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v rate_limit=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.RateLimit.Enabled)
	if cfg.IsProduction() {
		if cfg.JWT.Secret == "" {
			logger.Fatalf("ACCESS_TOKEN_SECRET is required in production")
		}
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()
	probes := map[string]handlers.Probe{}

	// Redis only backs the distributed rate limiter.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = redisClient.Close() }()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		if cfg.RateLimit.UseRedis {
			probes["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}
	// The limiter runs inside the route chains, after AuthMiddleware on
	// verified routes, so callers are bucketed by email there and by IP on
	// public routes.
	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limiter = middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
			logger.Infof("rate limiter: redis, %v rps burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		} else {
			limiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
			logger.Infof("rate limiter: in-process, %v rps burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	st := memoryStores()
	if cfg.MongoDB.URI != "" {
		client, err := connectMongo(ctx, cfg.MongoDB)
		if err != nil {
			logger.Fatalf("could not connect to MongoDB: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		db := client.Database(cfg.MongoDB.Database)
		if err := database.EnsureIndexes(ctx, db); err != nil {
			logger.Fatalf("failed to ensure indexes: %v", err)
		}
		st = mongoStores(db)
		probes["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		logger.Infof("using MongoDB database %q", cfg.MongoDB.Database)
	} else {
		logger.Warn("MONGODB_URI not set: using in-memory stores, data is lost on restart")
	}

	secret, err := signingSecret(cfg.JWT.Secret)
	if err != nil {
		logger.Fatalf("signing secret: %v", err)
	}
	mgr, err := tokens.NewManager(secret, cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Fatalf("token manager: %v", err)
	}
	h := handlers.NewHandler(handlers.Services{
		Verifier:     mgr,
		Gate:         access.NewGate(st.users),
		Availability: availability.NewEngine(st.treatments, st.bookings),
		Bookings:     bookings.NewService(st.bookings),
		Users:        users.NewService(st.users, mgr),
		Doctors:      doctors.NewService(st.doctors),
		Limiter:      limiter,
	}, cfg.MongoDB.OpTimeout)
	h.Register(r)

	handlers.RegisterOps(r, startTime, probes)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting portal on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
