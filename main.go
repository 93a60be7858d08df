package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-belief/api"
	beliefapi "github.com/beka-birhanu/vinom-belief/api/belief"
	api_i "github.com/beka-birhanu/vinom-belief/api/i"
	"github.com/beka-birhanu/vinom-belief/api/identity"
	"github.com/beka-birhanu/vinom-belief/config"
	"github.com/beka-birhanu/vinom-belief/infrastruture/cache"
	"github.com/beka-birhanu/vinom-belief/infrastruture/repo"
	"github.com/beka-birhanu/vinom-belief/infrastruture/token"
	"github.com/beka-birhanu/vinom-belief/logger"
	"github.com/beka-birhanu/vinom-belief/service"
	"github.com/beka-birhanu/vinom-belief/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient      *mongo.Client
	redisClient      *redis.Client
	userRepo         *repo.UserRepo
	modelRepo        i.ModelRepo
	runRepo          i.RunRepo
	runCache         i.RunCache
	beliefService    i.BeliefTracker
	beliefController api_i.Controller
	jwtTokenizer     i.Tokenizer
	authService      i.Authenticator
	authController   api_i.Controller
	router           *api.Router
	appLogger        i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(ctx context.Context, client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating user indexes: %v", err))
		os.Exit(1)
	}
	modelRepo = repo.NewModelRepo(client, config.Envs.DBName, "models")
	runRepo = repo.NewRunRepo(client, config.Envs.DBName, "runs")
	appLogger.Info("Repositories initialized")
}

// initRedis connects the run cache. The service still works without it.
func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Warning(fmt.Sprintf("Redis unavailable, run cache disabled: %v", err))
		return
	}

	c, err := cache.NewRedisRunCache(redisClient, config.Envs.ResultTTLSeconds)
	if err != nil {
		appLogger.Warning(fmt.Sprintf("Creating run cache: %v", err))
		return
	}
	runCache = c
	appLogger.Info("Connected to Redis")
}

func initBeliefService() {
	beliefLogger, err := logger.New("BELIEF", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating belief logger: %v", err))
		os.Exit(1)
	}

	beliefService, err = service.NewBeliefService(service.BeliefOptions{
		Models:  modelRepo,
		Runs:    runRepo,
		Cache:   runCache,
		Logger:  beliefLogger,
		Workers: config.Envs.FilterWorkers,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating belief service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Belief service initialized")
}

func initBeliefController() {
	var err error
	beliefController, err = beliefapi.NewBeliefController(beliefService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating belief controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Belief controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		GinMode:                 config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, beliefController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRepos(ctx, mongoClient)
	initRedis(ctx)
	defer redisClient.Close()

	initBeliefService()
	initBeliefController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
