package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/sma-maze/api"
	api_i "github.com/beka-birhanu/sma-maze/api/i"
	"github.com/beka-birhanu/sma-maze/api/identity"
	solveapi "github.com/beka-birhanu/sma-maze/api/solve"
	"github.com/beka-birhanu/sma-maze/config"
	"github.com/beka-birhanu/sma-maze/infrastruture/cache"
	logger "github.com/beka-birhanu/sma-maze/infrastruture/log"
	"github.com/beka-birhanu/sma-maze/infrastruture/repo"
	"github.com/beka-birhanu/sma-maze/infrastruture/token"
	"github.com/beka-birhanu/sma-maze/service"
	"github.com/beka-birhanu/sma-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	solutionRepo    i.SolutionRepo
	solutionCache   i.SolutionCache
	solver          i.Solver
	jwtTokenizer    i.Tokenizer
	solveController api_i.Controller
	router          *api.Router
	appLogger       *logger.Logger
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

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initSolutionRepo(client *mongo.Client) {
	solutionRepo = repo.NewSolutionRepo(client, config.Envs.DBName, "solutions")
	appLogger.Info("Solution repository initialized")
}

func initSolutionCache(client *redis.Client) {
	var err error
	solutionCache, err = cache.NewRedisSolutionCache(client, "", config.Envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solution cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Solution cache initialized")
}

func initSolver() {
	solverLogger, err := logger.New("SOLVER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solver logger: %v", err))
		os.Exit(1)
	}

	opts := &service.Options{MaxLayoutBytes: config.Envs.MaxLayoutBytes}
	if config.Envs.DefaultBound > 0 {
		bound := config.Envs.DefaultBound
		opts.DefaultBound = &bound
	}

	solver, err = service.NewSolver(solutionRepo, solutionCache, solverLogger, opts)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solver: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Solver initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initSolveController() {
	var err error
	solveController, err = solveapi.NewSolveController(solver)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solve controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Solve controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{solveController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	config.Init()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initSolutionRepo(mongoClient)
	initSolutionCache(redisClient)
	initSolver()
	initJWTTokenizer()
	initSolveController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
