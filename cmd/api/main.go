package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BonisOleg/coresync-sub000/internal/config"
	dbpkg "github.com/BonisOleg/coresync-sub000/internal/db"
	"github.com/BonisOleg/coresync-sub000/internal/events"
	"github.com/BonisOleg/coresync-sub000/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()

	logger := newLogger(cfg)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})

	queueOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
	asynqClient := asynq.NewClient(queueOpt)
	defer asynqClient.Close()

	var emitter events.Emitter = events.NewAsynqEmitter(asynqClient)
	if !cfg.IsProduction() {
		emitter = events.NewLogEmitter(logger)
	}
	eventsDispatcher := events.NewDispatcher(emitter, logger)
	defer eventsDispatcher.Close()

	if cfg.IsProduction() {
		go func() {
			sink := events.NewLogEmitter(logger)
			if err := events.RunWorker(queueOpt, sink, logger); err != nil {
				logger.Fatal("event worker stopped", zap.Error(err))
			}
		}()
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, logger, eventsDispatcher)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	if cfg.IsProduction() {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
