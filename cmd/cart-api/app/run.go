package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/cfarhan/shopping/configs"
	"github.com/cfarhan/shopping/internal/adapter/cache"
	"github.com/cfarhan/shopping/internal/adapter/gateway"
	"github.com/cfarhan/shopping/internal/adapter/http"
	"github.com/cfarhan/shopping/internal/adapter/http/middleware"
	"github.com/cfarhan/shopping/internal/adapter/queue"
	"github.com/cfarhan/shopping/internal/adapter/repo"
	"github.com/cfarhan/shopping/internal/logging"
	"github.com/cfarhan/shopping/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, "./logs/app.log")

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		return nil, nil, err
	}
	cancel()

	logger.Info("cart-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// rabbitmq is best effort: settled events are a side channel, the API
	// keeps serving when the broker is down
	var events usecase.OrderEvents = queue.NopEvents{}
	var amqpConn *amqp091.Connection
	if cfg.Rabbit.URL != "" {
		conn, err := amqp091.Dial(cfg.Rabbit.URL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, settled events disabled", "err", err)
		} else if ch, err := conn.Channel(); err != nil {
			logger.Warn("rabbitmq channel failed, settled events disabled", "err", err)
			_ = conn.Close()
		} else if producer, err := queue.NewRabbitProducer(ch); err != nil {
			logger.Warn("rabbitmq topology failed, settled events disabled", "err", err)
			_ = conn.Close()
		} else {
			events = producer
			amqpConn = conn
		}
	}

	// infra
	orderRepo := repo.NewMySQLOrderRepo(db)
	productRepo := repo.NewMySQLProductRepo(db)
	cartRepo := cache.NewRedisCartRepo(rdb)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)

	var issuer usecase.IntentIssuer = gateway.LocalIssuer{}
	if cfg.Gateway.BaseURL != "" {
		issuer = gateway.NewHTTPIssuer(cfg.Gateway.BaseURL, cfg.Gateway.SecretKey, cfg.Gateway.Timeout)
	}

	// use cases
	carts := usecase.NewCarts(cartRepo, productRepo, cfg.App.Currency)
	settle := usecase.NewSettle(carts, cartRepo, orderRepo, events)
	intents := usecase.NewPaymentIntents(carts, cartRepo, orderRepo, issuer, idem, events, cfg.Gateway.PublicKey)

	// handlers + router
	auth := middleware.NewAuthz(cfg)
	th := http.NewTokenHandler(cfg)
	ch := http.NewCartHandler(carts)
	co := http.NewCheckoutHandler(settle)
	ph := http.NewPaymentHandler(intents)
	router := http.NewRouter(logging.New("http"), auth, th, ch, co, ph)

	cleanup := func() {
		_ = db.Close()
		_ = rdb.Close()
		if amqpConn != nil {
			_ = amqpConn.Close()
		}
	}

	return &App{Router: router}, cleanup, nil
}
