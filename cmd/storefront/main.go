package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/luxefashion/go-storefront/internal/auth"
	"github.com/luxefashion/go-storefront/internal/cart"
	"github.com/luxefashion/go-storefront/internal/catalog"
	"github.com/luxefashion/go-storefront/internal/config"
	"github.com/luxefashion/go-storefront/internal/httpx"
	"github.com/luxefashion/go-storefront/internal/kafkax"
	"github.com/luxefashion/go-storefront/internal/kvstore"
	"github.com/luxefashion/go-storefront/internal/notify"
	"github.com/luxefashion/go-storefront/internal/orders"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persistent store: redis when configured, in-process otherwise.
	var store kvstore.Store
	if cfg.RedisAddr != "" {
		rdb := kvstore.NewRedis(cfg.RedisAddr, cfg.StoreNamespace)
		defer rdb.Close()
		store = rdb
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis store")
	} else {
		store = kvstore.NewMemory()
		log.Warn().Msg("no REDIS_ADDR set, carts and sessions will not survive restarts")
	}

	// Auth + registry
	registry := auth.NewRegistry(store)
	sessions := auth.NewManager(store, registry, cfg.AdminUsername, cfg.AdminPassword)

	// Cart, scoped to whatever identity survives restore
	userCart := cart.New(store)
	if s, ok, err := sessions.Restore(ctx); err != nil {
		log.Fatal().Err(err).Msg("session restore")
	} else if ok {
		log.Info().Str("user", s.Identity.Username).Str("role", string(s.Role)).Msg("session restored")
		if err := userCart.SwitchUser(ctx, s.Identity.ID); err != nil {
			log.Fatal().Err(err).Msg("cart load")
		}
	} else if err := userCart.SwitchUser(ctx, ""); err != nil {
		log.Fatal().Err(err).Msg("cart load")
	}

	// Catalog cache, loaded in the background; Loading() reports progress
	catalogCache := catalog.NewCache(catalog.NewClient(cfg.ProductAPIBase), log)
	go catalogCache.Load(ctx)

	// Kafka: order events out, catalog-change events in
	var producer *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderSubmitted, 1024, log)
		producer.Start(ctx)

		cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.ServiceName, orders.TopicCatalogChanged, 1, log)
		go func() {
			if err := cons.Start(ctx, func(ctx context.Context, m kafkago.Message) error {
				catalogCache.Reload(ctx)
				return nil
			}); err != nil {
				log.Warn().Err(err).Msg("catalog consumer exit")
			}
		}()
	}

	checkout := &orders.Checkout{
		Orders:   orders.NewClient(cfg.OrderAPIBase),
		Cart:     userCart,
		Producer: producer,
		Service:  cfg.ServiceName,
	}
	telegram := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, log)

	router := httpx.NewRouter(cfg.CORSOrigin)
	(&httpx.AuthHandler{Sessions: sessions, Registry: registry, Cart: userCart}).Register(router)
	(&httpx.CartHandler{Cart: userCart, Catalog: catalogCache}).Register(router)
	(&httpx.CatalogHandler{Catalog: catalogCache, Sessions: sessions}).Register(router)
	(&httpx.OrdersHandler{Checkout: checkout}).Register(router)
	(&httpx.ContactHandler{Telegram: telegram}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("storefront listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if producer != nil {
		producer.Close()
		cancel()
		producer.WaitClosed()
	}
}
