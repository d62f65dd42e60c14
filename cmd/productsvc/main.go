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

	"github.com/luxefashion/go-storefront/internal/config"
	"github.com/luxefashion/go-storefront/internal/httpx"
	"github.com/luxefashion/go-storefront/internal/kafkax"
	"github.com/luxefashion/go-storefront/internal/orders"
	"github.com/luxefashion/go-storefront/internal/postgres"
	"github.com/luxefashion/go-storefront/internal/productsvc"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer db.Close()

	repo := &productsvc.Repo{DB: db}
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if err := repo.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}

	var producer *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicCatalogChanged, 1024, log)
		producer.Start(ctx)
	}

	router := httpx.NewRouter(cfg.CORSOrigin)
	h := &productsvc.Handler{
		Repo:     repo,
		Producer: producer,
		Service:  cfg.ServiceName + "-productsvc",
	}
	h.Register(router)

	addr := cfg.HTTPAddr
	if v := os.Getenv("PRODUCTSVC_ADDR"); v != "" {
		addr = v
	}
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		log.Info().Str("addr", addr).Msg("product service listening")
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
