package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/avvvet/ternarii-services/configs"
	"github.com/avvvet/ternarii-services/internal/gamesvc/broker"
	gameconfig "github.com/avvvet/ternarii-services/internal/gamesvc/config"
	"github.com/avvvet/ternarii-services/internal/gamesvc/db"
	handlers "github.com/avvvet/ternarii-services/internal/gamesvc/handlers"
	"github.com/avvvet/ternarii-services/internal/gamesvc/seed"
	"github.com/avvvet/ternarii-services/internal/gamesvc/service"
	"github.com/avvvet/ternarii-services/internal/gamesvc/store"
	"github.com/avvvet/ternarii-services/internal/gamesvc/store/sqlite"
	nats "github.com/avvvet/ternarii-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "game"

type stores struct {
	players service.PlayerStore
	games   service.GameStore
	moves   service.MoveStore
	stats   service.StatsStore
	close   func()
}

func openStores(cfg gameconfig.Config) (*stores, error) {
	if cfg.DBDriver == gameconfig.DriverSQLite {
		sqlDB, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Printf("sqlite database %s opened successfully", cfg.SQLitePath)
		return &stores{
			players: sqlite.NewPlayerStore(sqlDB),
			games:   sqlite.NewGameStore(sqlDB),
			moves:   sqlite.NewMoveStore(sqlDB),
			stats:   sqlite.NewStatsStore(sqlDB),
			close:   func() { sqlDB.Close() },
		}, nil
	}

	// pg connection
	dbpool, err := db.Connect(cfg.PostgresURL, cfg.DBConnectTimeout)
	if err != nil {
		return nil, err
	}
	log.Printf("pg connection established successfully")
	return &stores{
		players: store.NewPlayerStore(dbpool),
		games:   store.NewGameStore(dbpool),
		moves:   store.NewMoveStore(dbpool),
		stats:   store.NewStatsStore(dbpool),
		close:   func() { db.ClosePool(dbpool) },
	}, nil
}

func main() {
	config.LoadEnv(SERVICE_NAME)

	cfg, err := gameconfig.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME+"_service_"+instanceId, cfg.LogDir, cfg.LogLevel)

	st, err := openStores(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer st.close()

	// ledger events are optional; without NATS the service runs standalone
	var events service.EventPublisher = broker.NopPublisher{}
	if cfg.NatsURL != "" {
		n, err := nats.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"_service_"+instanceId)
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		defer n.Conn.Close()
		log.Printf("NATS connection established successfully %s", n.Url)
		events = broker.NewPublisher(n.Conn)
	} else {
		log.Warn("NATS_URL not set, ledger events will not be published")
	}

	seeds := seed.NewCryptoSource()
	playerService := service.NewPlayerService(st.players, cfg.BcryptCost)
	moveService := service.NewMoveService(st.moves, seeds, events)
	gameService := service.NewGameService(st.games, moveService, seeds, events)
	opsService := service.NewOpsService(st.stats)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.CORSOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(playerService, gameService, moveService, opsService, instanceId)
	h.InitAuth(cfg.JWTSecret)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
		return
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
