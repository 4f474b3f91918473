package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/castlepub/reservation-system-sub000/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/castlepub/reservation-system-sub000/internal/api/handlers/create_booking"
	findTablesHandler "github.com/castlepub/reservation-system-sub000/internal/api/handlers/find_tables"
	getAvailableSlotsHandler "github.com/castlepub/reservation-system-sub000/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/castlepub/reservation-system-sub000/internal/api/handlers/get_booking"
	getRoomBookingsHandler "github.com/castlepub/reservation-system-sub000/internal/api/handlers/get_room_bookings"
	"github.com/castlepub/reservation-system-sub000/internal/api/middleware"
	"github.com/castlepub/reservation-system-sub000/internal/config"
	"github.com/castlepub/reservation-system-sub000/internal/engine/allocator"
	blockRepo "github.com/castlepub/reservation-system-sub000/internal/infra/storage/block"
	bookingRepo "github.com/castlepub/reservation-system-sub000/internal/infra/storage/booking"
	catalogRepo "github.com/castlepub/reservation-system-sub000/internal/infra/storage/catalog"
	bookingsService "github.com/castlepub/reservation-system-sub000/internal/service/bookings"
	allocateTablesUC "github.com/castlepub/reservation-system-sub000/internal/usecase/allocate_tables"
	createBookingUC "github.com/castlepub/reservation-system-sub000/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/castlepub/reservation-system-sub000/internal/usecase/get_available_slots"
	"github.com/castlepub/reservation-system-sub000/pkg/dbmetrics"
	"github.com/castlepub/reservation-system-sub000/pkg/logger"
	"github.com/castlepub/reservation-system-sub000/pkg/metrics"
	"github.com/castlepub/reservation-system-sub000/pkg/simpletxmanager"
	"github.com/castlepub/reservation-system-sub000/pkg/txmanager"
)

func main() {
	// .env is optional, real deployments pass the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting reservation service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var (
		catalogRepository *catalogRepo.Repository
		bookingRepository *bookingRepo.Repository
		blockRepository   *blockRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		blockRepository = blockRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		catalogRepository = catalogRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		blockRepository = blockRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	tableAllocator := allocator.New(log)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		log,
	)

	allocateTablesUseCase := allocateTablesUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		blockRepository,
		tableAllocator,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		blockRepository,
		tableAllocator,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		blockRepository,
		tableAllocator,
		log,
	)

	findTables := findTablesHandler.NewHandler(allocateTablesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getRoomBookings := getRoomBookingsHandler.NewHandler(bookingSvc, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: guests browse availability without authentication.
	api.HandleFunc("/rooms/{roomId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Protected routes require the X-User-ID header.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/tables/find", findTables.Handle).Methods(http.MethodPost)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	protected.HandleFunc("/rooms/{roomId}/bookings", getRoomBookings.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
