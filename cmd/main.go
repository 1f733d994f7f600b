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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/get_booking"
	getOwnerBookingsHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/get_owner_bookings"
	getStationBookingsHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/get_station_bookings"
	markNoShowHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/mark_no_show"
	updateBookingHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/update_booking"
	validateBookingHandler "github.com/voltspot/EVC-BookingService/internal/api/handlers/validate_booking"
	"github.com/voltspot/EVC-BookingService/internal/api/middleware"
	"github.com/voltspot/EVC-BookingService/internal/config"
	"github.com/voltspot/EVC-BookingService/internal/infra/events"
	bookingRepo "github.com/voltspot/EVC-BookingService/internal/infra/storage/booking"
	ownerServiceClient "github.com/voltspot/EVC-BookingService/internal/integrations/ownerservice"
	stationServiceClient "github.com/voltspot/EVC-BookingService/internal/integrations/stationservice"
	bookingsService "github.com/voltspot/EVC-BookingService/internal/service/bookings"
	createBookingUC "github.com/voltspot/EVC-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/voltspot/EVC-BookingService/internal/usecase/get_available_slots"
	updateBookingUC "github.com/voltspot/EVC-BookingService/internal/usecase/update_booking"
	validateBookingUC "github.com/voltspot/EVC-BookingService/internal/usecase/validate_booking"
	"github.com/voltspot/EVC-BookingService/pkg/dbmetrics"
	"github.com/voltspot/EVC-BookingService/pkg/logger"
	"github.com/voltspot/EVC-BookingService/pkg/metrics"
	"github.com/voltspot/EVC-BookingService/pkg/simpletxmanager"
	"github.com/voltspot/EVC-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting EVC-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	stationClient := stationServiceClient.NewClient(
		cfg.StationService.URL,
		time.Duration(cfg.StationService.Timeout)*time.Second,
		log,
	)
	ownerClient := ownerServiceClient.NewClient(
		cfg.OwnerService.URL,
		time.Duration(cfg.OwnerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StationService=%s timeout=%ds, OwnerService=%s timeout=%ds)",
		cfg.StationService.URL, cfg.StationService.Timeout, cfg.OwnerService.URL, cfg.OwnerService.Timeout)

	// Инициализируем издателя событий (nil-safe: при выключенной Kafka
	// публикация превращается в no-op)
	var publisher *events.Publisher
	if cfg.Kafka.Enabled {
		publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer publisher.Close()
		log.Info("Kafka event publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		log.Info("Kafka event publishing disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис жизненного цикла бронирований
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		publisher,
		&bookingsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		stationClient,
		publisher,
		txMgr,
		log,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		stationClient,
		publisher,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		stationClient,
		ownerClient,
		log,
	)

	validateBookingUseCase := validateBookingUC.NewUseCase(
		bookingRepository,
		stationClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	markNoShow := markNoShowHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	getStationBookings := getStationBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты станции
	api.HandleFunc("/stations/{stationId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-NIC header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Предварительная проверка бронирования
	protected.HandleFunc("/bookings/validate", validateBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)

	// Переходы статусов
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// История бронирований владельца EV
	protected.HandleFunc("/owners/{nic}/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)

	// --- Станции (для операторов) ---
	// Список бронирований станции
	protected.HandleFunc("/stations/{stationId}/bookings", getStationBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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
