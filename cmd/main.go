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
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/officely-app/Officely-BookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/officely-app/Officely-BookingService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/officely-app/Officely-BookingService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/officely-app/Officely-BookingService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/officely-app/Officely-BookingService/internal/api/handlers/get_user_reservations"
	payReservationHandler "github.com/officely-app/Officely-BookingService/internal/api/handlers/pay_reservation"
	searchOfficesHandler "github.com/officely-app/Officely-BookingService/internal/api/handlers/search_offices"
	updateReservationHandler "github.com/officely-app/Officely-BookingService/internal/api/handlers/update_reservation"
	"github.com/officely-app/Officely-BookingService/internal/api/middleware"
	"github.com/officely-app/Officely-BookingService/internal/config"
	"github.com/officely-app/Officely-BookingService/internal/infra/cache"
	officeRepo "github.com/officely-app/Officely-BookingService/internal/infra/storage/office"
	reservationRepo "github.com/officely-app/Officely-BookingService/internal/infra/storage/reservation"
	trafficRepo "github.com/officely-app/Officely-BookingService/internal/infra/storage/traffic"
	pricingService "github.com/officely-app/Officely-BookingService/internal/service/pricing"
	reservationsService "github.com/officely-app/Officely-BookingService/internal/service/reservations"
	createReservationUC "github.com/officely-app/Officely-BookingService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/officely-app/Officely-BookingService/internal/usecase/get_availability"
	searchOfficesUC "github.com/officely-app/Officely-BookingService/internal/usecase/search_offices"
	"github.com/officely-app/Officely-BookingService/pkg/dbmetrics"
	"github.com/officely-app/Officely-BookingService/pkg/logger"
	"github.com/officely-app/Officely-BookingService/pkg/metrics"
	"github.com/officely-app/Officely-BookingService/pkg/simpletxmanager"
	"github.com/officely-app/Officely-BookingService/pkg/txmanager"
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

	log.Info("Starting Officely-BookingService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		officeRepository      *officeRepo.Repository
		trafficRepository     *trafficRepo.Repository
	)

	// Interface для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		officeRepository = officeRepo.NewRepository(wrappedDB)
		trafficRepository = trafficRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		officeRepository = officeRepo.NewRepository(db)
		trafficRepository = trafficRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем кеш множителей (если включен Redis)
	var multiplierCache pricingService.MultiplierCache
	var redisClient *redis.Client

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		multiplierCache = cache.NewMultiplierCache(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second)
		log.Info("Multiplier cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	} else {
		log.Info("Multiplier cache disabled, multipliers computed on every request")
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(trafficRepository, multiplierCache, log)
	reservationSvc := reservationsService.New(reservationRepository, txMgr, nil, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		officeRepository,
		pricingSvc,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		officeRepository,
		trafficRepository,
		pricingSvc,
		log,
	)
	searchOfficesUseCase := searchOfficesUC.NewUseCase(
		officeRepository,
		pricingSvc,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	payReservation := payReservationHandler.NewHandler(reservationSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	searchOffices := searchOfficesHandler.NewHandler(searchOfficesUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск свободных офисов на диапазон дат
	api.HandleFunc("/offices/search", searchOffices.Handle).Methods(http.MethodGet)

	// Календарь доступности офиса на месяц
	api.HandleFunc("/offices/{officeId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Список бронирований пользователя (для администратора - всех пользователей)
	protected.HandleFunc("/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Изменение дат и комментария бронирования
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Онлайн-оплата бронирования
	protected.HandleFunc("/reservations/{reservationId}/pay", payReservation.Handle).Methods(http.MethodPost)

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
