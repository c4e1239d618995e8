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
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/create_reservation"
	getReservationHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_user_reservations"
	getVenueHoursHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_venue_hours"
	getVenueReservationsHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_venue_reservations"
	getVenueStatusHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/get_venue_status"
	seatBlocksHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/seat_blocks"
	setHoursSourceHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/set_hours_source"
	setManualHoursHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/set_manual_hours"
	syncVenueHoursHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/sync_venue_hours"
	updateReservationHandler "github.com/m04kA/SMC-VenueBookingService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/config"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/cache"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/queue"
	hoursRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/hours"
	reservationRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/reservation"
	seatBlockRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/seatblock"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/googleplaces"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/conflict"
	hoursService "github.com/m04kA/SMC-VenueBookingService/internal/service/hours"
	reservationsService "github.com/m04kA/SMC-VenueBookingService/internal/service/reservations"
	seatBlocksService "github.com/m04kA/SMC-VenueBookingService/internal/service/seatblocks"
	createReservationUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_reservation"
	getVenueStatusUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_venue_status"
	updateReservationUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-VenueBookingService/migrations"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
)

// eventPublisher общий интерфейс RabbitMQ и Noop публикаторов
type eventPublisher interface {
	PublishReservationEvent(ctx context.Context, event queue.ReservationEvent) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-VenueBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Бизнес-счетчики пишутся всегда, наружу отдаются только при включенных метриках
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	if cfg.Database.AutoMigrate {
		applied, err := migrations.Apply(context.Background(), wrappedDB)
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied: %v", applied)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	venueRepository := venueRepo.NewRepository(wrappedDB)
	hoursRepository := hoursRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	seatBlockRepository := seatBlockRepo.NewRepository(wrappedDB)

	// Кэш расписаний
	var (
		redisClient *redis.Client
		hoursCache  hoursService.HoursCache = cache.Noop{}
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		hoursCache = cache.NewHoursCache(redisClient, cfg.Redis.TTL())
		log.Info("Hours cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	// Публикация событий бронирований
	var publisher eventPublisher = queue.Noop{}
	if cfg.RabbitMQ.Enabled {
		rabbitPublisher, err := queue.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = rabbitPublisher
		log.Info("Reservation events are published to exchange %s", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// Интеграция с Google Places
	var googleClient hoursService.GooglePlacesClient = googleplaces.Disabled{}
	if cfg.GooglePlaces.Enabled {
		googleClient = googleplaces.NewClient(
			cfg.GooglePlaces.BaseURL,
			cfg.GooglePlaces.APIKey,
			time.Duration(cfg.GooglePlaces.Timeout)*time.Second,
			log,
		)
		log.Info("Google Places client initialized (url=%s, timeout=%ds)", cfg.GooglePlaces.BaseURL, cfg.GooglePlaces.Timeout)
	}

	// Инициализируем сервисы
	hoursSvc := hoursService.NewService(venueRepository, hoursRepository, googleClient, hoursCache, txMgr, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, venueRepository, publisher, log)
	seatBlocksSvc := seatBlocksService.NewService(seatBlockRepository, venueRepository, log)
	validator := conflict.NewValidator(venueRepository, reservationRepository, seatBlockRepository)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		venueRepository,
		reservationRepository,
		validator,
		publisher,
		metricsCollector,
		txMgr,
		cfg.Booking.MaxReservationMinutes,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		venueRepository,
		reservationRepository,
		validator,
		publisher,
		metricsCollector,
		txMgr,
		cfg.Booking.MaxReservationMinutes,
		log,
	)
	getVenueStatusUseCase := getVenueStatusUC.NewUseCase(
		venueRepository,
		reservationRepository,
		hoursSvc,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getVenueReservations := getVenueReservationsHandler.NewHandler(reservationsSvc, log)
	getVenueStatus := getVenueStatusHandler.NewHandler(getVenueStatusUseCase, log)
	getVenueHours := getVenueHoursHandler.NewHandler(hoursSvc, log)
	syncVenueHours := syncVenueHoursHandler.NewHandler(hoursSvc, log)
	setManualHours := setManualHoursHandler.NewHandler(hoursSvc, log)
	setHoursSource := setHoursSourceHandler.NewHandler(hoursSvc, log)
	seatBlocks := seatBlocksHandler.NewHandler(seatBlocksSvc, log)

	// Ограничение частоты для изменяющих запросов
	limited := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		limited = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Проверки живости и готовности
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctxPing, cancel := context.WithTimeout(req.Context(), time.Second)
		defer cancel()
		if err := db.PingContext(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Состояние площадки: часы, открыта ли сейчас, ближайшая доступность
	api.HandleFunc("/venues/{venueId}/status", getVenueStatus.Handle).Methods(http.MethodGet)

	// Разрешенное недельное расписание
	api.HandleFunc("/venues/{venueId}/hours", getVenueHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.Handle("/venues/{venueId}/reservations", limited(createReservation.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.Handle("/reservations/{reservationId}", limited(updateReservation.Handle)).Methods(http.MethodPatch)
	protected.Handle("/reservations/{reservationId}/cancel", limited(cancelReservation.Handle)).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для менеджеров) ---
	protected.HandleFunc("/venues/{venueId}/reservations", getVenueReservations.Handle).Methods(http.MethodGet)
	protected.Handle("/venues/{venueId}/hours", limited(setManualHours.Handle)).Methods(http.MethodPut)
	protected.Handle("/venues/{venueId}/hours/source", limited(setHoursSource.Handle)).Methods(http.MethodPut)
	protected.Handle("/venues/{venueId}/hours/sync", limited(syncVenueHours.Handle)).Methods(http.MethodPost)
	protected.HandleFunc("/venues/{venueId}/seat-blocks", seatBlocks.List).Methods(http.MethodGet)
	protected.Handle("/venues/{venueId}/seat-blocks", limited(seatBlocks.Create)).Methods(http.MethodPost)
	protected.Handle("/venues/{venueId}/seat-blocks/{blockId}", limited(seatBlocks.Delete)).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

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
