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

	acceptBookingHandler "github.com/zarechye/booking-service/internal/api/handlers/accept_booking"
	arriveBookingHandler "github.com/zarechye/booking-service/internal/api/handlers/arrive_booking"
	cancelBookingHandler "github.com/zarechye/booking-service/internal/api/handlers/cancel_booking"
	closePaymentHandler "github.com/zarechye/booking-service/internal/api/handlers/close_payment"
	createBookingHandler "github.com/zarechye/booking-service/internal/api/handlers/create_booking"
	createResourceHandler "github.com/zarechye/booking-service/internal/api/handlers/create_resource"
	expireStaleHandler "github.com/zarechye/booking-service/internal/api/handlers/expire_stale"
	getAvailabilityHandler "github.com/zarechye/booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/zarechye/booking-service/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/zarechye/booking-service/internal/api/handlers/get_calendar"
	listBookingsHandler "github.com/zarechye/booking-service/internal/api/handlers/list_bookings"
	noShowBookingHandler "github.com/zarechye/booking-service/internal/api/handlers/no_show_booking"
	setDiscountHandler "github.com/zarechye/booking-service/internal/api/handlers/set_discount"
	"github.com/zarechye/booking-service/internal/api/middleware"
	"github.com/zarechye/booking-service/internal/config"
	bookingRepo "github.com/zarechye/booking-service/internal/infra/storage/booking"
	resourceRepo "github.com/zarechye/booking-service/internal/infra/storage/resource"
	guestServiceClient "github.com/zarechye/booking-service/internal/integrations/guestservice"
	notifyServiceClient "github.com/zarechye/booking-service/internal/integrations/notifyservice"
	bookingsService "github.com/zarechye/booking-service/internal/service/bookings"
	resourcesService "github.com/zarechye/booking-service/internal/service/resources"
	createBookingUC "github.com/zarechye/booking-service/internal/usecase/create_booking"
	getAvailabilityUC "github.com/zarechye/booking-service/internal/usecase/get_availability"
	getCalendarUC "github.com/zarechye/booking-service/internal/usecase/get_calendar"
	"github.com/zarechye/booking-service/pkg/dbmetrics"
	"github.com/zarechye/booking-service/pkg/logger"
	"github.com/zarechye/booking-service/pkg/metrics"
	"github.com/zarechye/booking-service/pkg/simpletxmanager"
	"github.com/zarechye/booking-service/pkg/txmanager"
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

	log.Info("Starting booking-service...")
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
	guestClient := guestServiceClient.NewClient(
		cfg.GuestService.URL,
		time.Duration(cfg.GuestService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (GuestService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.GuestService.URL, cfg.GuestService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		resourceRepository *resourceRepo.Repository
		txMgr              bookingsService.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		resourceRepository,
		notifyClient,
		txMgr,
		time.Duration(cfg.Booking.PendingHoldHours)*time.Hour,
		log,
	)

	// Инициализируем use cases
	resourceSvc := resourcesService.NewService(resourceRepository, txMgr, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		guestClient,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		txMgr,
		log,
	)
	getCalendarUseCase := getCalendarUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createResource := createResourceHandler.NewHandler(resourceSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	acceptBooking := acceptBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	closePayment := closePaymentHandler.NewHandler(bookingSvc, log)
	setDiscount := setDiscountHandler.NewHandler(bookingSvc, log)
	arriveBooking := arriveBookingHandler.NewHandler(bookingSvc, log)
	noShowBooking := noShowBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	expireStale := expireStaleHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Внутренний маршрут для планировщика, не выходит за пределы приватной сети
	r.HandleFunc("/internal/bookings/expire-stale", expireStale.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов ресурсов категории на дату
	api.HandleFunc("/resources/{category}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Календарный обзор занятости категории
	api.HandleFunc("/resources/{category}/calendar-availability",
		getCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Заведение ресурсов персоналом
	protected.HandleFunc("/resources", createResource.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Переходы жизненного цикла
	protected.HandleFunc("/bookings/{bookingId}/accept", acceptBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/close-payment", closePayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/discount", setDiscount.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/arrive", arriveBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/no-show", noShowBooking.Handle).Methods(http.MethodPost)

	// --- Для персонала ---
	// Список бронирований по категории ресурсов
	protected.HandleFunc("/resources/{category}/bookings", listBookings.Handle).Methods(http.MethodGet)

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
