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

	cancelBookingHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/cancel_booking"
	completeInstallationHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/complete_installation"
	createBookingHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/create_booking"
	createInstallationRequestHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/create_installation_request"
	deleteSpaceHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/delete_space"
	getBookingHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/get_booking"
	getInstallationRequestHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/get_installation_request"
	getSpaceHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/get_space"
	getSpaceLayoutHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/get_space_layout"
	getUserBookingsHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/get_user_bookings"
	refreshBookingsHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/refresh_bookings"
	reviewInstallationRequestHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/review_installation_request"
	searchSpacesHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/search_spaces"
	updateSpaceStatusHandler "github.com/m04kA/SMC-StorageService/internal/api/handlers/update_space_status"
	"github.com/m04kA/SMC-StorageService/internal/api/middleware"
	"github.com/m04kA/SMC-StorageService/internal/config"
	bookingRepo "github.com/m04kA/SMC-StorageService/internal/infra/storage/booking"
	installationRepo "github.com/m04kA/SMC-StorageService/internal/infra/storage/installation"
	spaceRepo "github.com/m04kA/SMC-StorageService/internal/infra/storage/space"
	bookingsService "github.com/m04kA/SMC-StorageService/internal/service/bookings"
	installationsService "github.com/m04kA/SMC-StorageService/internal/service/installations"
	spacesService "github.com/m04kA/SMC-StorageService/internal/service/spaces"
	completeInstallationUC "github.com/m04kA/SMC-StorageService/internal/usecase/complete_installation"
	createBookingUC "github.com/m04kA/SMC-StorageService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StorageService/pkg/logger"
	"github.com/m04kA/SMC-StorageService/pkg/metrics"
	"github.com/m04kA/SMC-StorageService/pkg/txmanager"
)

// systemClock источник текущего времени для сервисов
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

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

	log.Info("Starting SMC-StorageService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(db)
	spaceRepository := spaceRepo.NewRepository(db)
	installationRepository := installationRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)
	clock := systemClock{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		spaceRepository,
		txMgr,
		clock,
		log,
	)
	spaceSvc := spacesService.NewService(
		spaceRepository,
		log,
	)
	installationSvc := installationsService.NewService(
		installationRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		spaceRepository,
		txMgr,
		log,
	)
	completeInstallationUseCase := completeInstallationUC.NewUseCase(
		installationRepository,
		spaceRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	refreshBookings := refreshBookingsHandler.NewHandler(bookingSvc, log)
	searchSpaces := searchSpacesHandler.NewHandler(spaceSvc, log)
	getSpace := getSpaceHandler.NewHandler(spaceSvc, log)
	getSpaceLayout := getSpaceLayoutHandler.NewHandler(spaceSvc, log)
	updateSpaceStatus := updateSpaceStatusHandler.NewHandler(spaceSvc, log)
	deleteSpace := deleteSpaceHandler.NewHandler(spaceSvc, log)
	createInstallationRequest := createInstallationRequestHandler.NewHandler(installationSvc, log)
	getInstallationRequest := getInstallationRequestHandler.NewHandler(installationSvc, log)
	reviewInstallationRequest := reviewInstallationRequestHandler.NewHandler(installationSvc, log)
	completeInstallation := completeInstallationHandler.NewHandler(completeInstallationUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск площадок под предмет заданных габаритов
	api.HandleFunc("/spaces/search", searchSpaces.Handle).Methods(http.MethodGet)

	// Карточка площадки и раскладка полок
	api.HandleFunc("/spaces/{spaceId}", getSpace.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/layout", getSpaceLayout.Handle).Methods(http.MethodGet)

	// Пересчет статусов бронирований (дергается планировщиком)
	api.HandleFunc("/bookings/refresh", refreshBookings.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Площадки (для владельцев) ---
	protected.HandleFunc("/spaces", getSpace.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/spaces/{spaceId}/status", updateSpaceStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/spaces/{spaceId}", deleteSpace.Handle).Methods(http.MethodDelete)

	// --- Заявки на монтаж ---
	protected.HandleFunc("/installation-requests", createInstallationRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/installation-requests", createInstallationRequest.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/installation-requests/{requestId}", getInstallationRequest.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/installation-requests/{requestId}/review", reviewInstallationRequest.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/installation-requests/{requestId}/complete", completeInstallation.Handle).Methods(http.MethodPost)

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
