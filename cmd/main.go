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

	callNextHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/call_next"
	cancelAppointmentHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/create_appointment"
	deleteScheduleExceptionHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/delete_schedule_exception"
	getAppointmentHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/get_available_slots"
	getQueueHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/get_queue"
	getScheduleConfigHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/get_schedule_config"
	getShopStatusHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/get_shop_status"
	listServicesHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/list_services"
	noShowAppointmentHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/no_show_appointment"
	skipAppointmentHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/skip_appointment"
	updateScheduleConfigHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/update_schedule_config"
	upsertScheduleExceptionHandler "github.com/m04kA/SBS-SchedulingService/internal/api/handlers/upsert_schedule_exception"
	"github.com/m04kA/SBS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SBS-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/schedule"
	notifyServiceClient "github.com/m04kA/SBS-SchedulingService/internal/integrations/notifyservice"
	catalogService "github.com/m04kA/SBS-SchedulingService/internal/service/catalog"
	queueService "github.com/m04kA/SBS-SchedulingService/internal/service/queue"
	scheduleService "github.com/m04kA/SBS-SchedulingService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SBS-SchedulingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SBS-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SBS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SBS-SchedulingService/pkg/logger"
	"github.com/m04kA/SBS-SchedulingService/pkg/metrics"
	"github.com/m04kA/SBS-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/SBS-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SBS-SchedulingService...")
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

	// Инициализируем клиент NotifyService
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		catalogRepository     *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	queueSvc := queueService.NewService(
		appointmentRepository,
		notifyClient,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		catalogRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		catalogRepository,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(queueSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(queueSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(queueSvc, log)
	skipAppointment := skipAppointmentHandler.NewHandler(queueSvc, log)
	noShowAppointment := noShowAppointmentHandler.NewHandler(queueSvc, log)
	getQueue := getQueueHandler.NewHandler(queueSvc, log)
	callNext := callNextHandler.NewHandler(queueSvc, log)
	getShopStatus := getShopStatusHandler.NewHandler(scheduleSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)
	upsertScheduleException := upsertScheduleExceptionHandler.NewHandler(scheduleSvc, log)
	deleteScheduleException := deleteScheduleExceptionHandler.NewHandler(scheduleSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)

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

	// Доступные слоты на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи (клиент или сотрудник; сотрудник определяется по X-User-ID)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Статус барбершопа (открыт/закрыт сейчас)
	api.HandleFunc("/schedule/status", getShopStatus.Handle).Methods(http.MethodGet)

	// Расписание работы
	api.HandleFunc("/schedule/config", getScheduleConfig.Handle).Methods(http.MethodGet)

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Очередь ---
	// Текущая очередь на сегодня
	protected.HandleFunc("/queue", getQueue.Handle).Methods(http.MethodGet)

	// Вызов следующего клиента
	protected.HandleFunc("/queue/call-next", callNext.Handle).Methods(http.MethodPost)

	// --- Записи ---
	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Пропуск клиента (перемещение в конец очереди)
	protected.HandleFunc("/appointments/{appointmentId}/skip", skipAppointment.Handle).Methods(http.MethodPatch)

	// Завершение обслуживания
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// Отметка о неявке
	protected.HandleFunc("/appointments/{appointmentId}/no-show", noShowAppointment.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Управление расписанием ---
	// Обновление базового расписания
	protected.HandleFunc("/schedule/config", updateScheduleConfig.Handle).Methods(http.MethodPut)

	// Исключения на конкретные даты
	protected.HandleFunc("/schedule/exceptions/{date}", upsertScheduleException.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/schedule/exceptions/{date}", deleteScheduleException.Handle).Methods(http.MethodDelete)

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
