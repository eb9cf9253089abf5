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

	cancelMeetingHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/cancel_meeting"
	completeMeetingHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/complete_meeting"
	createBlockHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/create_block"
	createMeetingHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/create_meeting"
	deleteBlockHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/delete_block"
	getConsultantAvailabilityHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/get_consultant_availability"
	getConsultantMeetingsHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/get_consultant_meetings"
	getDaySlotsHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/get_day_slots"
	getMeetingHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/get_meeting"
	rescheduleMeetingHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/reschedule_meeting"
	updateConsultantAvailabilityHandler "github.com/m04kA/CRM-SchedulingService/internal/api/handlers/update_consultant_availability"
	"github.com/m04kA/CRM-SchedulingService/internal/api/middleware"
	"github.com/m04kA/CRM-SchedulingService/internal/config"
	availabilityRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/availability"
	blockRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/block"
	meetingRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/meeting"
	userRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/user"
	leadServiceClient "github.com/m04kA/CRM-SchedulingService/internal/integrations/leadservice"
	availabilityService "github.com/m04kA/CRM-SchedulingService/internal/service/availability"
	meetingsService "github.com/m04kA/CRM-SchedulingService/internal/service/meetings"
	createMeetingUC "github.com/m04kA/CRM-SchedulingService/internal/usecase/create_meeting"
	getDaySlotsUC "github.com/m04kA/CRM-SchedulingService/internal/usecase/get_day_slots"
	validateBookingUC "github.com/m04kA/CRM-SchedulingService/internal/usecase/validate_booking"
	"github.com/m04kA/CRM-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/CRM-SchedulingService/pkg/logger"
	"github.com/m04kA/CRM-SchedulingService/pkg/metrics"
	"github.com/m04kA/CRM-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/CRM-SchedulingService/pkg/txmanager"
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

	log.Info("Starting CRM-SchedulingService...")
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

	// Инициализируем клиента LeadService
	leadClient := leadServiceClient.NewClient(
		cfg.LeadService.URL,
		time.Duration(cfg.LeadService.Timeout)*time.Second,
		log,
	)
	log.Info("LeadService client initialized (url=%s, timeout=%ds)",
		cfg.LeadService.URL, cfg.LeadService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		userRepository         *userRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		blockRepository        *blockRepo.Repository
		meetingRepository      *meetingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		userRepository = userRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		blockRepository = blockRepo.NewRepository(wrappedDB)
		meetingRepository = meetingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		userRepository = userRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		blockRepository = blockRepo.NewRepository(db)
		meetingRepository = meetingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем use cases
	validateBookingUseCase := validateBookingUC.NewUseCase(
		availabilityRepository,
		blockRepository,
		log,
	)

	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		userRepository,
		availabilityRepository,
		blockRepository,
		meetingRepository,
		log,
	)

	createMeetingUseCase := createMeetingUC.NewUseCase(
		meetingRepository,
		userRepository,
		leadClient,
		validateBookingUseCase,
		txMgr,
		cfg.Scheduling.MinAdvanceHours,
		log,
	)

	// Инициализируем сервисы
	meetingSvc := meetingsService.NewService(
		meetingRepository,
		userRepository,
		validateBookingUseCase,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		blockRepository,
		userRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, cfg.Scheduling.MinAdvanceHours, log)
	createMeeting := createMeetingHandler.NewHandler(createMeetingUseCase, log)
	getMeeting := getMeetingHandler.NewHandler(meetingSvc, log)
	cancelMeeting := cancelMeetingHandler.NewHandler(meetingSvc, log)
	completeMeeting := completeMeetingHandler.NewHandler(meetingSvc, log)
	rescheduleMeeting := rescheduleMeetingHandler.NewHandler(meetingSvc, log)
	getConsultantMeetings := getConsultantMeetingsHandler.NewHandler(meetingSvc, log)
	getConsultantAvailability := getConsultantAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateConsultantAvailability := updateConsultantAvailabilityHandler.NewHandler(availabilitySvc, log)
	createBlock := createBlockHandler.NewHandler(availabilitySvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(availabilitySvc, log)

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

	// Получение слотов для записи на день
	api.HandleFunc("/slots", getDaySlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Встречи ---
	// Создание встречи
	protected.HandleFunc("/meetings", createMeeting.Handle).Methods(http.MethodPost)

	// Получение встречи по ID
	protected.HandleFunc("/meetings/{meetingId}", getMeeting.Handle).Methods(http.MethodGet)

	// Отмена встречи
	protected.HandleFunc("/meetings/{meetingId}/cancel", cancelMeeting.Handle).Methods(http.MethodPatch)

	// Завершение встречи
	protected.HandleFunc("/meetings/{meetingId}/complete", completeMeeting.Handle).Methods(http.MethodPatch)

	// Перенос встречи
	protected.HandleFunc("/meetings/{meetingId}/reschedule", rescheduleMeeting.Handle).Methods(http.MethodPatch)

	// --- Расписание консультанта ---
	// Список встреч консультанта
	protected.HandleFunc("/consultants/{consultantId}/meetings", getConsultantMeetings.Handle).Methods(http.MethodGet)

	// Просмотр недельного расписания и блокировок
	protected.HandleFunc("/consultants/{consultantId}/availability", getConsultantAvailability.Handle).Methods(http.MethodGet)

	// Полная замена недельного расписания
	protected.HandleFunc("/consultants/{consultantId}/availability", updateConsultantAvailability.Handle).Methods(http.MethodPut)

	// Создание блокировки
	protected.HandleFunc("/consultants/{consultantId}/blocks", createBlock.Handle).Methods(http.MethodPost)

	// Удаление блокировки
	protected.HandleFunc("/consultants/{consultantId}/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

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
