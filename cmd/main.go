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

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"

	"github.com/ddduartediego/BelloProject-sub000/internal/api"
	checkConflictHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/check_conflict"
	commitBookingHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/commit_booking"
	deleteScheduleRulesHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/delete_schedule_rules"
	getAppointmentHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/get_appointment"
	getScheduleRulesHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/get_schedule_rules"
	getSlotsHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/get_slots"
	getWorkingHoursHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/get_working_hours"
	listAppointmentsHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/list_appointments"
	listClientAppointmentsHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/list_client_appointments"
	replaceWorkingHoursHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/replace_working_hours"
	transitionStatusHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/transition_status"
	updateScheduleRulesHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/update_schedule_rules"
	"github.com/ddduartediego/BelloProject-sub000/internal/config"
	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/internal/engine/conflicts"
	"github.com/ddduartediego/BelloProject-sub000/internal/infra/lock"
	appointmentRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/appointment"
	catalogRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/catalog"
	rulesRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/rules"
	hoursRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/workinghours"
	appointmentsService "github.com/ddduartediego/BelloProject-sub000/internal/service/appointments"
	scheduleService "github.com/ddduartediego/BelloProject-sub000/internal/service/schedule"
	checkConflictUC "github.com/ddduartediego/BelloProject-sub000/internal/usecase/check_conflict"
	commitBookingUC "github.com/ddduartediego/BelloProject-sub000/internal/usecase/commit_booking"
	getSlotsUC "github.com/ddduartediego/BelloProject-sub000/internal/usecase/get_slots"
	transitionStatusUC "github.com/ddduartediego/BelloProject-sub000/internal/usecase/transition_status"
	"github.com/ddduartediego/BelloProject-sub000/pkg/dbmetrics"
	"github.com/ddduartediego/BelloProject-sub000/pkg/logger"
	"github.com/ddduartediego/BelloProject-sub000/pkg/metrics"
	"github.com/ddduartediego/BelloProject-sub000/pkg/txmanager"
)

// Хранилища, общие для postgres и memory
type (
	appointmentStore interface {
		commitBookingUC.AppointmentRepository
		getSlotsUC.AppointmentRepository
		transitionStatusUC.AppointmentRepository
		appointmentsService.AppointmentRepository
		conflicts.AppointmentReader
	}
	catalogStore interface {
		commitBookingUC.CatalogRepository
		getSlotsUC.CatalogRepository
		checkConflictUC.CatalogRepository
		scheduleService.CatalogRepository
	}
	hoursStore interface {
		getSlotsUC.WorkingHoursRepository
		scheduleService.WorkingHoursRepository
	}
	txManager interface {
		commitBookingUC.TransactionManager
		scheduleService.TransactionManager
	}
)

type storage struct {
	appointments appointmentStore
	catalog      catalogStore
	hours        hoursStore
	rules        scheduleService.RulesRepository
	tx           txManager
}

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

	log.Info("Starting Bello scheduling service...")
	log.Info("Configuration loaded from config.toml (storage=%s, locking=%s)", cfg.Storage.Driver, cfg.Locking.Mode)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var store storage
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
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

		// Обёртка пишет метрики запросов; без метрик она только передаёт вызовы
		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		store = storage{
			appointments: appointmentRepo.NewRepository(wrappedDB),
			catalog:      catalogRepo.NewRepository(wrappedDB),
			hours:        hoursRepo.NewRepository(wrappedDB),
			rules:        rulesRepo.NewRepository(wrappedDB),
			tx:           txmanager.NewTransactionManager(wrappedDB),
		}

	case config.StorageMemory:
		catalog := catalogRepo.NewMemoryRepository()
		for _, p := range cfg.Catalog.Professionals {
			catalog.AddProfessional(domain.Professional{ID: p.ID, TenantID: p.TenantID, Name: p.Name, Active: true})
		}
		for _, s := range cfg.Catalog.Services {
			catalog.AddService(domain.Service{ID: s.ID, TenantID: s.TenantID, Name: s.Name, DurationMinutes: s.DurationMinutes, Active: true})
		}
		log.Warn("In-memory storage: data is lost on restart (%d professional(s), %d service(s) loaded)",
			len(cfg.Catalog.Professionals), len(cfg.Catalog.Services))

		store = storage{
			appointments: appointmentRepo.NewMemoryRepository(),
			catalog:      catalog,
			hours:        hoursRepo.NewMemoryRepository(),
			rules:        rulesRepo.NewMemoryRepository(),
			tx:           txmanager.Noop{},
		}
	}

	// Блокировка специалиста на время фиксации записи
	var locker commitBookingUC.Locker
	switch cfg.Locking.Mode {
	case config.LockRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = lock.NewRedisLocker(redisClient, lock.RedisOptions{
			TTL:           cfg.Locking.TTL(),
			RetryInterval: cfg.Locking.RetryInterval(),
		}, log)
		log.Info("Distributed locking via redis (addr=%s)", cfg.Redis.Addr)

	default:
		locker = lock.NewKeyedMutex()
		log.Info("In-process locking enabled")
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		store.rules,
		store.hours,
		store.catalog,
		store.tx,
		cfg.Scheduling.Rules(),
		log,
	)
	appointmentSvc := appointmentsService.NewService(store.appointments, log)

	// Проверка конфликтов по зафиксированному состоянию
	checker := conflicts.NewRemoteChecker(store.appointments, scheduleSvc, log)

	// Инициализируем use cases
	getSlotsUseCase := getSlotsUC.NewUseCase(
		store.appointments,
		store.hours,
		scheduleSvc,
		store.catalog,
		log,
	)
	checkConflictUseCase := checkConflictUC.NewUseCase(checker, store.catalog, metricsCollector, log)
	commitBookingUseCase := commitBookingUC.NewUseCase(
		store.appointments,
		store.catalog,
		checker,
		locker,
		store.tx,
		metricsCollector,
		cfg.Locking.WaitTimeout(),
		log,
	)
	transitionStatusUseCase := transitionStatusUC.NewUseCase(store.appointments, log)

	// Инициализируем handlers
	handlers := api.Handlers{
		GetSlots:               getSlotsHandler.NewHandler(getSlotsUseCase, location, log),
		CheckConflict:          checkConflictHandler.NewHandler(checkConflictUseCase, location, log),
		CommitBooking:          commitBookingHandler.NewHandler(commitBookingUseCase, location, log),
		TransitionStatus:       transitionStatusHandler.NewHandler(transitionStatusUseCase, log),
		GetAppointment:         getAppointmentHandler.NewHandler(appointmentSvc, log),
		ListAppointments:       listAppointmentsHandler.NewHandler(appointmentSvc, location, log),
		ListClientAppointments: listClientAppointmentsHandler.NewHandler(appointmentSvc, log),
		GetScheduleRules:       getScheduleRulesHandler.NewHandler(scheduleSvc, log),
		UpdateScheduleRules:    updateScheduleRulesHandler.NewHandler(scheduleSvc, log),
		DeleteScheduleRules:    deleteScheduleRulesHandler.NewHandler(scheduleSvc, log),
		GetWorkingHours:        getWorkingHoursHandler.NewHandler(scheduleSvc, log),
		ReplaceWorkingHours:    replaceWorkingHoursHandler.NewHandler(scheduleSvc, log),
	}

	// Настраиваем роутер
	r := api.NewRouter(handlers, api.RouterOptions{
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
		Logger:      log,
	})

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
