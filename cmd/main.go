package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/barbershop-booking/internal/api"
	"github.com/m04kA/barbershop-booking/internal/api/middleware"
	"github.com/m04kA/barbershop-booking/internal/calendar"
	"github.com/m04kA/barbershop-booking/internal/config"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/appointment"
	"github.com/m04kA/barbershop-booking/internal/integrations/mailer"
	"github.com/m04kA/barbershop-booking/internal/ratelimit"
	"github.com/m04kA/barbershop-booking/internal/service/appointments"
	"github.com/m04kA/barbershop-booking/internal/service/availability"
	"github.com/m04kA/barbershop-booking/internal/service/catalog"
	"github.com/m04kA/barbershop-booking/internal/validation"
	"github.com/m04kA/barbershop-booking/pkg/dbmetrics"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/metrics"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := defaultConfigPath
	if p := os.Getenv("BARBER_CONFIG"); p != "" {
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

	log.Info("Starting barbershop-booking...")
	log.Info("Configuration loaded from %s (storage=%s)", configPath, cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Календарь салона
	loc, err := calendar.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Business.Timezone, err)
	}
	cal := calendar.New(loc)
	cal.SlotMinutes = cfg.Business.SlotMinutes
	cal.HorizonDays = cfg.Business.HorizonDays

	// Redis нужен хранилищу или лимитеру, клиент общий
	var redisClient *redis.Client
	if cfg.Storage.Driver == config.StorageRedis || cfg.RateLimit.Backend == config.StorageRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Хранилище записей
	var store appointment.Store
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := sqlx.Open("postgres", cfg.Database.DSN())
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

		if metricsCollector != nil {
			dbmetrics.Start(db, metricsCollector, "postgres", dbmetrics.DefaultInterval, stopMetricsCh)
			log.Info("Database metrics collection started")
		}
		store = appointment.NewPostgresStore(db)

	case config.StorageRedis:
		store = appointment.NewRedisStore(redisClient, cfg.Redis.Key)

	default:
		log.Warn("Using in-memory storage: appointments are lost on restart")
		store = appointment.NewMemoryStore()
	}

	if cfg.Storage.CacheTTLSeconds > 0 {
		store = appointment.NewCachedStore(store, time.Duration(cfg.Storage.CacheTTLSeconds)*time.Second)
		log.Info("Read cache enabled (ttl=%ds)", cfg.Storage.CacheTTLSeconds)
	}

	// Каталог услуг
	catalogSvc, err := catalog.NewService(cfg.CatalogServices(), log)
	if err != nil {
		log.Fatal("Failed to build service catalog: %v", err)
	}

	// Уведомления по почте (необязательны)
	var notifier appointments.Notifier
	var mailClient *mailer.Client
	if cfg.Mail.Enabled() {
		mailClient = mailer.NewClient(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			FromName: cfg.Mail.FromName,
			BaseURL:  cfg.Business.BaseURL,
			ShopName: cfg.Business.ShopName,
		}, log)
		notifier = mailClient
		log.Info("Mail notifications enabled (host=%s, port=%d)", cfg.Mail.Host, cfg.Mail.Port)
	} else {
		log.Warn("Mail is not configured, notifications are disabled")
	}

	var recorder appointments.MetricsRecorder
	if metricsCollector != nil {
		recorder = metricsCollector
	}

	// Инициализируем сервисы
	appointmentSvc := appointments.NewService(
		store,
		cal,
		validation.New(cal, catalogSvc),
		notifier,
		recorder,
		log,
		appointments.WithRetentionDays(cfg.Business.RetentionDays),
		appointments.WithNotifyTimeout(time.Duration(cfg.Mail.TimeoutSeconds)*time.Second),
	)
	availabilitySvc := availability.NewService(store, cal, log)

	// Лимит попыток записи
	var bookingLimiter ratelimit.Limiter
	if cfg.RateLimit.Backend == config.StorageRedis {
		bookingLimiter = ratelimit.NewRedisLimiter(redisClient,
			cfg.RateLimit.BookingLimit, cfg.RateLimit.BookingWindow(), cfg.RateLimit.Prefix)
	} else {
		bookingLimiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.BookingLimit, cfg.RateLimit.BookingWindow())
	}
	log.Info("Booking rate limit: %d per %s (backend=%s)",
		cfg.RateLimit.BookingLimit, cfg.RateLimit.BookingWindow(), cfg.RateLimit.Backend)

	adminGate := middleware.NewAdminGate(cfg.Admin.PasswordHash, log)
	if !adminGate.Enabled() {
		log.Warn("Admin password hash is not set, admin routes will reject every request")
	}

	clientIPs, err := middleware.NewClientIPResolver(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal("Failed to parse trusted proxies: %v", err)
	}

	deps := api.Deps{
		Catalog:        catalogSvc,
		Availability:   availabilitySvc,
		Appointments:   appointmentSvc,
		AdminGate:      adminGate,
		BookingLimiter: bookingLimiter,
		Clock:          &appointments.RealTimeProvider{},
		Logger:         log,
		CORSOrigins:    cfg.Server.CORSOrigins,
		ClientIPs:      clientIPs,
		ThrottleRPS:    cfg.RateLimit.GlobalRPS,
		ThrottleBurst:  cfg.RateLimit.GlobalBurst,
	}
	if metricsCollector != nil {
		deps.Metrics = metricsCollector
		deps.MetricsHandler = promhttp.Handler()
		deps.MetricsPath = cfg.Metrics.Path
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Периодическая очистка устаревших записей
	stopPurgeCh := make(chan struct{})
	purgeDone := make(chan struct{})
	go runPurger(appointmentSvc, time.Duration(cfg.Business.PurgeIntervalMinutes)*time.Minute, stopPurgeCh, purgeDone, log)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(deps),
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

	close(stopPurgeCh)
	<-purgeDone

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

	// Дожидаемся отправки уведомлений, включая SMTP-сессии, пережившие notify timeout
	appointmentSvc.Wait()
	if mailClient != nil {
		mailCtx, mailCancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		if err := mailClient.Wait(mailCtx); err != nil {
			log.Error("Pending mail was not delivered before shutdown: %v", err)
		}
		mailCancel()
	}

	log.Info("Server stopped gracefully")
}

// runPurger раз в interval удаляет записи старше срока хранения. interval <= 0 выключает очистку.
func runPurger(svc *appointments.Service, interval time.Duration, stop <-chan struct{}, done chan<- struct{}, log *logger.Logger) {
	defer close(done)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			res, err := svc.PurgeExpired(ctx, time.Now())
			cancel()
			if err != nil {
				log.Error("Purger: failed to purge expired appointments: %v", err)
				continue
			}
			if res.Removed > 0 {
				log.Info("Purger: removed %d expired appointments", res.Removed)
			}
		}
	}
}
