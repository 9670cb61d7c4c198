package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/config"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/delivery/httpd"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/repository"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/integration"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/notify"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/scrape"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/worker"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/worker/queue"
)

type App struct {
	server       *http.Server
	logger       zerolog.Logger
	config       *config.Config
	db           *sql.DB
	notifyWorker worker.NotifyWorker
	rabbitMQRepo repository.RabbitMQRepository
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	rabbitMQRepo, err := repository.NewRabbitMQRepository(cfg.RabbitMQ.URL, log)
	if err != nil {
		return nil, err
	}

	if err := rabbitMQRepo.SetupQueue(
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.QueueName,
		cfg.RabbitMQ.RoutingKey,
	); err != nil {
		return nil, err
	}

	publisher := queue.NewRabbitMQPublisher(rabbitMQRepo.Channel(), log)
	consumer := queue.NewRabbitMQConsumer(
		rabbitMQRepo.Channel(),
		cfg.RabbitMQ.QueueName,
		cfg.RabbitMQ.ConsumerTag,
		cfg.RabbitMQ.PrefetchCount,
		log,
	)

	postgresRepo := repository.NewPostgresRepository(db, log)
	studentRepo := repository.NewStudentRepository(db, log)
	assignmentRepo := repository.NewAssignmentRepository(db, log)

	fetcher := scrape.NewCourseFetcher(
		cfg.LMS.AssignmentsURL,
		cfg.LMS.CourseTimeout,
		log,
	)

	aggregator := scrape.NewAggregator(
		fetcher,
		cfg.LMS.MaxWorkers,
		cfg.LMS.OverallDeadline,
		log,
	)

	pushClient := integration.NewNtfyClient(
		cfg.Notify.URL,
		cfg.Notify.Timeout,
		cfg.Notify.RetryCount,
		cfg.Notify.RetryDelay,
		log,
	)

	notifyService := notify.NewService(
		studentRepo,
		assignmentRepo,
		pushClient,
		notify.Config{
			MaxItems:         cfg.Notify.MaxItems,
			ReminderPriority: cfg.Notify.ReminderPriority,
			AllClearPriority: cfg.Notify.AllClearPriority,
			ReminderTags:     cfg.Notify.ReminderTags,
			AllClearTags:     cfg.Notify.AllClearTags,
		},
		log,
	)

	scrapeService := service.NewScrapeService(
		aggregator,
		cfg.LMS.UserAgent,
		cfg.LMS.Referer,
		log,
	)

	syncService := service.NewSyncService(
		studentRepo,
		assignmentRepo,
		publisher,
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.RoutingKey,
		log,
	)

	studentService := service.NewStudentService(studentRepo, log)

	notifyPool := worker.NewPool(cfg.RabbitMQ.WorkerCount, cfg.RabbitMQ.WorkerCount*10, log)
	notifyWorker := worker.NewNotifyWorker(
		notifyPool,
		consumer,
		studentRepo,
		assignmentRepo,
		notifyService,
		log,
	)

	handler := httpd.NewHandler(
		scrapeService,
		syncService,
		studentService,
		notifyService,
		postgresRepo,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(120 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:       server,
		logger:       log,
		config:       cfg,
		db:           db,
		notifyWorker: notifyWorker,
		rabbitMQRepo: rabbitMQRepo,
	}, nil
}

func (a *App) Run() error {
	ctx := context.Background()
	if err := a.notifyWorker.Start(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to start notify worker")
		return err
	}

	a.logger.Info().Msgf("Starting assignment tracker on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down assignment tracker...")

	if err := a.notifyWorker.Stop(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to stop notify worker")
	}

	if a.rabbitMQRepo != nil {
		if err := a.rabbitMQRepo.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		return err
	}

	a.logger.Info().Msg("Assignment tracker stopped")
	return nil
}
