package main

import (
	api "brf-backend/cmd/api"
	authUsecase "brf-backend/internal/auth/usecase"
	"brf-backend/internal/notification"
	persondomain "brf-backend/internal/person/domain"
	personRepo "brf-backend/internal/person/repository"
	personUsecase "brf-backend/internal/person/usecase"
	"brf-backend/internal/reminder"
	"brf-backend/internal/stream"
	taskdomain "brf-backend/internal/task/domain"
	taskRepo "brf-backend/internal/task/repository"
	taskUsecase "brf-backend/internal/task/usecase"
	"brf-backend/pkg/config"
	"brf-backend/pkg/database"
	"brf-backend/pkg/fcm"
	"brf-backend/pkg/logger"
)

func main() {
	log := logger.Init("brf-backend")

	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := db.AutoMigrate(&persondomain.Person{}, &persondomain.DeviceToken{}, &taskdomain.Task{}); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	// Repositories
	people := personRepo.NewPersonRepository(db)
	devices := personRepo.NewDeviceTokenRepository(db)
	tasks := taskRepo.NewTaskRepository(db)

	// FCM client (optional: without credentials the board still runs, rolls
	// recurring tasks, and simply never pushes). A nil Sender interface keeps
	// the notifier disabled.
	var sender notification.Sender
	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.WithError(err).Warn("FCM init failed, push notifications disabled")
		} else {
			sender = fcmClient
		}
	} else {
		log.Info("no Firebase credentials configured, push notifications disabled")
	}

	notifier := notification.NewService(sender, people, devices, cfg.Location)

	// Live snapshot fan-out
	sseManager := stream.NewManager()
	go sseManager.Run()
	publisher := stream.NewPublisher(people, tasks, sseManager)

	// Reminder engine: fixed cadence plus a pass on every board mutation
	scheduler := reminder.NewScheduler(tasks, notifier, cfg.ReminderInterval, cfg.Location)

	// Usecases
	personUc := personUsecase.NewPersonUsecase(people, devices, tasks)
	taskUc := taskUsecase.NewTaskUsecase(tasks, people, cfg.Location)

	onChange := func() {
		publisher.Publish()
		scheduler.Poke()
	}
	personUc.SetChangeListener(onChange)
	taskUc.SetChangeListener(onChange)

	authUc, err := authUsecase.NewAuthUsecase(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize admin auth")
	}

	if err := scheduler.Start(); err != nil {
		log.WithError(err).Fatal("failed to start reminder scheduler")
	}
	defer scheduler.Stop()

	handler := api.NewHandler(authUc, personUc, taskUc, sseManager, cfg)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
