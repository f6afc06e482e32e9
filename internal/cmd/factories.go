package cmd

import (
	adapteridle "github.com/timeboxd/timeboxd/internal/adapters/idle"
	adapternotify "github.com/timeboxd/timeboxd/internal/adapters/notify"
	adaptersound "github.com/timeboxd/timeboxd/internal/adapters/sound"
	adapterstorage "github.com/timeboxd/timeboxd/internal/adapters/storage"
	"github.com/timeboxd/timeboxd/internal/config"
	"github.com/timeboxd/timeboxd/internal/ports"
	"github.com/timeboxd/timeboxd/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	IdleMonitor         *services.IdleMonitor
	NotificationService *services.NotificationService
	SettingsService     *services.SettingsService
	TimeboxService      *services.TimeboxService
	TimerEngine         *services.TimerEngine

	Settings *config.Settings

	// Internal - for cleanup only
	repo ports.TimeboxRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	repo, err := adapterstorage.NewSQLiteRepository(settings.ResolvedDBPath())
	if err != nil {
		return nil, err
	}

	callTimeout := settings.CallTimeout()
	idleSource := adapteridle.NewSource()
	notifier := adapternotify.NewNotifier()
	soundPlayer := adaptersound.NewPlayer(settings.SoundOn())

	notificationService := services.NewNotificationService(notifier, soundPlayer, settings.NotificationsOn(), callTimeout)
	timeboxService := services.NewTimeboxService(repo, nil, callTimeout)
	settingsService := services.NewSettingsService(repo, callTimeout)
	timerEngine := services.NewTimerEngine(repo, repo, notificationService, callTimeout)
	idleMonitor := services.NewIdleMonitor(idleSource, repo, timeboxService, notificationService, callTimeout)

	return &Container{
		IdleMonitor:         idleMonitor,
		NotificationService: notificationService,
		Settings:            settings,
		SettingsService:     settingsService,
		TimeboxService:      timeboxService,
		TimerEngine:         timerEngine,
		repo:                repo,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.repo != nil {
		return c.repo.Close()
	}
	return nil
}
