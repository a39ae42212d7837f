package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/data/db"
	"github.com/openvp/showcase-backend/internal/platform/envutil"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
}

func New() (*App, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	database, err := db.New(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("auto migration: %w", err)
	}
	theDB := database.DB()

	reposet := wireRepos(theDB, log)
	clientset := wireClients(log, cfg)
	serviceset := wireServices(theDB, log, cfg, reposet, clientset)

	return &App{
		Log:      log,
		DB:       theDB,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Clients:  clientset,
	}, nil
}

func (a *App) Close() {
	a.Clients.Close()
	a.Log.Sync()
}
