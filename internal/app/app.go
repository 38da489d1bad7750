package app

import (
	"equiptrack/config"
	"equiptrack/internal/database"
	"equiptrack/internal/events"
	"equiptrack/internal/handlers/middleware"
	"equiptrack/internal/logger"
	"equiptrack/internal/repositories"
	"equiptrack/internal/services"
	"equiptrack/internal/websockets"

	recordController "equiptrack/internal/controllers/records"
	referenceController "equiptrack/internal/controllers/reference"
	userController "equiptrack/internal/controllers/users"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService *services.TransactionService
	CertificateService *services.CertificateService

	// Repositories
	UserRepo     repositories.UserRepository
	CompanyRepo  repositories.CompanyRepository
	EngineerRepo repositories.EngineerRepository
	RecordRepo   repositories.ServiceRecordRepository

	// Controllers
	UserController      *userController.UserController
	ReferenceController *referenceController.ReferenceController
	RecordController    *recordController.RecordController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)
	certificateService := services.NewCertificateService(&db, config.CertificatePrefix)

	// Initialize repositories
	userRepo := repositories.NewUser(db)
	companyRepo := repositories.NewCompany(db)
	engineerRepo := repositories.NewEngineer(db)
	recordRepo := repositories.NewServiceRecord(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, eventBus, config, userRepo)
	userController := userController.New(userRepo, config)
	referenceController := referenceController.New(engineerRepo, companyRepo, userRepo, transactionService)
	recordController := recordController.New(recordRepo, certificateService, eventBus)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:            db,
		Config:              config,
		Middleware:          middleware,
		TransactionService:  transactionService,
		CertificateService:  certificateService,
		UserRepo:            userRepo,
		CompanyRepo:         companyRepo,
		EngineerRepo:        engineerRepo,
		RecordRepo:          recordRepo,
		UserController:      userController,
		ReferenceController: referenceController,
		RecordController:    recordController,
		Websocket:           websocket,
		EventBus:            eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.CertificateService,
		a.UserController,
		a.ReferenceController,
		a.RecordController,
		a.UserRepo,
		a.CompanyRepo,
		a.EngineerRepo,
		a.RecordRepo,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
