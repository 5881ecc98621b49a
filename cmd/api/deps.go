package main

import (
	"log"

	"devfinance/internal/infrastructure/postgres"
	httphandlers "devfinance/internal/interfaces/http"
	"devfinance/internal/shared/auth"
	"devfinance/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	CategoryHandler    *httphandlers.CategoryHandler
	TransactionHandler *httphandlers.TransactionHandler

	// Auth
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
	}

	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	return &Dependencies{
		DB:                 db,
		AuthHandler:        httphandlers.NewAuthHandler(userRepo, jwt),
		CategoryHandler:    httphandlers.NewCategoryHandler(categoryRepo),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionRepo),
		JWT:                jwt,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
