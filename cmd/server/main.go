package main

import (
	"log"
	"net/http"
	"os"

	_ "tabletoprpg/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tabletoprpg/internal/auth"
	"tabletoprpg/internal/cache"
	"tabletoprpg/internal/config"
	"tabletoprpg/internal/db"
	"tabletoprpg/internal/handler"
	"tabletoprpg/internal/model"
	"tabletoprpg/internal/repository"
	"tabletoprpg/internal/router"
	"tabletoprpg/internal/service"
)

// @title Tabletop RPG Campaign API
// @version 1.0
// @description Campaign, character, inventory and journal management for tabletop RPG groups, with JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.InventoryEntry{},
			&model.JournalEntry{},
			&model.Character{},
			&model.CampaignMember{},
			&model.Campaign{},
			&model.Item{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.Campaign{},
		&model.CampaignMember{},
		&model.Character{},
		&model.InventoryEntry{},
		&model.JournalEntry{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	campaignRepo := repository.NewCampaignRepository(gormDB)
	memberRepo := repository.NewMemberRepository(gormDB)
	characterRepo := repository.NewCharacterRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	inventoryRepo := repository.NewInventoryRepository(gormDB)
	journalRepo := repository.NewJournalRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, campaignRepo, characterRepo, journalRepo, cacheClient)
	campaignService := service.NewCampaignService(campaignRepo, memberRepo, characterRepo, userRepo, cacheClient)
	characterService := service.NewCharacterService(characterRepo, campaignRepo, memberRepo, userRepo)
	itemService := service.NewItemService(itemRepo, inventoryRepo, userRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, characterRepo, campaignRepo, itemRepo, cacheClient)
	journalService := service.NewJournalService(journalRepo, campaignRepo, memberRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	campaignHandler := handler.NewCampaignHandler(campaignService)
	characterHandler := handler.NewCharacterHandler(characterService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	itemHandler := handler.NewItemHandler(itemService)
	journalHandler := handler.NewJournalHandler(journalService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		campaignHandler,
		characterHandler,
		inventoryHandler,
		itemHandler,
		journalHandler,
	)

	// Log swagger full path
	var swaggerURL string
	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include scheme (http:// or https://)
		if len(cfg.SwaggerHost) >= 7 && cfg.SwaggerHost[:7] == "http://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else if len(cfg.SwaggerHost) >= 8 && cfg.SwaggerHost[:8] == "https://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	} else {
		swaggerURL = "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
