package main

import (
	"log"
	"net/http"
	"os"

	_ "commune/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"commune/internal/auth"
	"commune/internal/cache"
	"commune/internal/config"
	"commune/internal/db"
	"commune/internal/handler"
	"commune/internal/model"
	"commune/internal/repository"
	"commune/internal/router"
	"commune/internal/service"
)

// @title Commune API
// @version 1.0
// @description Minimal social-networking backend: users, posts, groups and direct messages.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Session token issued by /users/login (raw token, no scheme prefix).
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
			&model.Message{},
			&model.Post{},
			&model.Group{},
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
		&model.Group{},
		&model.Post{},
		&model.Message{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	groupRepo := repository.NewGroupRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	// Initialize auth components
	credentials := auth.NewCredentialManager()
	tokens := auth.NewTokenService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, credentials, tokens, cacheClient)
	userService := service.NewUserService(userRepo, cacheClient)
	postService := service.NewPostService(postRepo, groupRepo, cacheClient)
	groupService := service.NewGroupService(groupRepo, userRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	groupHandler := handler.NewGroupHandler(groupService)
	messageHandler := handler.NewMessageHandler(messageService)

	// Register routes
	router.Register(
		e,
		auth.Guard(tokens),
		authHandler,
		userHandler,
		postHandler,
		groupHandler,
		messageHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Printf("listening on %s (swagger at /swagger/index.html)", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
