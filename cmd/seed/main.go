package main

import (
	"context"
	"log"

	"commune/internal/auth"
	"commune/internal/config"
	"commune/internal/db"
	"commune/internal/model"
	"commune/internal/repository"
)

// seedUser is a demo account created by the seeder.
type seedUser struct {
	Username string
	Email    string
	Password string
}

var seedUsers = []seedUser{
	{Username: "alice", Email: "alice@example.com", Password: "password1"},
	{Username: "bob", Email: "bob@example.com", Password: "password2"},
	{Username: "carol", Email: "carol@example.com", Password: "password3"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Message{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	groupRepo := repository.NewGroupRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	credentials := auth.NewCredentialManager()
	ctx := context.Background()

	// Create demo users, skipping ones that already exist.
	users := make([]model.User, 0, len(seedUsers))
	created := 0
	for _, su := range seedUsers {
		if existing, err := userRepo.FindByUsername(ctx, su.Username); err == nil {
			users = append(users, *existing)
			continue
		}

		hash, err := credentials.Hash(su.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Username, err)
		}
		user := model.User{
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: hash,
		}
		if err := userRepo.Create(ctx, &user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Username, err)
		}
		users = append(users, user)
		created++
	}
	log.Printf("Users ready: %d total, %d newly created", len(users), created)

	if created == 0 {
		log.Println("Nothing new to seed, done")
		return
	}

	// A group containing the first two users, with a post inside it.
	group := model.Group{
		Name:        "book club",
		Description: "weekly reading circle",
		Members:     []model.User{users[0], users[1]},
	}
	if err := groupRepo.Create(ctx, &group); err != nil {
		log.Fatalf("Failed to create group: %v", err)
	}

	posts := []model.Post{
		{AuthorID: users[0].ID, Content: "hello, world"},
		{AuthorID: users[1].ID, Content: "second post on the feed"},
		{AuthorID: users[0].ID, Content: "chapter one thoughts", GroupID: &group.ID},
	}
	for i := range posts {
		if err := postRepo.Create(ctx, &posts[i]); err != nil {
			log.Fatalf("Failed to create post: %v", err)
		}
	}

	log.Printf("Seed completed: %d users, 1 group, %d posts", created, len(posts))
}
