// Command main runs the database seeder for the gallery application.
package main

import (
	"context"
	"flag"
	"log"

	"gallery/internal/config"
	"gallery/internal/database"
	"gallery/internal/repository"
	"gallery/internal/seed"
	"gallery/internal/service"
	"gallery/internal/storage"
)

func main() {
	numMessages := flag.Int("messages", 20, "Number of messages to create")
	numPosts := flag.Int("posts", 12, "Number of gallery posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d messages, %d posts, clean=%v\n", *numMessages, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	store := storage.NewFileStore(cfg.MediaRoot)
	postRepo := repository.NewPostRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	uploads := service.NewUploadService(postRepo, store, cfg)

	s := seed.NewSeeder(db, messageRepo, uploads)
	ctx := context.Background()

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.CreateMessages(ctx, *numMessages); err != nil {
		log.Fatalf("Seeding messages failed: %v", err)
	}
	if err := s.CreatePosts(ctx, *numPosts); err != nil {
		log.Fatalf("Seeding posts failed: %v", err)
	}

	log.Println("Seeding complete")
}
