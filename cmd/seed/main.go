package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/mood-diary/config"
	"github.com/oksasatya/mood-diary/internal/application"
	"github.com/oksasatya/mood-diary/internal/container"
	"github.com/oksasatya/mood-diary/internal/domain/entity"
	"github.com/oksasatya/mood-diary/pkg/helpers"
)

const seedDays = 30

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	// the seed writes straight to the store; nothing to invalidate
	cfg.CacheEnabled = false

	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialise dependencies: %v", err)
	}
	defer c.Close()

	username, password, name := "demo", "password123", "Demo User"
	var userID string
	p, err := c.AuthService.Register(ctx, username, password, name)
	switch {
	case err == nil:
		userID = p.ID
	case errors.Is(err, application.ErrUsernameAlreadyExists):
		pair, err := c.AuthService.Login(ctx, username, password)
		if err != nil {
			log.Fatalf("demo user exists with a different password: %v", err)
		}
		if userID, err = c.AuthService.Authenticate(pair.AccessToken); err != nil {
			log.Fatalf("failed to resolve demo user: %v", err)
		}
	default:
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", userID, username, password)

	today := entity.Day(time.Now())
	created := 0
	for i := 0; i < seedDays; i++ {
		d := today.AddDate(0, 0, -i)
		in := application.CreateMoodInput{
			Date:  d,
			Value: entity.MinMoodValue + (i*7)%(entity.MaxMoodValue-entity.MinMoodValue+1),
			Note:  "seeded on " + entity.FormatDate(today),
		}
		if _, err := c.MoodService.Create(ctx, userID, in); err != nil {
			if errors.Is(err, application.ErrMoodStampAlreadyExists) {
				continue
			}
			log.Fatalf("failed to seed mood for %s: %v", entity.FormatDate(d), err)
		}
		created++
	}
	fmt.Printf("seeded %d mood stamps (%d already present)\n", created, seedDays-created)
}
