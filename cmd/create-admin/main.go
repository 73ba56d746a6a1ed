package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/stemsi/academy-backoffice/internal/config"
	"github.com/stemsi/academy-backoffice/internal/database"
	"github.com/stemsi/academy-backoffice/internal/logger"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/resource"
	"github.com/stemsi/academy-backoffice/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()
	if cfg.StoreDriver == config.StoreDriverMemory {
		fmt.Println("Error: create-admin needs a persistent store (STORE_DRIVER=postgres)")
		os.Exit(1)
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Open Stores ───────────────────────────────────────────────────
	stores, err := database.OpenStores(ctx, cfg, resource.Default(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open stores")
	}
	defer stores.Close()

	authService := service.NewAuthService(cfg, stores.Users, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin User ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return
	}
	password := string(bytePassword)
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	// The first admin goes through Bootstrap; later ones are plain registrations.
	user, err := authService.Bootstrap(ctx, name, email, password)
	if errors.Is(err, service.ErrAlreadyBootstrapped) {
		user, err = authService.Register(ctx, model.RegisterRequest{
			Name:     name,
			Email:    email,
			Password: password,
			Role:     model.RoleAdmin,
		})
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %s\n", user.Name, user.Email, user.ID)
}
