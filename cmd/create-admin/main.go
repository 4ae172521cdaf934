package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/lequiz/lequiz-backend/internal/config"
	"github.com/lequiz/lequiz-backend/internal/database"
	"github.com/lequiz/lequiz-backend/internal/logger"
	"github.com/lequiz/lequiz-backend/internal/model"
	"github.com/lequiz/lequiz-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// Interactive bootstrapper for admin accounts. The server has no signup
// surface, so the first (and every) admin is created from the shell.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	adminRepo := repository.NewAdminRepository(pool)
	in := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Admin Account ===")

	name, err := promptLine(in, "Name: ")
	if err != nil {
		fail(err)
	}
	email, err := promptLine(in, "Email: ")
	if err != nil {
		fail(err)
	}
	if !strings.Contains(email, "@") {
		fail(fmt.Errorf("%q does not look like an email address", email))
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		fail(err)
	}
	if len(password) < 6 {
		fail(fmt.Errorf("password must be at least 6 characters"))
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		fail(err)
	}
	if password != confirm {
		fail(fmt.Errorf("passwords do not match"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	admin := &model.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nAdmin %q (%s) created with id %d\n", admin.Name, admin.Email, admin.ID)
}

// promptLine reads one trimmed, non-empty line.
func promptLine(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%svalue is required", label)
	}
	return line, nil
}

// promptPassword reads a line with terminal echo turned off.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
