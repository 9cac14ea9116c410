package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/app"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/config"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "path to the YAML configuration file")
	email := flag.String("email", "", "superuser email (required)")
	firstName := flag.String("first-name", "", "first name (required)")
	lastName := flag.String("last-name", "", "last name (required)")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || strings.TrimSpace(*firstName) == "" || strings.TrimSpace(*lastName) == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	password, err := readPassword()
	if err != nil {
		log.Fatalf("password: %v", err)
	}

	ctx := context.Background()
	c, err := app.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("app: %v", err)
	}
	defer c.Close()

	account, err := c.AccountSvc.CreateSuperuser(ctx, *email, password, domain.AccountFields{
		FirstName: strings.TrimSpace(*firstName),
		LastName:  strings.TrimSpace(*lastName),
	})
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			log.Fatalf("an account with this %s already exists", conflict.Field)
		}
		log.Fatalf("create superuser: %v", err)
	}
	fmt.Printf("Superuser created successfully.\n%s\n", account)
}

// readPassword prompts twice without echo and requires both entries to match
func readPassword() (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	fmt.Fprint(os.Stderr, "Password (again): ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords didn't match")
	}
	if len(first) == 0 {
		return "", errors.New("blank passwords aren't allowed")
	}
	return string(first), nil
}
