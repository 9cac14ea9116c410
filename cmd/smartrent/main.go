package main

import (
	"flag"
	"log"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/app"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/config"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
