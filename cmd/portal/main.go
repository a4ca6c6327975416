package main

import (
	"log"

	"github.com/joho/godotenv"

	"parkportal/internal/config"
	"parkportal/internal/server"
)

func main() {
	godotenv.Load()

	s, err := server.New(config.Load())
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	s.Run()
}
