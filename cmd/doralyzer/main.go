package main

import (
	"log"
	"os"

	"doralyzer/internal/app"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/values.yaml"
	}

	application, err := app.NewApp(configPath)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}
	defer application.Close()

	if err := application.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
