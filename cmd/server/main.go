package main

import (
	"log"
	"os"

	"suicidestats/internal/api"
	"suicidestats/internal/config"
)

func main() {
	// 1. Config: SUICIDESTATS_* env > config file > defaults
	cfg, err := config.Load(os.Getenv("SUICIDESTATS_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	// 2. Start Server (sample data, if any, loads in the background)
	log.Fatal(api.Serve(cfg))
}
