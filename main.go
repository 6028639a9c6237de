package main

import (
	"flag"
	"log"

	"github.com/tuanminh7/website-lms/internal/app"
	"github.com/tuanminh7/website-lms/internal/config"
	"github.com/tuanminh7/website-lms/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "thư mục chứa file cấu hình")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer logger.Log.Sync()

	application.Run()
}
