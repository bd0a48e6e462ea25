package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pageza/dietwise/backend/config"
	"github.com/pageza/dietwise/backend/internal/database"
)

func main() {
	// Parse command line flags
	driver := flag.String("driver", "", "Override DB_DRIVER (postgres or sqlite)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if *driver != "" {
		cfg.DBDriver = *driver
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	fmt.Println("All migrations applied successfully.")
}
