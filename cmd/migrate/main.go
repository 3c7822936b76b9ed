package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/config"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/database"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/migrations"
)

// Usage: migrate [-dir path] [command [args...]]
// Commands are goose commands (up, down, status, redo, version...). Default is up.
// Without -dir the migrations compiled into the binary are used.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using environment only: %v", err)
	}

	var dir string
	flag.StringVar(&dir, "dir", "", "directory with migration files (default: embedded)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.Log.Level)

	db, err := database.WaitForDB(cfg, 5, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command, args := arguments[0], arguments[1:]

	var fsys fs.FS = migrations.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	}

	if err := database.Migrate(context.Background(), db, fsys, command, args...); err != nil {
		appLogger.Fatal("goose "+command+" failed", err)
	}

	appLogger.Infof("goose %s success", command)
}
