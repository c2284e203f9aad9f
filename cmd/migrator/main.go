package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelydev/apiClinica/config"
	"github.com/kelydev/apiClinica/database"
	"github.com/kelydev/apiClinica/logger"
	"github.com/kelydev/apiClinica/models"
	"github.com/kelydev/apiClinica/repository"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return
	}
	command := args[0]

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warningf("Error loading .env file: %v", err)
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch command {
	case "up":
		if err := database.Migrate(db); err != nil {
			logger.Fatalf("%v", err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := database.Rollback(db); err != nil {
			logger.Fatalf("%v", err)
		}
		fmt.Println("Last migration rolled back")
	case "status":
		if err := database.Status(db); err != nil {
			logger.Fatalf("error reading migration status: %v", err)
		}
	case "add-code":
		if len(args) < 3 {
			logger.Fatalf("usage: migrator add-code CODE ROLE")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		code := models.CodigoAcceso{Codigo: args[1], TipoUsuario: args[2]}
		if err := repository.UpsertCodigoAcceso(ctx, db, code); err != nil {
			logger.Fatalf("%v", err)
		}
		fmt.Printf("Access code %s grants role %s\n", code.Codigo, code.TipoUsuario)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
	}
}

func usage() {
	fmt.Println("Usage: migrator [command]")
	fmt.Println("Commands:")
	fmt.Println("  up                 - Apply all pending migrations")
	fmt.Println("  down               - Roll back the last migration")
	fmt.Println("  status             - Show migration status")
	fmt.Println("  add-code CODE ROLE - Create or update a registration access code")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  migrator up")
	fmt.Printf("  migrator add-code ADM-2024 %s\n", models.RolAdmin)
	fmt.Printf("  migrator add-code MED-2024 %s\n", models.RolMedico)
}
