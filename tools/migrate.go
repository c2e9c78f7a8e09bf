package main

import (
	"fmt"
	"os"
	"strconv"

	"venue-booking/database"
	"venue-booking/database/seeders"
	"venue-booking/services/receipt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate        - Run database migrations")
		fmt.Println("  go run tools/migrate.go seed           - Seed the venue catalogue")
		fmt.Println("  go run tools/migrate.go cleanup [days] - Remove stored receipt files older than N days (default 30)")
		return
	}

	if _, err := database.InitDB(); err != nil {
		fmt.Printf("❌ Failed to connect to the database: %v\n", err)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if err := database.Migrate(); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "seed":
		fmt.Println("🌱 Seeding venue catalogue...")
		seeders.SeedVenues(database.GetDB())
		fmt.Println("✅ Seeding completed!")

	case "cleanup":
		days := 30
		if len(os.Args) > 2 {
			parsed, err := strconv.Atoi(os.Args[2])
			if err != nil || parsed <= 0 {
				fmt.Printf("❌ Invalid day count: %s\n", os.Args[2])
				os.Exit(1)
			}
			days = parsed
		}
		fmt.Printf("🧹 Removing receipt files older than %d days...\n", days)
		receiptService := receipt.NewReceiptService(database.GetDB())
		if err := receiptService.CleanupOldFiles(days); err != nil {
			fmt.Printf("❌ Cleanup failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Cleanup completed!")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, seed, cleanup")
	}
}
