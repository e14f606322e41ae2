package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Drops every application table so AutoMigrate can rebuild a clean schema.
// Destructive; asks for confirmation before touching anything.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Build connection string
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	// Connect to database
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	fmt.Printf("\n⚠️  This will DROP ALL TABLES in %s. Continue? (y/N): ", dbName)
	var response string
	fmt.Scanln(&response)

	if response != "y" && response != "Y" {
		log.Println("Aborted, nothing dropped")
		return
	}

	dropSQL := `
		DROP TABLE IF EXISTS reviews CASCADE;
		DROP TABLE IF EXISTS wishlist_items CASCADE;
		DROP TABLE IF EXISTS collection_items CASCADE;
		DROP TABLE IF EXISTS reports CASCADE;
		DROP TABLE IF EXISTS submissions CASCADE;
		DROP TABLE IF EXISTS players CASCADE;
		DROP TABLE IF EXISTS brands CASCADE;
		DROP TABLE IF EXISTS leagues CASCADE;
		DROP TABLE IF EXISTS teams CASCADE;
		DROP TABLE IF EXISTS versions CASCADE;
		DROP TABLE IF EXISTS master_kits CASCADE;
		DROP TABLE IF EXISTS users CASCADE;
	`
	if _, err := db.Exec(dropSQL); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	log.Println("✅ All tables dropped. Run the server to recreate the schema.")
}
