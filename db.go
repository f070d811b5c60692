// db.go - sqlite setup
package main

import (
	"database/sql"
	"log"
	"os"

	_ "modernc.org/sqlite"
)

var db *sql.DB

// Open the sqlite database and create the tables the site needs: kv backs
// the review store, visitors backs the admin dashboard.
func initDB() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "portfolio.db"
	}

	var err error
	db, err = sql.Open("sqlite", path)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	createKVTable := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`

	if _, err := db.Exec(createKVTable); err != nil {
		log.Fatal("Failed to create kv table:", err)
	}

	log.Printf("Database ready at %s", path)
}
