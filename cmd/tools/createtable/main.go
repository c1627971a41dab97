package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
)

// Bootstraps the orders table for ORDER_STORE_DRIVER=mysql.
func main() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ddl := `
	CREATE TABLE IF NOT EXISTS orders (
	  order_id VARCHAR(64) NOT NULL,
	  order_reference VARCHAR(64) NOT NULL,
	  customer_json JSON NOT NULL,
	  cart_json JSON NOT NULL,
	  total_amount DOUBLE NOT NULL,
	  stripe_session_id VARCHAR(128) NOT NULL,
	  created_at VARCHAR(40) NOT NULL,
	  status VARCHAR(32) NOT NULL,
	  PRIMARY KEY (order_id),
	  KEY ix_orders_stripe_session_id (stripe_session_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := db.Exec(ddl); err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}

	log.Println("✓ orders table created successfully")
}
