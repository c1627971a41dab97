package orders

import (
	"context"
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/atish-2023/Ecommerce-Website/internal/storage"
)

type FactoryResult struct {
	Driver string
	Store  Store
}

func FromEnv(ctx context.Context, docs storage.Store) (FactoryResult, error) {
	_ = ctx

	driver := os.Getenv("ORDER_STORE_DRIVER")
	if driver == "" {
		driver = "file"
	}

	switch driver {
	case "file":
		name := os.Getenv("ORDERS_FILE")
		if name == "" {
			name = "orders.json"
		}
		return FactoryResult{Driver: "file", Store: NewFileStore(docs, name)}, nil

	case "mysql":
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			return FactoryResult{}, fmt.Errorf("DB_DSN required for ORDER_STORE_DRIVER=mysql")
		}
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "mysql", Store: NewGormStore(db)}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown ORDER_STORE_DRIVER: %s", driver)
	}
}
