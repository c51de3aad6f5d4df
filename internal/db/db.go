package db

import (
	"log"
	"os"

	"aboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dbFile := os.Getenv("DB_FILE")
	if dbFile == "" {
		// Fallback for local dev if not set
		dbFile = "posts.db"
	}

	var err error
	DB, err = Open(dbFile)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	log.Printf("Database opened: %s", dbFile)
}

// Open 打开 SQLite 数据库并完成建表迁移。建表是幂等的（create-if-absent），
// 必须在第一次读写之前完成。
func Open(dbFile string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto Migrate
	if err := gdb.AutoMigrate(&models.Post{}); err != nil {
		return nil, err
	}
	return gdb, nil
}
