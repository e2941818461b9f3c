package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/internal/models"
)

// Models lists every persisted type, in dependency order
var Models = []interface{}{
	&models.User{},
	&models.Customer{},
	&models.Subscription{},
	&models.Note{},
	&models.Feedback{},
	&models.LessonsLearned{},
}

// RunMigrations brings the schema up to date. SQLite databases (unit tests)
// are auto-migrated from the models; postgres applies the SQL files in
// migrationsDir in name order, recording each in the migrations table.
func RunMigrations(db *gorm.DB, migrationsDir string, log *zap.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Debug("using gorm auto-migration for sqlite")
		return db.AutoMigrate(Models...)
	}

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		var count int64
		if err := db.Table("migrations").Where("name = ?", file.Name()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debug("skipping applied migration", zap.String("name", file.Name()))
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", file.Name(), err)
			}
			if err := tx.Exec("INSERT INTO migrations (name) VALUES (?)", file.Name()).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", file.Name(), err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Info("applied migration", zap.String("name", file.Name()))
	}

	return nil
}
