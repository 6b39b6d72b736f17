package database_test

import (
	"path/filepath"
	"testing"

	"github.com/vladimiradmaev/fitness-helper/internal/config"
	"github.com/vladimiradmaev/fitness-helper/internal/database"
	"github.com/vladimiradmaev/fitness-helper/internal/database/migrations"
)

func TestOpenSQLiteRunsMigrationsOnce(t *testing.T) {
	t.Parallel()
	cfg := config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "nested", "fitness.db")}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	for _, model := range database.Models() {
		if !db.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T", model)
		}
	}
	if !db.Migrator().HasIndex(&database.FoodLog{}, "idx_food_logs_user_day") {
		t.Fatalf("expected day index on food_logs")
	}

	// Re-running must be a no-op.
	if err := database.Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	var count int64
	if err := db.Model(&migrations.MigrationRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	registry, err := migrations.Default()
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if int(count) != len(registry.IDs()) {
		t.Fatalf("expected %d migration records, got %d", len(registry.IDs()), count)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Parallel()
	if _, err := database.Open(config.DBConfig{Driver: "mysql"}); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
