package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/config"
	"github.com/vladimiradmaev/fitness-helper/internal/database/migrations"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type User struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Username   string
	FirstName  string
	LastName   string
	WeightKg   *float64
	HeightCm   *float64
	Age        *int
}

type FoodLog struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null"`
	FoodName  string `gorm:"not null"`
	Quantity  int    `gorm:"not null;default:1"`
	Calories  float64
	Estimated bool
	LogDate   string    `gorm:"type:varchar(10);not null"` // YYYY-MM-DD in the configured timezone
	LoggedAt  time.Time `gorm:"not null"`
}

type ExerciseLog struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null"`
	Activity        string `gorm:"not null"`
	DurationMinutes int    `gorm:"not null;default:0"`
	CaloriesBurned  float64
	MET             float64   `gorm:"column:met"`
	LogDate         string    `gorm:"type:varchar(10);not null"`
	LoggedAt        time.Time `gorm:"not null"`
}

type EnvironmentLog struct {
	ID               uint `gorm:"primaryKey"`
	UserID           uint `gorm:"not null"`
	ExerciseLogID    uint `gorm:"index"`
	DistanceWalkedKm float64
	CarbonSavedKg    float64
	LogDate          string    `gorm:"type:varchar(10);not null"`
	LoggedAt         time.Time `gorm:"not null"`
}

// Models lists every table managed by AutoMigrate
func Models() []interface{} {
	return []interface{}{&User{}, &FoodLog{}, &ExerciseLog{}, &EnvironmentLog{}}
}

// Open connects to the configured driver and brings the schema up to date
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Database connection established and migrations completed", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates the tables and then applies the SQL migrations that
// depend on them
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	registry, err := migrations.Default()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := registry.Run(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)
		return postgres.Open(dsn), nil
	case "sqlite":
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		return sqlite.Open(cfg.SQLitePath + "?_busy_timeout=5000"), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
