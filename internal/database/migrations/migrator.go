package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/vladimiradmaev/fitness-helper/internal/logger"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var embedded embed.FS

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

// Registry holds migrations keyed by id; ids run in lexical order
type Registry struct {
	migrations map[string]Migration
}

func NewRegistry() *Registry {
	return &Registry{migrations: make(map[string]Migration)}
}

// Default returns a registry loaded with the embedded SQL migrations
func Default() (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadSQLMigrations(embedded, "sql"); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a new migration to the registry
func (r *Registry) Register(id string, up, down func(*gorm.DB) error) {
	r.migrations[id] = Migration{
		ID:   id,
		Up:   up,
		Down: down,
	}
}

// IDs returns the registered migration ids in execution order
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.migrations))
	for id := range r.migrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Run executes all pending migrations
func (r *Registry) Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var executed []MigrationRecord
	if err := db.Find(&executed).Error; err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	executedMap := make(map[string]bool, len(executed))
	for _, m := range executed {
		executedMap[m.ID] = true
	}

	for _, id := range r.IDs() {
		if executedMap[id] {
			continue
		}
		migration := r.migrations[id]
		logger.Info("Running migration", "id", id)

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("failed to run migration %s: %w", id, err)
			}
			if err := tx.Create(&MigrationRecord{ID: id}).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", id, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		logger.Info("Completed migration", "id", id)
	}

	return nil
}

// LoadSQLMigrations registers every .sql file under dir; the file name
// without extension is the migration id. Statements are separated by ';'.
func (r *Registry) LoadSQLMigrations(fsys fs.FS, dir string) error {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		id := strings.TrimSuffix(file.Name(), ".sql")

		content, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		statements := splitStatements(string(content))
		r.Register(id, func(db *gorm.DB) error {
			for _, stmt := range statements {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		}, nil) // No down migration for SQL files
	}

	return nil
}

func splitStatements(sql string) []string {
	var out []string
	for _, part := range strings.Split(sql, ";") {
		var lines []string
		for _, line := range strings.Split(part, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "--") {
				lines = append(lines, line)
			}
		}
		if stmt := strings.TrimSpace(strings.Join(lines, "\n")); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
