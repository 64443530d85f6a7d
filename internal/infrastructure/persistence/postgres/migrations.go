package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/yuzvak/herbal-storefront/internal/config"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/monitoring"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

// RunMigrations applies pending *.up.sql files over a dedicated pgx
// connection, each in its own transaction.
func RunMigrations(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) error {
	log.Info("Starting migrations",
		"host", cfg.Host,
		"port", cfg.Port,
		"dbname", cfg.DBName,
		"migrations_path", cfg.MigrationsPath,
	)

	db, err := sql.Open("pgx", cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return Migrate(ctx, db, cfg.MigrationsPath, log)
}

func Migrate(ctx context.Context, db *sql.DB, dir string, log *logger.Logger) error {
	_, err := monitoring.InstrumentExec(ctx, db, "CREATE", "migrations", `
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return err
	}

	pending, err := migrationFiles(dir)
	if err != nil {
		return err
	}

	for _, migration := range pending {
		if applied[migration] {
			log.Debug("Migration already applied, skipping", "migration", migration)
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, migration))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", migration, err)
		}

		if err := applyMigration(ctx, db, migration, string(content)); err != nil {
			return err
		}

		log.Info("Applied migration", "migration", migration)
	}

	return nil
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := monitoring.InstrumentQuery(ctx, db, "SELECT", "migrations", "SELECT name FROM migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations table: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func migrationFiles(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory %s: %w", dir, err)
	}

	var migrations []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".up.sql") {
			migrations = append(migrations, file.Name())
		}
	}
	sort.Strings(migrations)
	return migrations, nil
}

func applyMigration(ctx context.Context, db *sql.DB, name, content string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := monitoring.InstrumentTxExec(ctx, tx, "MIGRATE", "migrations", content); err != nil {
		tx.Rollback()
		return fmt.Errorf("error executing migration %s: %w", name, err)
	}

	if _, err := monitoring.InstrumentTxExec(ctx, tx, "INSERT", "migrations", "INSERT INTO migrations (name) VALUES ($1)", name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", name, err)
	}
	return nil
}
