package database

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"onlinestore/migrations"
)

// MigrationsFS devolve o FS com as migrações embutidas.
func MigrationsFS() fs.FS {
	return migrations.FS
}

// Migrate aplica todas as migrações pendentes (goose up) a partir do FS embutido.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: dialeto inválido: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
