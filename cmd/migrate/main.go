// Применение миграций схемы: go run ./cmd/migrate up|down|status
package main

import (
	"database/sql"
	"embed"
	"log"
	"os"

	"maintenance-system/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var embedMigrations embed.FS

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg := config.New()
	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("не удалось открыть соединение с базой: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("не удалось выбрать диалект goose: %v", err)
	}

	if err := goose.Run(command, db, "migrations", os.Args[2:]...); err != nil {
		log.Fatalf("миграция завершилась с ошибкой (%s): %v", command, err)
	}
}
