package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	log.SetFlags(0)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var (
		databaseURL    = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
		migrationsPath = flag.String("migrations", "migrations", "Path to SQL migrations")
	)
	flag.Parse()

	if *databaseURL == "" {
		log.Fatal("missing database URL: provide via -database-url or DATABASE_URL")
	}
	if len(flag.Args()) == 0 {
		log.Fatal("usage: migrate [up|down|version]")
	}

	db, err := sql.Open("postgres", *databaseURL)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatalf("create postgres driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+*migrationsPath, "postgres", driver)
	if err != nil {
		log.Fatalf("create migrate instance: %v", err)
	}
	defer m.Close()

	switch flag.Arg(0) {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
		var version uint
		var dirty bool
		version, dirty, err = m.Version()
		if err == nil {
			fmt.Printf("version=%d dirty=%v\n", version, dirty)
		}
	default:
		log.Fatalf("unknown command %q", flag.Arg(0))
	}
	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}
}
