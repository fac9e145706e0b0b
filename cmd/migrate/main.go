// Package main applies or reverts the fitstats postgres migrations outside of
// the service, e.g. before a deploy with run_migrations turned off.
package main

import (
	"flag"
	"os"

	"github.com/2beens/fitstats/internal/config"
	"github.com/2beens/fitstats/internal/db"
	"github.com/2beens/fitstats/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	down := flag.Int("down", 0, "number of migrations to revert (0 applies all pending)")
	showVersion := flag.Bool("version", false, "only print the current schema version")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.SetLevel(logging.GetLevel(cfg.LogLevel))

	postgresPassword := os.Getenv("FITSTATS_POSTGRES_PASS")
	if postgresPassword == "" {
		log.Warnln("postgres password not set. use FITSTATS_POSTGRES_PASS")
	}

	dsn := db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: postgresPassword,
	}.ConnString("pgx5")

	switch {
	case *showVersion:
	case *down > 0:
		log.Warnf("reverting %d migration(s) on [%s]", *down, cfg.PostgresDBName)
		if err := db.Rollback(dsn, *down); err != nil {
			log.Fatalf("rollback: %s", err)
		}
	default:
		if err := db.Migrate(dsn); err != nil {
			log.Fatalf("migrate: %s", err)
		}
	}

	version, dirty, err := db.Version(dsn)
	if err != nil {
		log.Fatalf("schema version: %s", err)
	}
	log.Infof("schema version: %d (dirty: %t)", version, dirty)
}
