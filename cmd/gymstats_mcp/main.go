// Package main runs the gymstats MCP server over stdio (for local assistant use).
// The same tools are mounted on the main backend at /mcp over HTTP when
// mcp_enabled is set. Active workouts are read from the redis snapshots the
// backend keeps.
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/fitstats/internal/config"
	"github.com/2beens/fitstats/internal/db"
	"github.com/2beens/fitstats/internal/gymstats/e1rm"
	"github.com/2beens/fitstats/internal/gymstats/exercises"
	"github.com/2beens/fitstats/internal/gymstats/habits"
	gymstatsmcp "github.com/2beens/fitstats/internal/gymstats/mcp"
	"github.com/2beens/fitstats/internal/gymstats/session"
	"github.com/2beens/fitstats/internal/gymstats/workouts"
	"github.com/2beens/fitstats/internal/logging"

	"github.com/go-redis/redis/v8"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// stdout belongs to the MCP transport
	log.SetOutput(os.Stderr)
	log.SetLevel(logging.GetLevel(cfg.LogLevel))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("FITSTATS_POSTGRES_PASS"),
		MaxConns:   2,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("FITSTATS_REDIS_PASS"),
		DB:       0,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	}()

	workoutsRepo := workouts.NewRepo(dbPool)
	server := gymstatsmcp.NewServer(gymstatsmcp.ServiceDeps{
		Schema: gymstatsmcp.NewPoolSchemaRepo(dbPool),
		Sessions: session.NewStoredSnapshots(
			session.NewRedisStore(rdb, time.Duration(cfg.SessionSnapshotTTLMinutes)*time.Minute),
		),
		Charts:    e1rm.NewService(workoutsRepo, cfg.E1RMCacheSizeBytes, cfg.E1RMCacheExpireSec, nil),
		Habits:    habits.NewService(habits.NewRepo(dbPool), nil),
		Exercises: exercises.NewRepo(dbPool),
		Workouts:  workoutsRepo,
	}, "stdio")

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Errorf("mcp server: %s", err)
	}
}
