// Command seed loads a YAML or JSON content file into the document store.
//
//	seed -file content.yaml
//
// Each top-level key is a store path and replaces whatever is stored there.
// When REDIS_ADDR is set every write is announced so running servers pick it
// up live.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/portfolio-content-api/internal/config"
	"github.com/portfolio-content-api/internal/database"
	"github.com/portfolio-content-api/internal/feed"
	"github.com/portfolio-content-api/internal/repository"
	"github.com/portfolio-content-api/pkg/logger"
)

func main() {
	file := flag.String("file", "content.yaml", "content file to load")
	dryRun := flag.Bool("dry-run", false, "parse the file and list paths without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to read content file")
	}
	docs, err := ParseContent(data)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Invalid content file")
	}

	if *dryRun {
		for _, d := range docs {
			log.Info().Str("path", d.Path).Str("kind", string(d.Snapshot.Kind)).Int("entries", len(d.Snapshot.Entries)).Msg("Would write")
		}
		return
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	store := repository.New(db).Documents
	if cfg.Feed.RedisAddr != "" {
		bus, err := feed.NewRedisBus(feed.RedisOptions{
			Addr:     cfg.Feed.RedisAddr,
			Password: cfg.Feed.RedisPassword,
			Channel:  cfg.Feed.RedisChannel,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect change bus")
		}
		defer bus.Close()
		store = feed.NewNotifyingRepository(store, bus, log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	written, err := Seed(ctx, store, docs)
	if err != nil {
		log.Fatal().Err(err).Int("written", written).Msg("Seeding stopped")
	}
	log.Info().Int("paths", written).Str("file", *file).Msg("Content seeded")
}

// Seed writes every document in order and returns how many were written
func Seed(ctx context.Context, store repository.DocumentRepository, docs []Document) (int, error) {
	for i, d := range docs {
		if err := store.Set(ctx, d.Path, d.Snapshot); err != nil {
			return i, err
		}
	}
	return len(docs), nil
}
