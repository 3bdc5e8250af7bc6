package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"picturebooks/internal/book"
	"picturebooks/internal/config"
	"picturebooks/internal/logger"
	"picturebooks/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	var count int
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Load generated picture books into the catalog",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg, log, count)
		},
	}
	cmd.Flags().IntVar(&count, "count", 200, "number of books to insert")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, count int) error {
	pool, err := postgres.Open(ctx, cfg.DB.DSN, cfg.DB.MaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rows := generateRows(rng, count, time.Now())

	log.Info().Int("count", count).Msg("inserting books")
	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"picturebooks"},
		[]string{"title", "author", "illustrator", "isbn", "description", "date_added", "categories"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy books: %w", err)
	}

	var total int64
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM picturebooks").Scan(&total); err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	log.Info().Int64("inserted", n).Int64("total", total).Msg("seed complete")
	return nil
}

var (
	adjectives = []string{"Sleepy", "Brave", "Little", "Hungry", "Curious", "Wild", "Quiet", "Purple"}
	creatures  = []string{"Bear", "Owl", "Dragon", "Caterpillar", "Rabbit", "Moon", "Whale", "Fox"}
	people     = []string{
		"Maurice Sendak", "Eric Carle", "Mo Willems", "Jon Klassen", "Julia Donaldson",
		"Axel Scheffler", "Oliver Jeffers", "Beatrix Potter", "Leo Lionni", "Margaret Wise Brown",
	}
)

// generateRows builds count rows in the column order passed to CopyFrom.
func generateRows(rng *rand.Rand, count int, now time.Time) [][]any {
	rows := make([][]any, 0, count)
	for i := 0; i < count; i++ {
		title := fmt.Sprintf("The %s %s", adjectives[rng.Intn(len(adjectives))], creatures[rng.Intn(len(creatures))])
		author := people[rng.Intn(len(people))]
		illustrator := people[rng.Intn(len(people))]
		added := now.AddDate(0, 0, -rng.Intn(720))
		categories := lo.Samples(book.KnownCategories, 1+rng.Intn(3))

		rows = append(rows, []any{
			title,
			author,
			illustrator,
			fmt.Sprintf("978-%010d", i+1),
			fmt.Sprintf("A picture book about a %s that learns something new.", creatures[rng.Intn(len(creatures))]),
			time.Date(added.Year(), added.Month(), added.Day(), 0, 0, 0, 0, time.UTC),
			categories,
		})
	}
	return rows
}
