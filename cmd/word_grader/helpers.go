// Package main provides the entry point for the word_grader CLI.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/datmos/word-grader/internal/results"
)

// openSink selects the result sink: PostgreSQL when a database URL is
// configured (flag or DATABASE_URL), the JSON file store otherwise. The
// returned cleanup releases the database pool when one was opened.
func openSink(ctx context.Context, dbURL, resultsPath string, logger zerolog.Logger) (results.Sink, func(), error) {
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return results.NewFileSink(resultsPath, logger), func() {}, nil
	}

	pg, err := results.ConnectPostgres(ctx, dbURL, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, nil, err
	}
	return pg, pg.Close, nil
}
