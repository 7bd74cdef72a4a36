// Package results persists graded training results through swappable sinks.
package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/datmos/word-grader/internal/types"
)

var trainingIDPattern = regexp.MustCompile(`^TR(\d+)$`)

// FileSink persists the result collection as a single JSON file,
// rewritten in full on every append. The read-modify-write cycle is
// guarded by an in-process mutex; the sink assumes a single writing
// process. Deployments with concurrent writers should use PostgresSink.
type FileSink struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewFileSink creates a file-backed sink at the given path. The file is
// created on first append.
func NewFileSink(path string, logger zerolog.Logger) *FileSink {
	return &FileSink{
		path:   path,
		logger: logger.With().Str("component", "file_sink").Str("path", path).Logger(),
	}
}

// Append persists one graded result, assigning the next identifier in
// the TRnnn sequence, and rewrites the whole collection with refreshed
// metadata.
func (s *FileSink) Append(_ context.Context, result *types.GradingResult, appendCtx AppendContext) (*TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection := s.load()
	id := nextTrainingID(collection.TrainingResults)
	record := newTrainingResult(id, result, appendCtx)
	collection.TrainingResults = append(collection.TrainingResults, record)
	collection.Metadata = computeMetadata(collection.TrainingResults)

	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return nil, &PersistenceError{Op: "append", Store: s.path, Cause: err}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return nil, &PersistenceError{Op: "append", Store: s.path, Cause: err}
	}
	return &record, nil
}

// List returns all persisted results in append order.
func (s *FileSink) List(_ context.Context) ([]TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().TrainingResults, nil
}

// load reads the existing collection. An absent or corrupt store starts
// a fresh collection; that is the documented recovery behavior, so a
// damaged file costs history but never blocks new results.
func (s *FileSink) load() *Collection {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Msg("result store unreadable, starting fresh collection")
		}
		return &Collection{}
	}

	var collection Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		s.logger.Warn().Err(err).Msg("result store corrupt, starting fresh collection")
		return &Collection{}
	}
	return &collection
}

// nextTrainingID scans existing records for the highest numeric suffix
// and increments it, formatting with at least three digits (TR004 →
// TR005). An empty store starts at TR001.
func nextTrainingID(records []TrainingResult) string {
	highest := 0
	for _, r := range records {
		m := trainingIDPattern.FindStringSubmatch(r.ID)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("TR%03d", highest+1)
}

func computeMetadata(records []TrainingResult) Metadata {
	meta := Metadata{
		TotalResults: len(records),
		LastUpdated:  time.Now().UTC(),
	}
	if len(records) == 0 {
		return meta
	}
	total := 0
	for _, r := range records {
		total += r.TotalScore
		if r.Passed {
			meta.PassedCount++
		}
	}
	meta.AverageScore = float64(total) / float64(len(records))
	return meta
}
