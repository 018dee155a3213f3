package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/vocabloury/internal/apperror"
	"github.com/sakif/vocabloury/internal/model"
	"github.com/sakif/vocabloury/internal/repository"
)

// WordsService wraps the word-history store for the handlers.
//
// There's deliberately little here: the word and meaning strings are opaque
// to the core — they're whatever the UI got back from the dictionary API.
// The service exists so handlers go through the same no-raw-SQL boundary as
// everything else, not because the log needs business rules.
type WordsService struct {
	words  repository.WordHistoryRepository
	logger *slog.Logger
}

// NewWordsService creates a WordsService with its dependencies injected.
func NewWordsService(words repository.WordHistoryRepository, logger *slog.Logger) *WordsService {
	return &WordsService{
		words:  words,
		logger: logger,
	}
}

// Append records one lookup. The meaning may be empty — a word can be saved
// before (or without) a definition ever loading.
func (s *WordsService) Append(ctx context.Context, username, word, meaning string) error {
	if word == "" {
		return apperror.ValidationFailed("word", "word is required")
	}
	if err := s.words.AppendWord(ctx, username, word, meaning); err != nil {
		return fmt.Errorf("service/words: appending %q for %q: %w", word, username, err)
	}
	return nil
}

// List returns the user's history, most recent first.
func (s *WordsService) List(ctx context.Context, username string) ([]model.WordHistoryEntry, error) {
	entries, err := s.words.ListWords(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("service/words: listing for %q: %w", username, err)
	}
	return entries, nil
}

// Delete removes every saved occurrence of the word for the user.
func (s *WordsService) Delete(ctx context.Context, username, word string) error {
	if word == "" {
		return apperror.ValidationFailed("word", "word is required")
	}
	if err := s.words.DeleteWord(ctx, username, word); err != nil {
		return fmt.Errorf("service/words: deleting %q for %q: %w", word, username, err)
	}
	s.logger.Info("saved word removed",
		slog.String("username", username),
		slog.String("word", word),
	)
	return nil
}

// Count returns the dashboard's "words learned" number.
func (s *WordsService) Count(ctx context.Context, username string) (int64, error) {
	count, err := s.words.CountWords(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("service/words: counting for %q: %w", username, err)
	}
	return count, nil
}
