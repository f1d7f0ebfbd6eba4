package lists

import (
	"context"
	"errors"
	"log/slog"

	"cinelist/proj/internal/domain/models"
	"cinelist/proj/internal/storage"
)

type ListsStorage interface {
	Insert(ctx context.Context, kind, userID string, movieID int64, title, posterPath string) (*models.ListEntry, error)
	Get(ctx context.Context, kind, userID string, movieID int64) (*models.ListEntry, error)
	ListForUser(ctx context.Context, kind, userID string) ([]models.ListEntry, error)
	Delete(ctx context.Context, kind, userID string, movieID int64) error
}

// ListService owns the favourite and watch-later membership sets. The two
// kinds are fully independent: an operation on one never touches the other.
type ListService struct {
	log     *slog.Logger
	storage ListsStorage
}

func New(log *slog.Logger, storage ListsStorage) *ListService {
	return &ListService{
		log:     log,
		storage: storage,
	}
}

func validKind(kind string) bool {
	return kind == models.ListKindFavourite || kind == models.ListKindWatchLater
}

// Add puts the movie in the user's list. Add is idempotent: when the pair is
// already present the stored entry is returned unchanged with created=false.
// Concurrent adds for the same pair race on the storage uniqueness
// constraint, so exactly one caller observes created=true.
func (s *ListService) Add(ctx context.Context, kind, userID string, movieID int64, title, posterPath string) (entry *models.ListEntry, created bool, err error) {
	const op = "lists.ListService.Add"
	log := s.log.With("op", op, "kind", kind, "userId", userID, "movieId", movieID)
	if !validKind(kind) {
		return nil, false, ErrUnknownKind
	}
	entry, err = s.storage.Insert(ctx, kind, userID, movieID, title, posterPath)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("movie already in list")
			existing, err := s.storage.Get(ctx, kind, userID, movieID)
			if err != nil {
				log.Error(err.Error())
				return nil, false, err
			}
			return existing, false, nil
		}
		log.Error(err.Error())
		return nil, false, err
	}
	return entry, true, nil
}

// Remove deletes the pair's entry. An absent pair yields ErrEntryNotFound,
// which callers treat as already-removed.
func (s *ListService) Remove(ctx context.Context, kind, userID string, movieID int64) error {
	const op = "lists.ListService.Remove"
	log := s.log.With("op", op, "kind", kind, "userId", userID, "movieId", movieID)
	if !validKind(kind) {
		return ErrUnknownKind
	}
	if err := s.storage.Delete(ctx, kind, userID, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not in list")
			return ErrEntryNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

// List returns all of the user's entries for the kind, in no particular
// order; display ordering is the client's concern.
func (s *ListService) List(ctx context.Context, kind, userID string) ([]models.ListEntry, error) {
	const op = "lists.ListService.List"
	log := s.log.With("op", op, "kind", kind, "userId", userID)
	if !validKind(kind) {
		return nil, ErrUnknownKind
	}
	entries, err := s.storage.ListForUser(ctx, kind, userID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return entries, nil
}
