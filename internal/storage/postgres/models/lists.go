package models

import (
	"context"
	"errors"

	"cinelist/proj/internal/domain/models"
	"cinelist/proj/internal/storage"
	"cinelist/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ListEntryModel struct {
	DB *pgxpool.Pool
}

// Insert persists a new list entry. The unique index on (kind, user_id,
// movie_id) makes concurrent inserts for the same pair resolve to exactly one
// row; the losing call gets storage.ErrConflict.
func (m *ListEntryModel) Insert(ctx context.Context, kind, userID string, movieID int64, title, posterPath string) (*models.ListEntry, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO list_entries (kind, user_id, movie_id, title, poster_path)
		VALUES ($1, $2, $3, $4, $5) RETURNING *`,
		kind, userID, movieID, title, posterPath,
	)
	entry, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ListEntry])
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return &entry, nil
}

func (m *ListEntryModel) Get(ctx context.Context, kind, userID string, movieID int64) (*models.ListEntry, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT id, kind, user_id, movie_id, title, poster_path, created_at FROM list_entries
		WHERE kind = $1 AND user_id = $2 AND movie_id = $3`,
		kind, userID, movieID,
	)
	if err != nil {
		return nil, err
	}
	entry, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ListEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (m *ListEntryModel) ListForUser(ctx context.Context, kind, userID string) ([]models.ListEntry, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT id, kind, user_id, movie_id, title, poster_path, created_at FROM list_entries
		WHERE kind = $1 AND user_id = $2`,
		kind, userID,
	)
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ListEntry])
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *ListEntryModel) Delete(ctx context.Context, kind, userID string, movieID int64) error {
	status, err := m.DB.Exec(
		ctx,
		"DELETE FROM list_entries WHERE kind = $1 AND user_id = $2 AND movie_id = $3",
		kind, userID, movieID,
	)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
