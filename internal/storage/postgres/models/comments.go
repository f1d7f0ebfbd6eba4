package models

import (
	"context"
	"errors"

	"cinelist/proj/internal/domain/models"
	"cinelist/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentModel struct {
	DB *pgxpool.Pool
}

func (m *CommentModel) Insert(ctx context.Context, movieID int64, author, text string, rating int) (*models.Comment, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO comments (movie_id, author, text, rating) VALUES ($1, $2, $3, $4) RETURNING *",
		movieID, author, text, rating,
	)
	comment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (m *CommentModel) Get(ctx context.Context, id int64) (*models.Comment, error) {
	rows, err := m.DB.Query(
		ctx,
		"SELECT id, movie_id, author, text, rating, created_at, updated_at FROM comments WHERE id = $1",
		id,
	)
	if err != nil {
		return nil, err
	}
	comment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListForMovie returns the movie's comments newest first. Id breaks ties for
// comments created in the same instant.
func (m *CommentModel) ListForMovie(ctx context.Context, movieID int64) ([]models.Comment, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT id, movie_id, author, text, rating, created_at, updated_at FROM comments
		WHERE movie_id = $1 ORDER BY created_at DESC, id DESC`,
		movieID,
	)
	comments, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (m *CommentModel) Update(ctx context.Context, id int64, text string, rating int) (*models.Comment, error) {
	rows, _ := m.DB.Query(
		ctx,
		"UPDATE comments SET text = $1, rating = $2, updated_at = now() WHERE id = $3 RETURNING *",
		text, rating, id,
	)
	comment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (m *CommentModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
