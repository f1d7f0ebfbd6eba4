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

type UserModel struct {
	DB *pgxpool.Pool
}

func (m *UserModel) Insert(ctx context.Context, name, email string, passwordHash []byte) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING *",
		name, email, passwordHash,
	)
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := m.DB.Query(
		ctx,
		"SELECT id, name, email, password_hash, is_active, created_at, updated_at FROM users WHERE email = $1",
		email,
	)
	if err != nil {
		return nil, err
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (m *UserModel) Update(ctx context.Context, user *models.User) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE users SET name = $1, email = $2, password_hash = $3, updated_at = now()
		WHERE id = $4 RETURNING *`,
		user.Name, user.Email, user.PasswordHash, user.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		var pgxErr *pgconn.PgError
		switch {
		case errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode:
			return nil, storage.ErrConflict
		case errors.Is(err, pgx.ErrNoRows):
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (m *UserModel) Delete(ctx context.Context, email string) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM users WHERE email = $1", email)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
