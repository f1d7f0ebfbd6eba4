package models

import (
	"time"
)

const (
	ListKindFavourite  = "favourite"
	ListKindWatchLater = "watchlater"
)

// ListEntry is a persisted fact that a user placed a movie in one of their
// personal lists. Title and PosterPath are a snapshot taken at add-time so
// listing never needs a round trip to the metadata provider.
type ListEntry struct {
	ID         int64     `json:"id"`
	Kind       string    `json:"-"`
	UserID     string    `json:"userId"`
	MovieID    int64     `json:"movieId"`
	Title      string    `json:"title"`
	PosterPath string    `json:"poster_path"`
	CreatedAt  time.Time `json:"addedAt"`
}

type Comment struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movieId"`
	Author    string    `json:"user"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}
