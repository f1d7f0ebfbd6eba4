package main

import (
	"errors"
	"fmt"
	"net/http"

	"cinelist/proj/internal/lib/validator"
	"cinelist/proj/internal/services/lists"

	"github.com/go-chi/chi/v5"
)

type addListEntryInput struct {
	UserID     string `json:"userId" validate:"required,email"`
	MovieID    int64  `json:"movieId" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required"`
	PosterPath string `json:"poster_path"`
}

type removeListEntryQuery struct {
	UserID string `schema:"userId"`
}

func listLabel(kind string) string {
	if kind == "watchlater" {
		return "watch later"
	}
	return "favourites"
}

func (app *Application) addListEntry(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input addListEntryInput
		if err := app.readJSON(w, r, &input); err != nil {
			app.Http.BadRequest(w, r, err.Error())
			return
		}
		if errs := validator.ValidateStruct(app.validator, input); errs != nil {
			app.Http.UnprocessableEntity(w, r, errs)
			return
		}
		if !app.assertCallerIs(w, r, input.UserID) {
			return
		}
		entry, created, err := app.Services.Lists.Add(r.Context(), kind, input.UserID, input.MovieID, input.Title, input.PosterPath)
		if err != nil {
			app.Http.ServerError(w, r, err, "")
			return
		}
		data := envelop{"entry": entry}
		if !created {
			app.Http.Ok(w, r, data, fmt.Sprintf("Movie is already in %s", listLabel(kind)))
			return
		}
		app.Http.Created(w, r, data, fmt.Sprintf("Added to %s", listLabel(kind)))
	}
}

func (app *Application) listEntries(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")
		if userID == "" {
			app.Http.BadRequest(w, r, "userId is required")
			return
		}
		if !app.assertCallerIs(w, r, userID) {
			return
		}
		entries, err := app.Services.Lists.List(r.Context(), kind, userID)
		if err != nil {
			app.Http.ServerError(w, r, err, "")
			return
		}
		app.Http.Ok(w, r, envelop{"entries": entries}, "")
	}
}

func (app *Application) removeListEntry(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, ok := app.extractIntParam(w, r, "movieId")
		if !ok {
			return
		}
		var query removeListEntryQuery
		if err := app.queryDecoder.Decode(&query, r.URL.Query()); err != nil {
			app.Http.BadRequest(w, r, err.Error())
			return
		}
		if query.UserID == "" {
			app.Http.BadRequest(w, r, "userId query parameter is required")
			return
		}
		if !app.assertCallerIs(w, r, query.UserID) {
			return
		}
		err := app.Services.Lists.Remove(r.Context(), kind, query.UserID, movieID)
		if err != nil {
			if errors.Is(err, lists.ErrEntryNotFound) {
				app.Http.NotFound(w, r, fmt.Sprintf("Movie is not in %s", listLabel(kind)))
				return
			}
			app.Http.ServerError(w, r, err, "")
			return
		}
		app.Http.Ok(w, r, nil, fmt.Sprintf("Removed from %s", listLabel(kind)))
	}
}
